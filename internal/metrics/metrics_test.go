package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordsSteps(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())
	m.ObserveStep(3, 2*time.Millisecond)
	m.ObserveStep(4, time.Millisecond)

	if got := testutil.ToFloat64(m.stepsTotal); got != 2 {
		t.Errorf("sim_steps_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.bodies); got != 4 {
		t.Errorf("sim_bodies = %v, want 4", got)
	}
}

func TestCollector_RecordsPredictions(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())
	m.ObservePrediction(3, 1000, 5*time.Millisecond)
	m.PredictionFailed()
	m.SetStreamClients(2)

	if got := testutil.ToFloat64(m.predictionsTotal); got != 1 {
		t.Errorf("orbit_predictions_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.predictionErrors); got != 1 {
		t.Errorf("orbit_prediction_errors_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.streamClients); got != 2 {
		t.Errorf("stream_clients = %v, want 2", got)
	}
	if n := testutil.CollectAndCount(m.predictionDuration); n != 1 {
		t.Errorf("prediction duration series = %d, want 1", n)
	}
}

func TestCollector_PredictionSeriesBounded(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())
	for steps := 1; steps <= 50; steps++ {
		m.ObservePrediction(2, steps*17, time.Millisecond)
	}
	if n := testutil.CollectAndCount(m.predictionDuration); n != 1 {
		t.Errorf("prediction duration series = %d, want 1 regardless of step counts", n)
	}
	if got := testutil.ToFloat64(m.predictionSteps); got != 850 {
		t.Errorf("orbit_prediction_steps = %v, want 850", got)
	}
	if got := testutil.ToFloat64(m.predictionsTotal); got != 50 {
		t.Errorf("orbit_predictions_total = %v, want 50", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	m := NewCollector(prometheus.NewRegistry())
	m.ObserveStep(1, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "sim_steps_total 1") {
		t.Errorf("metrics output missing sim_steps_total:\n%s", body)
	}
}
