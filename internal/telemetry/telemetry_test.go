package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestNew_EmptyKeyIsNoop(t *testing.T) {
	tracker := New("", discardLogger())
	if _, ok := tracker.(Noop); !ok {
		t.Fatalf("got %T, want Noop", tracker)
	}
	// Не должно паниковать и никуда ходить
	tracker.TrackEvent("task_created", nil)
}

func TestKeyedTracker_SendsEnvelope(t *testing.T) {
	var got envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tracker := NewKeyedTracker("test-key", srv.URL, discardLogger())
	tracker.send("task_created", map[string]string{"task_id": "7"})

	if got.Name != "task_created" {
		t.Errorf("name = %q", got.Name)
	}
	if got.Key != "test-key" {
		t.Errorf("iKey = %q", got.Key)
	}
	if got.Properties["task_id"] != "7" {
		t.Errorf("properties = %v", got.Properties)
	}
	if got.Time == "" {
		t.Error("time should be set")
	}
}

func TestKeyedTracker_SendFailureIsSwallowed(t *testing.T) {
	tracker := NewKeyedTracker("test-key", "http://127.0.0.1:1", discardLogger())
	// Недоступный приёмник не должен ронять вызывающего
	tracker.send("task_created", nil)
}
