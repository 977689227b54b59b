package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"congest/internal/classifier/baseline"
	"congest/internal/encoder"
	"congest/internal/srvenv"
)

func loadedEnv(t *testing.T) *srvenv.SrvEnv {
	t.Helper()
	clf, err := baseline.New(6, 0)
	if err != nil {
		t.Fatalf("baseline.New: %v", err)
	}
	set, err := encoder.NewSet(map[string][]string{
		encoder.ColDayOfWeek:         {"Monday"},
		encoder.ColPublicHoliday:     {"No", "Yes"},
		encoder.ColRoadName:          {"KN 1 Rd"},
		encoder.ColPopulationDensity: {"High"},
		encoder.ColRainfall:          {"No", "Yes"},
		encoder.ColOutput:            {"High", "Low"},
	})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	return srvenv.New(srvenv.WithClassifier(clf), srvenv.WithEncoders(set))
}

func TestHandleHealth(t *testing.T) {
	tests := []struct {
		name           string
		env            *srvenv.SrvEnv
		expectedLoaded bool
	}{
		{name: "loaded", env: loadedEnv(t), expectedLoaded: true},
		{name: "empty_env", env: srvenv.New(), expectedLoaded: false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleHealth(test.env).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}

			var resp healthResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Status != "healthy" {
				t.Errorf("status = %q, want healthy", resp.Status)
			}
			if resp.ModelLoaded != test.expectedLoaded {
				t.Errorf("model_loaded = %v, want %v", resp.ModelLoaded, test.expectedLoaded)
			}
			if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
				t.Errorf("timestamp %q is not RFC 3339: %v", resp.Timestamp, err)
			}
		})
	}
}

func TestHandleHealth_WrongMethod(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealth(loadedEnv(t)).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
