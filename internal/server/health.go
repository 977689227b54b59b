package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"congest/internal/logging"
	"congest/internal/srvenv"
)

type healthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Timestamp   string `json:"timestamp"`
}

// HandleHealth reports process liveness and whether the model environment
// is loaded. Loaded state never changes after startup.
func HandleHealth(env *srvenv.SrvEnv) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
			return
		}

		resp := healthResponse{
			Status:      "healthy",
			ModelLoaded: env.ModelLoaded(),
			Timestamp:   time.Now().Format(time.RFC3339),
		}
		bytes, err := json.Marshal(resp)
		if err != nil {
			logging.FromContext(r.Context()).Errorf("health: encode response: %v", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "%s", bytes)
	})
}
