// Package modelinfo exposes the loaded model for client-side introspection:
// its type, declared feature order and per-column vocabularies.
package modelinfo

import (
	"encoding/json"
	"fmt"
	"net/http"

	"congest/internal/classifier"
	"congest/internal/httputil"
	"congest/internal/srvenv"
)

type response struct {
	ModelType           string              `json:"model_type"`
	AvailableCategories map[string][]string `json:"available_categories"`
	ExpectedFeatures    []string            `json:"expected_features"`
}

func NewHandler(env *srvenv.SrvEnv) (http.Handler, error) {
	if !env.ModelLoaded() {
		return nil, fmt.Errorf("model-info handler requires a loaded model environment")
	}
	return &handler{env: env}, nil
}

type handler struct {
	env *srvenv.SrvEnv
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	resp := response{
		ModelType:           h.env.Classifier().Name(),
		AvailableCategories: h.env.Encoders().Columns(),
		// nil marshals as null when the classifier does not declare an order
		ExpectedFeatures: classifier.FeatureNames(h.env.Classifier()),
	}
	bytes, err := json.Marshal(resp)
	if err != nil {
		httputil.RespInternalError(ctx, w, "failed to encode output json %v", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "%s", bytes)
}

// HandleAPIDocs points clients at the static documentation page.
func HandleAPIDocs() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, `{"message": "API documentation available at /docs.html"}`)
	})
}
