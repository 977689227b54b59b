// Package predict serves the prediction endpoint: validate the request,
// assemble and encode the feature row, run the classifier and answer with
// the decoded label and a confidence score.
package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"congest/internal/classifier"
	"congest/internal/feature"
	"congest/internal/httputil"
	"congest/internal/logging"
	"congest/internal/metrics"
	"congest/internal/srvenv"
)

const maxBodyBytes = 1 * 1024 * 1024

// defaultConfidence is returned when the classifier cannot score a class
// distribution.
const defaultConfidence = 0.8

// request mirrors the training table column names on the wire. Fields are
// pointers so that an absent field is distinguishable from a zero value.
type request struct {
	Hour              *int    `json:"Hour" validate:"required,min=0,max=23"`
	DayOfWeek         *string `json:"Day_of_Week" validate:"required"`
	PublicHoliday     *string `json:"Public_Holiday" validate:"required"`
	RoadName          *string `json:"Road_Name" validate:"required"`
	PopulationDensity *string `json:"Population_Density" validate:"required"`
	Rainfall          *string `json:"Rainfall" validate:"required"`
}

type response struct {
	CongestionLevel string  `json:"Congestion_Level"`
	ConfidenceScore float64 `json:"confidence_score"`
	Timestamp       string  `json:"timestamp"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func NewHandler(cfg *Config, env *srvenv.SrvEnv) (http.Handler, error) {
	if !env.ModelLoaded() || env.Assembler() == nil {
		return nil, fmt.Errorf("predict handler requires a loaded model environment")
	}
	return &handler{
		cfg: cfg,
		env: env,
	}, nil
}

type handler struct {
	cfg *Config
	env *srvenv.SrvEnv
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	ctx, cancel := context.WithTimeout(r.Context(), h.cfg.RequestTimeout)
	defer cancel()
	logger := logging.FromContext(ctx)
	began := time.Now()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		logger.Debug(fmt.Sprintf(`{"error": "method %v is not allowed"}`, r.Method))
		_, _ = fmt.Fprintf(w, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if t := r.Header.Get("content-type"); len(t) < 16 || t[:16] != "application/json" {
		w.WriteHeader(http.StatusUnsupportedMediaType)
		logger.Debug(fmt.Sprintf(`{"error": "%v"}`, "content-type is not application/json"))
		_, _ = fmt.Fprintf(w, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if err := validate.Struct(req); err != nil {
		respValidationErr(ctx, w, err)
		return
	}

	in := feature.Input{
		Hour:              *req.Hour,
		DayOfWeek:         *req.DayOfWeek,
		PublicHoliday:     *req.PublicHoliday,
		RoadName:          *req.RoadName,
		PopulationDensity: *req.PopulationDensity,
		Rainfall:          *req.Rainfall,
	}
	row, err := h.env.Assembler().Row(in)
	if err != nil {
		var unknownErr *feature.UnknownValueError
		if errors.As(err, &unknownErr) {
			body, _ := json.Marshal(map[string]interface{}{
				"error":          unknownErr.Error(),
				"column":         unknownErr.Column,
				"allowed_values": unknownErr.Allowed,
			})
			httputil.RespBadRequest(ctx, w, "%s", body)
			return
		}
		httputil.RespInternalError(ctx, w, "assemble feature row: %v", err)
		return
	}

	clf := h.env.Classifier()
	code, err := clf.Predict(row)
	if err != nil {
		httputil.RespInternalError(ctx, w, "classifier predict: %v", err)
		return
	}
	level, err := h.env.Encoders().Output().Inverse(code)
	if err != nil {
		httputil.RespInternalError(ctx, w, "decode predicted class %d: %v", code, err)
		return
	}
	confidence := h.confidence(ctx, clf, row)

	id := uuid.New()
	logger.Infow("prediction made",
		"id", id,
		"level", level,
		"confidence", confidence,
	)
	metrics.RecordPrediction(ctx, level, time.Since(began))

	resp := response{
		CongestionLevel: level,
		ConfidenceScore: confidence,
		Timestamp:       time.Now().Format(time.RFC3339),
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

// confidence is the maximum class probability when the classifier exposes
// that capability, defaultConfidence otherwise. A failing estimator
// downgrades to the default rather than failing the request.
func (h *handler) confidence(ctx context.Context, clf classifier.Classifier, row []float64) float64 {
	pe, ok := clf.(classifier.ProbabilityEstimator)
	if !ok {
		return defaultConfidence
	}
	probs, err := pe.Proba(row)
	if err != nil || len(probs) == 0 {
		logging.FromContext(ctx).Warnf("probability estimate unavailable, using default: %v", err)
		return defaultConfidence
	}
	max := probs[0]
	for _, p := range probs[1:] {
		if p > max {
			max = p
		}
	}
	return max
}

func respValidationErr(ctx context.Context, w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		httputil.RespInternalError(ctx, w, "validate request: %v", err)
		return
	}
	details := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	body, _ := json.Marshal(map[string]interface{}{
		"error":   "request validation failed",
		"details": details,
	})
	httputil.RespUnprocessable(ctx, w, "%s", body)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s constraint", fe.Tag())
	}
}
