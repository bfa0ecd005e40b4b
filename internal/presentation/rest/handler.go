package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

// ServiceName identifies the service in banners and health responses.
const ServiceName = "mindcheck"

// AssessmentHandler serves the assessment API.
type AssessmentHandler struct {
	assessStudent *usecase.AssessStudent
	getAssessment *usecase.GetAssessment
	describeModel *usecase.DescribeModel
	limiter       *RateLimiter
	logger        *slog.Logger
}

// NewAssessmentHandler creates a new assessment handler. A nil limiter
// leaves submissions unthrottled.
func NewAssessmentHandler(
	assessStudent *usecase.AssessStudent,
	getAssessment *usecase.GetAssessment,
	describeModel *usecase.DescribeModel,
	limiter *RateLimiter,
	logger *slog.Logger,
) *AssessmentHandler {
	return &AssessmentHandler{
		assessStudent: assessStudent,
		getAssessment: getAssessment,
		describeModel: describeModel,
		limiter:       limiter,
		logger:        logger,
	}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *AssessmentHandler) RegisterRoutes(mux *http.ServeMux) {
	var submit http.Handler = http.HandlerFunc(h.Assess)
	if h.limiter != nil {
		submit = RateLimitMiddleware(h.limiter)(submit)
	}
	mux.Handle("POST /api/v1/assessments", submit)
	mux.HandleFunc("GET /api/v1/assessments/{id}", h.GetAssessment)
	mux.HandleFunc("GET /api/v1/model-info", h.ModelInfo)
	mux.HandleFunc("GET /api/v1/questionnaire", h.Questionnaire)
	mux.HandleFunc("GET /{$}", h.Banner)
}

// Assess scores one questionnaire submission.
func (h *AssessmentHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var answers map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&answers); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		writeError(w, http.StatusBadRequest, "request body must be a JSON object", nil)
		return
	}

	result, err := h.assessStudent.Execute(r.Context(), dto.AssessRequest{Answers: answers})
	if err != nil {
		h.writeAssessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *AssessmentHandler) writeAssessError(w http.ResponseWriter, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, dto.FromValidationError(verr, h.assessStudent.CrisisResources()))
		return
	}

	var crisis []string
	var perr *model.PredictionError
	if errors.As(err, &perr) && perr.CrisisSignal {
		crisis = h.assessStudent.CrisisResources()
	}
	writeError(w, http.StatusInternalServerError, "assessment could not be completed", crisis)
}

// GetAssessment returns a stored assessment.
func (h *AssessmentHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid assessment id", nil)
		return
	}

	result, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			writeError(w, http.StatusNotFound, "assessment not found", nil)
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load assessment", "assessment_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ModelInfo describes the loaded model.
func (h *AssessmentHandler) ModelInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.describeModel.ModelInfo())
}

// Questionnaire returns the questions a front-end renders.
func (h *AssessmentHandler) Questionnaire(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.describeModel.Questionnaire())
}

// BannerResponse is the body of GET /.
type BannerResponse struct {
	Service       string `json:"service"`
	Message       string `json:"message"`
	ModelVersion  string `json:"model_version"`
	Questionnaire string `json:"questionnaire"`
	Health        string `json:"health"`
}

// Banner identifies the service.
func (h *AssessmentHandler) Banner(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, BannerResponse{
		Service:       ServiceName,
		Message:       "Student depression-risk screening API",
		ModelVersion:  h.describeModel.ModelInfo().Version,
		Questionnaire: "/api/v1/questionnaire",
		Health:        "/healthz",
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, crisisResources []string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, CrisisResources: crisisResources})
}
