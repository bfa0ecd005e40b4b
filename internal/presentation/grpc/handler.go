package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
)

// Compile-time assertion that AssessmentServiceHandler implements AssessmentServiceServer.
var _ AssessmentServiceServer = (*AssessmentServiceHandler)(nil)

// AssessmentServiceHandler implements the gRPC AssessmentServiceServer interface.
type AssessmentServiceHandler struct {
	UnimplementedAssessmentServiceServer
	assessStudent *usecase.AssessStudent
	getAssessment *usecase.GetAssessment
	logger        *slog.Logger
}

// NewAssessmentServiceHandler creates a new gRPC handler.
func NewAssessmentServiceHandler(
	assessStudent *usecase.AssessStudent,
	getAssessment *usecase.GetAssessment,
	logger *slog.Logger,
) *AssessmentServiceHandler {
	return &AssessmentServiceHandler{
		assessStudent: assessStudent,
		getAssessment: getAssessment,
		logger:        logger,
	}
}

// Wire message types.

// AssessRequest carries the questionnaire answers keyed by field name.
type AssessRequest struct {
	Answers map[string]interface{} `json:"answers"`
}

// RiskFactorMsg is one fired risk rule.
type RiskFactorMsg struct {
	Factor      string      `json:"factor"`
	Value       interface{} `json:"value"`
	Impact      string      `json:"impact"`
	Description string      `json:"description"`
}

// UnseenCategoryMsg reports a substituted categorical answer.
type UnseenCategoryMsg struct {
	Field      string `json:"field"`
	Value      string `json:"value"`
	Substitute string `json:"substitute"`
}

// AssessmentMsg is a completed assessment.
type AssessmentMsg struct {
	ID               string              `json:"id"`
	Prediction       int32               `json:"prediction"`
	Probability      float64             `json:"probability"`
	Confidence       string              `json:"confidence"`
	RiskLevel        string              `json:"risk_level"`
	RiskFactors      []RiskFactorMsg     `json:"risk_factors"`
	Recommendations  []string            `json:"recommendations"`
	UnseenCategories []UnseenCategoryMsg `json:"unseen_categories"`
	ModelVersion     string              `json:"model_version"`
	AssessedAt       string              `json:"assessed_at"`
}

// AssessResponse wraps the new assessment.
type AssessResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// GetAssessmentRequest names a stored assessment.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse wraps the stored assessment.
type GetAssessmentResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// Assess handles a questionnaire submission.
func (h *AssessmentServiceHandler) Assess(ctx context.Context, req *AssessRequest) (*AssessResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.assessStudent.Execute(ctx, dto.AssessRequest{Answers: req.Answers})
	if err != nil {
		return nil, h.assessError(err)
	}

	return &AssessResponse{Assessment: toAssessmentMsg(result)}, nil
}

// GetAssessment handles a get assessment request.
func (h *AssessmentServiceHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	assessmentID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid id: %v", err)
	}

	result, err := h.getAssessment.Execute(ctx, dto.GetAssessmentRequest{AssessmentID: assessmentID})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, status.Errorf(codes.NotFound, "assessment %s not found", assessmentID)
		}
		h.logger.ErrorContext(ctx, "failed to get assessment",
			slog.String("assessment_id", assessmentID.String()),
			slog.String("error", err.Error()),
		)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

// assessError maps a use case failure to a status. Field violations travel
// as BadRequest details and crisis resources as LocalizedMessage details.
func (h *AssessmentServiceHandler) assessError(err error) error {
	var crisis []string

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		br := &errdetails.BadRequest{}
		for _, f := range verr.Fields {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       f.Field,
				Description: f.Message,
			})
		}
		if verr.CrisisSignal {
			crisis = h.assessStudent.CrisisResources()
		}
		return statusWithDetails(codes.InvalidArgument, "validation failed", br, crisis)
	}

	var perr *model.PredictionError
	if errors.As(err, &perr) && perr.CrisisSignal {
		crisis = h.assessStudent.CrisisResources()
	}
	return statusWithDetails(codes.Internal, "assessment could not be completed", nil, crisis)
}

func statusWithDetails(code codes.Code, msg string, br *errdetails.BadRequest, crisis []string) error {
	st := status.New(code, msg)
	if br != nil {
		if d, err := st.WithDetails(br); err == nil {
			st = d
		}
	}
	for _, r := range crisis {
		if d, err := st.WithDetails(&errdetails.LocalizedMessage{Locale: "en-US", Message: r}); err == nil {
			st = d
		}
	}
	return st.Err()
}

func toAssessmentMsg(a dto.AssessmentResponse) *AssessmentMsg {
	factors := make([]RiskFactorMsg, 0, len(a.RiskFactors))
	for _, f := range a.RiskFactors {
		factors = append(factors, RiskFactorMsg{
			Factor:      f.Factor,
			Value:       f.Value,
			Impact:      f.Impact,
			Description: f.Description,
		})
	}

	unseen := make([]UnseenCategoryMsg, 0, len(a.UnseenCategories))
	for _, u := range a.UnseenCategories {
		unseen = append(unseen, UnseenCategoryMsg(u))
	}

	return &AssessmentMsg{
		ID:               a.ID.String(),
		Prediction:       int32(a.Prediction),
		Probability:      a.Probability,
		Confidence:       a.Confidence,
		RiskLevel:        a.RiskLevel,
		RiskFactors:      factors,
		Recommendations:  a.Recommendations,
		UnseenCategories: unseen,
		ModelVersion:     a.ModelVersion,
		AssessedAt:       a.AssessedAt.UTC().Format(time.RFC3339Nano),
	}
}
