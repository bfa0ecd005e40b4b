package usecase

import (
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
)

// DescribeModel serves the static descriptions of the running service: the
// loaded model and the questionnaire. Both are fixed at startup.
type DescribeModel struct {
	info          dto.ModelInfoResponse
	questionnaire *service.Questionnaire
}

// NewDescribeModel creates a new DescribeModel use case.
func NewDescribeModel(info model.ModelInfo, questionnaire *service.Questionnaire) *DescribeModel {
	return &DescribeModel{info: dto.FromModelInfo(info), questionnaire: questionnaire}
}

// ModelInfo returns the loaded model description.
func (uc *DescribeModel) ModelInfo() dto.ModelInfoResponse { return uc.info }

// Questionnaire returns the questionnaire definition.
func (uc *DescribeModel) Questionnaire() *service.Questionnaire { return uc.questionnaire }
