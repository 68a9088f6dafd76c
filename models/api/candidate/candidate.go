package candidateapimodels

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

var validate = validator.New()

type CandidateData struct {
	Name           string                `json:"name" validate:"required,min=2"`
	Email          string                `json:"email" validate:"required,email"`
	ModuleID       string                `json:"module_id" validate:"required,uuid4"`
	IndustryID     string                `json:"industry_id" validate:"required,uuid4"`
	Level          models.SeniorityLevel `json:"level" validate:"required"`
	DeploymentType models.DeploymentType `json:"deployment_type" validate:"required"`
}

func (r CandidateData) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(err, "invalid candidate data")
	}
	switch r.Level {
	case models.LevelJunior, models.LevelMiddle, models.LevelSenior:
	default:
		return errors.New("unknown seniority level")
	}
	switch r.DeploymentType {
	case models.DeploymentPrivateCloud, models.DeploymentPublicCloud:
	default:
		return errors.New("unknown deployment type")
	}
	return nil
}

type CandidateView struct {
	CandidateData
	ID         string                 `json:"id"`
	TemplateID string                 `json:"template_id"`
	Status     models.CandidateStatus `json:"status"`
	TestLink   string                 `json:"test_link"`
	CreatedAt  time.Time              `json:"created_at"`
}

func CandidateConvert(rec dbmodels.Candidate) CandidateView {
	return CandidateView{
		CandidateData: CandidateData{
			Name:           rec.Name,
			Email:          rec.Email,
			ModuleID:       rec.ModuleID,
			IndustryID:     rec.IndustryID,
			Level:          rec.Level,
			DeploymentType: rec.DeploymentType,
		},
		ID:         rec.ID,
		TemplateID: rec.TemplateID,
		Status:     rec.Status,
		TestLink:   rec.TestLink,
		CreatedAt:  rec.CreatedAt,
	}
}
