package dbmodels

import (
	"sap-talent-backend/models"
)

// Candidate is a person invited to take one assessment.
type Candidate struct {
	BaseModel
	Name           string                 `gorm:"type:varchar(255)"`
	Email          string                 `gorm:"type:varchar(255);index"`
	ModuleID       string                 `gorm:"type:varchar(36);index"`
	IndustryID     string                 `gorm:"type:varchar(36);index"`
	Level          models.SeniorityLevel  `gorm:"type:varchar(16)"`
	DeploymentType models.DeploymentType  `gorm:"type:varchar(32)"`
	TemplateID     string                 `gorm:"type:varchar(36);index"`
	Status         models.CandidateStatus `gorm:"type:varchar(16);index"`
	TestLink       string                 `gorm:"type:varchar(512)"`
}
