package dbmodels

import "time"

// OperatorUser is a recruiter account with access to the dashboard API.
type OperatorUser struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255)"`
	FirstName    string `gorm:"type:varchar(128)"`
	LastName     string `gorm:"type:varchar(128)"`
	LastLogin    *time.Time
}
