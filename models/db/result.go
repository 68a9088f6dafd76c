package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"sap-talent-backend/models"
)

// AssessmentResult is the persisted outcome of scoring one candidate's
// session. Created exactly once per candidate, immutable thereafter.
type AssessmentResult struct {
	BaseModel
	CandidateID  string        `gorm:"type:varchar(36);uniqueIndex"`
	TemplateID   string        `gorm:"type:varchar(36);index"`
	Score        float64       // normalized to [0, 50]
	BlockScores  BlockScores   `gorm:"type:jsonb"` // each normalized to [0, 10]
	Answers      AnswerDetails `gorm:"type:jsonb"`
	Expired      bool          // deadline-initiated rather than user-initiated finish
	CompletedAt  time.Time
	ReportSentTo string `gorm:"type:varchar(255)"`
}

func (j BlockScores) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *BlockScores) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type BlockScores struct {
	Scores map[models.QuestionBlock]float64 `json:"scores"`
}

func (j AnswerDetails) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *AnswerDetails) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

type AnswerDetails struct {
	Answers []AnswerDetail `json:"answers"`
}

// AnswerDetail keeps the per-question outcome in template order.
// SelectedOption is models.UnansweredOption when no option was chosen;
// unanswered collapses to not correct for scoring but stays distinguishable
// here for reporting.
type AnswerDetail struct {
	QuestionID     string               `json:"question_id"`
	SelectedOption int                  `json:"selected_option"`
	IsCorrect      bool                 `json:"is_correct"`
	Block          models.QuestionBlock `json:"block"`
}
