package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"sap-talent-backend/models"
)

// AssessmentTemplate is the immutable bundle of questions a candidate is
// evaluated against. It is never edited in place: any compositional change
// produces a new template with a new id, so old results stay reproducible.
type AssessmentTemplate struct {
	BaseModel
	Name           string                `gorm:"type:varchar(255)"`
	ModuleID       string                `gorm:"type:varchar(36);index"`
	IndustryID     string                `gorm:"type:varchar(36);index"`
	Level          models.SeniorityLevel `gorm:"type:varchar(16)"`
	DeploymentType models.DeploymentType `gorm:"type:varchar(32)"`
	Questions      TemplateQuestions     `gorm:"type:jsonb"`
	Scenario       *TemplateScenario     `gorm:"type:jsonb"`
}

func (j TemplateQuestions) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TemplateQuestions) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// TemplateQuestions keeps the questions in presentation order.
type TemplateQuestions struct {
	Questions []TemplateQuestion `json:"questions"`
}

type TemplateQuestion struct {
	QuestionID         string               `json:"question_id"`
	Text               string               `json:"text"`
	Options            []string             `json:"options"`
	CorrectAnswerIndex int                  `json:"correct_answer_index"`
	Block              models.QuestionBlock `json:"block"`
	Weight             float64              `json:"weight,omitempty"` // 0 means default weight 1
	Explanation        string               `json:"explanation,omitempty"`
}

// EffectiveWeight resolves the optional weight to its default.
func (q TemplateQuestion) EffectiveWeight() float64 {
	if q.Weight > 0 {
		return q.Weight
	}
	return 1
}

func (j TemplateScenario) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *TemplateScenario) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// TemplateScenario is an open-ended case study attached to a template.
// Its rubric is advisory metadata for a human or AI evaluator, the scoring
// engine never reads it.
type TemplateScenario struct {
	ScenarioID  string             `json:"scenario_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Guidelines  string             `json:"guidelines"`
	Rubric      []ScenarioCriteria `json:"rubric"`
}

type ScenarioCriteria struct {
	Criterion string `json:"criterion"`
	Points    string `json:"points"`
}
