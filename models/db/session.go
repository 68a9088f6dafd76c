package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"sap-talent-backend/models"
)

// AssessmentSession is the persisted state of one candidate's time-boxed
// attempt. Answer selections are written synchronously on every choice, so
// the row always reflects everything the candidate has saved; there is no
// separate unsaved buffer to lose on expiry.
type AssessmentSession struct {
	BaseModel
	CandidateID  string              `gorm:"type:varchar(36);uniqueIndex"`
	TemplateID   string              `gorm:"type:varchar(36);index"`
	State        models.SessionState `gorm:"type:varchar(16);index"`
	StartedAt    *time.Time
	Deadline     *time.Time
	FinishedAt   *time.Time
	Answers      SessionAnswers `gorm:"type:jsonb"`
	VisitedOrder pq.Int64Array  `gorm:"type:integer[]"` // question indexes in visit order
}

func (j SessionAnswers) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *SessionAnswers) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}

// SessionAnswers maps question id to the chosen option index. Re-answering a
// question overwrites the entry, no history is kept.
type SessionAnswers struct {
	Selected map[string]int `json:"selected"`
}

func (j SessionAnswers) Get(questionID string) (selected int, ok bool) {
	if j.Selected == nil {
		return 0, false
	}
	selected, ok = j.Selected[questionID]
	return selected, ok
}
