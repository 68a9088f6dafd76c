package assessmentapimodels

import (
	"github.com/pkg/errors"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

// PublicQuestionView is what the candidate sees. It deliberately carries no
// correct answer index and no explanation.
type PublicQuestionView struct {
	QuestionID string               `json:"question_id"`
	Text       string               `json:"text"`
	Options    []string             `json:"options"`
	Block      models.QuestionBlock `json:"block"`
}

func PublicQuestionConvert(q dbmodels.TemplateQuestion) PublicQuestionView {
	return PublicQuestionView{
		QuestionID: q.QuestionID,
		Text:       q.Text,
		Options:    q.Options,
		Block:      q.Block,
	}
}

// PublicAssessmentView is the session entry point resolved from a shareable
// link. Completed is set when the candidate already finished; the questions
// are omitted in that case.
type PublicAssessmentView struct {
	CandidateName  string                `json:"candidate_name"`
	AssessmentName string                `json:"assessment_name"`
	Level          models.SeniorityLevel `json:"level"`
	DurationSec    int                   `json:"duration_sec"`
	Completed      bool                  `json:"completed"`
	Questions      []PublicQuestionView  `json:"questions,omitempty"`
	Scenario       *ScenarioView         `json:"scenario,omitempty"`
	Result         *PublicResultView     `json:"result,omitempty"`
}

type SessionStateView struct {
	State        models.SessionState `json:"state"`
	RemainingSec int                 `json:"remaining_sec"`
	Answered     map[string]int      `json:"answered"`
}

type AnswerRequest struct {
	QuestionID     string `json:"question_id"`
	SelectedOption int    `json:"selected_option"`
}

func (r AnswerRequest) Validate() error {
	if r.QuestionID == "" {
		return errors.New("question id is required")
	}
	if r.SelectedOption < 0 {
		return errors.New("selected option must be a valid option index")
	}
	return nil
}

type SeenRequest struct {
	QuestionIndex int `json:"question_index"`
}

func (r SeenRequest) Validate() error {
	if r.QuestionIndex < 0 {
		return errors.New("question index must be non-negative")
	}
	return nil
}

// PublicResultView is the summary shown to a candidate after finishing.
type PublicResultView struct {
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
	Approved  bool    `json:"approved"`
	Threshold float64 `json:"threshold"`
}
