package assessmentapimodels

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"sap-talent-backend/models"
	candidateapimodels "sap-talent-backend/models/api/candidate"
	dbmodels "sap-talent-backend/models/db"
)

var validate = validator.New()

// ComposeRequest asks for one generated template plus the candidate it is
// created for. Template and candidate writes are treated as a unit: the
// candidate is only saved after the template save succeeded.
type ComposeRequest struct {
	Name            string                           `json:"name" validate:"required,min=3"`
	BlockCounts     map[models.QuestionBlock]int     `json:"block_counts"`
	IncludeScenario bool                             `json:"include_scenario"`
	Candidate       candidateapimodels.CandidateData `json:"candidate"`
}

func (r ComposeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return errors.Wrap(err, "invalid compose request")
	}
	if err := r.Candidate.Validate(); err != nil {
		return err
	}
	// empty counts fall back to the default shape at composition time
	if len(r.BlockCounts) == 0 {
		return nil
	}
	total := 0
	for block, count := range r.BlockCounts {
		if !block.IsValid() {
			return errors.Errorf("unknown question block %q", block)
		}
		if count < 0 {
			return errors.Errorf("negative question count for block %q", block)
		}
		total += count
	}
	if total == 0 {
		return errors.New("at least one question must be requested")
	}
	return nil
}

// DefaultBlockCounts is the reference deployment shape: 5 questions in each
// of the 5 blocks.
func DefaultBlockCounts() map[models.QuestionBlock]int {
	counts := map[models.QuestionBlock]int{}
	for _, block := range models.AllBlocks() {
		counts[block] = 5
	}
	return counts
}

type QuestionView struct {
	QuestionID         string               `json:"question_id"`
	Text               string               `json:"text"`
	Options            []string             `json:"options"`
	CorrectAnswerIndex int                  `json:"correct_answer_index"`
	Block              models.QuestionBlock `json:"block"`
	Weight             float64              `json:"weight"`
	Explanation        string               `json:"explanation,omitempty"`
}

type ScenarioView struct {
	ScenarioID  string                      `json:"scenario_id"`
	Title       string                      `json:"title"`
	Description string                      `json:"description"`
	Guidelines  string                      `json:"guidelines"`
	Rubric      []dbmodels.ScenarioCriteria `json:"rubric"`
}

type TemplateView struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	ModuleID       string                `json:"module_id"`
	IndustryID     string                `json:"industry_id"`
	Level          models.SeniorityLevel `json:"level"`
	DeploymentType models.DeploymentType `json:"deployment_type"`
	Questions      []QuestionView        `json:"questions"`
	Scenario       *ScenarioView         `json:"scenario,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
}

func TemplateConvert(rec dbmodels.AssessmentTemplate) TemplateView {
	view := TemplateView{
		ID:             rec.ID,
		Name:           rec.Name,
		ModuleID:       rec.ModuleID,
		IndustryID:     rec.IndustryID,
		Level:          rec.Level,
		DeploymentType: rec.DeploymentType,
		Questions:      make([]QuestionView, 0, len(rec.Questions.Questions)),
		CreatedAt:      rec.CreatedAt,
	}
	for _, q := range rec.Questions.Questions {
		view.Questions = append(view.Questions, QuestionView{
			QuestionID:         q.QuestionID,
			Text:               q.Text,
			Options:            q.Options,
			CorrectAnswerIndex: q.CorrectAnswerIndex,
			Block:              q.Block,
			Weight:             q.EffectiveWeight(),
			Explanation:        q.Explanation,
		})
	}
	if rec.Scenario != nil {
		view.Scenario = &ScenarioView{
			ScenarioID:  rec.Scenario.ScenarioID,
			Title:       rec.Scenario.Title,
			Description: rec.Scenario.Description,
			Guidelines:  rec.Scenario.Guidelines,
			Rubric:      rec.Scenario.Rubric,
		}
	}
	return view
}
