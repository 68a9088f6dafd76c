package aiapimodels

import (
	"sap-talent-backend/models"
)

// GeneratedQuestion is the JSON shape the language model is instructed to
// emit for each multiple-choice question. The block string is normalized to
// the closed enumeration at the generation boundary.
type GeneratedQuestion struct {
	Text               string   `json:"text"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correct_answer_index"`
	Block              string   `json:"block"`
	Weight             float64  `json:"weight,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
}

type GeneratedQuestionSet struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type GeneratedScenario struct {
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Guidelines  string                    `json:"guidelines"`
	Rubric      []GeneratedRubricCriteria `json:"rubric"`
}

type GeneratedRubricCriteria struct {
	Criterion string `json:"criterion"`
	Points    string `json:"points"`
}

// GenerationParams describes the assessment the generator is asked to author.
type GenerationParams struct {
	ModuleCode     string
	ModuleName     string
	IndustryName   string
	Level          models.SeniorityLevel
	DeploymentType models.DeploymentType
	CountsPerBlock map[models.QuestionBlock]int
	ContextText    string // optional extra instructions from the operator
}
