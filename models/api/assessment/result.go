package assessmentapimodels

import (
	"time"

	"sap-talent-backend/lib/assessment/scoring"
	"sap-talent-backend/models"
	candidateapimodels "sap-talent-backend/models/api/candidate"
	dbmodels "sap-talent-backend/models/db"
)

type AnswerDetailView struct {
	QuestionID     string               `json:"question_id"`
	SelectedOption int                  `json:"selected_option"`
	IsCorrect      bool                 `json:"is_correct"`
	Block          models.QuestionBlock `json:"block"`
}

type ResultView struct {
	ID           string                           `json:"id"`
	CandidateID  string                           `json:"candidate_id"`
	TemplateID   string                           `json:"template_id"`
	Score        float64                          `json:"score"`
	BlockScores  map[models.QuestionBlock]float64 `json:"block_scores"`
	Verdict      scoring.Verdict                  `json:"verdict"`
	Answers      []AnswerDetailView               `json:"answers"`
	Expired      bool                             `json:"expired"`
	CompletedAt  time.Time                        `json:"completed_at"`
	ReportSentTo string                           `json:"report_sent_to,omitempty"`
}

func ResultConvert(rec dbmodels.AssessmentResult, level models.SeniorityLevel) ResultView {
	view := ResultView{
		ID:           rec.ID,
		CandidateID:  rec.CandidateID,
		TemplateID:   rec.TemplateID,
		Score:        rec.Score,
		BlockScores:  rec.BlockScores.Scores,
		Verdict:      scoring.Evaluate(level, rec.Score),
		Answers:      make([]AnswerDetailView, 0, len(rec.Answers.Answers)),
		Expired:      rec.Expired,
		CompletedAt:  rec.CompletedAt,
		ReportSentTo: rec.ReportSentTo,
	}
	for _, detail := range rec.Answers.Answers {
		view.Answers = append(view.Answers, AnswerDetailView{
			QuestionID:     detail.QuestionID,
			SelectedOption: detail.SelectedOption,
			IsCorrect:      detail.IsCorrect,
			Block:          detail.Block,
		})
	}
	return view
}

// CandidateCardView is the operator view of a single candidate with the
// assessment result attached once one exists.
type CandidateCardView struct {
	candidateapimodels.CandidateView
	Result *ResultView `json:"result,omitempty"`
}

// ComparisonRow is one candidate in the dashboard comparison table.
type ComparisonRow struct {
	CandidateID   string                           `json:"candidate_id"`
	CandidateName string                           `json:"candidate_name"`
	Level         models.SeniorityLevel            `json:"level"`
	Score         float64                          `json:"score"`
	BlockScores   map[models.QuestionBlock]float64 `json:"block_scores"`
	Approved      bool                             `json:"approved"`
	CompletedAt   time.Time                        `json:"completed_at"`
}

type ComparisonView struct {
	Rows          []ComparisonRow                  `json:"rows"`
	AverageScore  float64                          `json:"average_score"`
	AverageBlocks map[models.QuestionBlock]float64 `json:"average_blocks"`
	ApprovalRate  float64                          `json:"approval_rate"`
}
