package scoring

import (
	"github.com/pkg/errors"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

// Outcome is the computed part of an assessment result. Persistence and the
// candidate status flip happen in the session finish path, not here.
type Outcome struct {
	Score       float64
	BlockScores dbmodels.BlockScores
	Answers     dbmodels.AnswerDetails
}

// Score converts a template plus the recorded answers into a normalized
// outcome. It is pure and deterministic: reproducible from its inputs alone.
//
// Per question with weight w (default 1): w counts towards the block and
// global maximums; a selected option equal to the correct index earns w for
// the block and globally. An unanswered question never earns. Block scores
// normalize to [0, 10], the overall score to [0, 50]; a block absent from
// the template scores 0, never NaN.
func Score(template dbmodels.AssessmentTemplate, answers dbmodels.SessionAnswers) (Outcome, error) {
	if len(template.Questions.Questions) == 0 {
		return Outcome{}, errors.Wrap(models.ErrInvalidTemplate, "template "+template.ID)
	}

	blockEarned := map[models.QuestionBlock]float64{}
	blockMax := map[models.QuestionBlock]float64{}
	globalEarned := 0.0
	globalMax := 0.0
	details := make([]dbmodels.AnswerDetail, 0, len(template.Questions.Questions))

	for _, question := range template.Questions.Questions {
		weight := question.EffectiveWeight()
		blockMax[question.Block] += weight
		globalMax += weight

		selected, answered := answers.Get(question.QuestionID)
		isCorrect := answered && selected == question.CorrectAnswerIndex
		if isCorrect {
			blockEarned[question.Block] += weight
			globalEarned += weight
		}
		if !answered {
			selected = models.UnansweredOption
		}
		details = append(details, dbmodels.AnswerDetail{
			QuestionID:     question.QuestionID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
			Block:          question.Block,
		})
	}

	scores := map[models.QuestionBlock]float64{}
	for _, block := range models.AllBlocks() {
		max := blockMax[block]
		if max > 0 {
			scores[block] = blockEarned[block] / max * 10
		} else {
			scores[block] = 0
		}
	}

	return Outcome{
		Score:       globalEarned / globalMax * 50,
		BlockScores: dbmodels.BlockScores{Scores: scores},
		Answers:     dbmodels.AnswerDetails{Answers: details},
	}, nil
}

// Verdict is the pass/fail decision for one scored assessment.
type Verdict struct {
	Approved  bool    `json:"approved"`
	Threshold float64 `json:"threshold"`
}

// Evaluate maps a seniority level and an overall score to a verdict against
// the fixed per-level thresholds. An unrecognized level falls back to the
// middle threshold rather than failing.
func Evaluate(level models.SeniorityLevel, score float64) Verdict {
	threshold := models.DefaultThreshold
	switch level {
	case models.LevelJunior:
		threshold = models.JuniorThreshold
	case models.LevelMiddle:
		threshold = models.MiddleThreshold
	case models.LevelSenior:
		threshold = models.SeniorThreshold
	}
	return Verdict{
		Approved:  score >= threshold,
		Threshold: threshold,
	}
}
