package scoring

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

func makeTemplate(questionsPerBlock int, weight float64) dbmodels.AssessmentTemplate {
	tpl := dbmodels.AssessmentTemplate{
		BaseModel: dbmodels.BaseModel{ID: "tpl-1"},
		Level:     models.LevelSenior,
	}
	for _, block := range models.AllBlocks() {
		for n := 0; n < questionsPerBlock; n++ {
			tpl.Questions.Questions = append(tpl.Questions.Questions, dbmodels.TemplateQuestion{
				QuestionID:         fmt.Sprintf("%s-%d", block, n),
				Text:               "q",
				Options:            []string{"a", "b", "c", "d"},
				CorrectAnswerIndex: n % 4,
				Block:              block,
				Weight:             weight,
			})
		}
	}
	return tpl
}

func TestScore(t *testing.T) {
	t.Run("all correct on 5x5 uniform template", func(t *testing.T) {
		tpl := makeTemplate(5, 0) // zero weight resolves to default 1
		answers := dbmodels.SessionAnswers{Selected: map[string]int{}}
		for _, q := range tpl.Questions.Questions {
			answers.Selected[q.QuestionID] = q.CorrectAnswerIndex
		}

		outcome, err := Score(tpl, answers)
		require.Nil(t, err)
		require.Equal(t, 50.0, outcome.Score)
		for _, block := range models.AllBlocks() {
			require.Equal(t, 10.0, outcome.BlockScores.Scores[block])
		}
		require.Len(t, outcome.Answers.Answers, 25)
		for _, detail := range outcome.Answers.Answers {
			require.True(t, detail.IsCorrect)
		}
	})

	t.Run("no answers yields zero without NaN", func(t *testing.T) {
		tpl := makeTemplate(5, 1)
		outcome, err := Score(tpl, dbmodels.SessionAnswers{})
		require.Nil(t, err)
		require.Equal(t, 0.0, outcome.Score)
		require.False(t, math.IsNaN(outcome.Score))
		for _, block := range models.AllBlocks() {
			require.Equal(t, 0.0, outcome.BlockScores.Scores[block])
			require.False(t, math.IsNaN(outcome.BlockScores.Scores[block]))
		}
		for _, detail := range outcome.Answers.Answers {
			require.Equal(t, models.UnansweredOption, detail.SelectedOption)
			require.False(t, detail.IsCorrect)
		}
	})

	t.Run("weighted block asymmetry", func(t *testing.T) {
		tpl := dbmodels.AssessmentTemplate{}
		tpl.Questions.Questions = []dbmodels.TemplateQuestion{
			{QuestionID: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 0, Block: models.BlockProcess, Weight: 1},
			{QuestionID: "q2", Options: []string{"a", "b"}, CorrectAnswerIndex: 1, Block: models.BlockProcess, Weight: 3},
		}
		answers := dbmodels.SessionAnswers{Selected: map[string]int{"q2": 1}}

		outcome, err := Score(tpl, answers)
		require.Nil(t, err)
		require.Equal(t, 7.5, outcome.BlockScores.Scores[models.BlockProcess])
		require.Equal(t, 3.0/4.0*50, outcome.Score)
	})

	t.Run("partial answers stay in bounds", func(t *testing.T) {
		tpl := makeTemplate(5, 2)
		answers := dbmodels.SessionAnswers{Selected: map[string]int{}}
		for n, q := range tpl.Questions.Questions {
			if n%3 == 0 {
				answers.Selected[q.QuestionID] = q.CorrectAnswerIndex
			} else if n%3 == 1 {
				answers.Selected[q.QuestionID] = q.CorrectAnswerIndex + 1
			}
		}
		outcome, err := Score(tpl, answers)
		require.Nil(t, err)
		require.GreaterOrEqual(t, outcome.Score, 0.0)
		require.LessOrEqual(t, outcome.Score, 50.0)
		for _, block := range models.AllBlocks() {
			require.GreaterOrEqual(t, outcome.BlockScores.Scores[block], 0.0)
			require.LessOrEqual(t, outcome.BlockScores.Scores[block], 10.0)
		}
	})

	t.Run("block absent from template scores zero", func(t *testing.T) {
		tpl := dbmodels.AssessmentTemplate{}
		tpl.Questions.Questions = []dbmodels.TemplateQuestion{
			{QuestionID: "q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 0, Block: models.BlockCleanCore},
		}
		outcome, err := Score(tpl, dbmodels.SessionAnswers{Selected: map[string]int{"q1": 0}})
		require.Nil(t, err)
		require.Equal(t, 0.0, outcome.BlockScores.Scores[models.BlockProcess])
		require.Equal(t, 10.0, outcome.BlockScores.Scores[models.BlockCleanCore])
	})

	t.Run("empty template is rejected", func(t *testing.T) {
		_, err := Score(dbmodels.AssessmentTemplate{}, dbmodels.SessionAnswers{})
		require.NotNil(t, err)
		require.ErrorIs(t, err, models.ErrInvalidTemplate)
	})

	t.Run("selecting the same option twice is a no-op overwrite", func(t *testing.T) {
		tpl := makeTemplate(1, 1)
		answers := dbmodels.SessionAnswers{Selected: map[string]int{}}
		for _, q := range tpl.Questions.Questions {
			answers.Selected[q.QuestionID] = q.CorrectAnswerIndex + 1
			answers.Selected[q.QuestionID] = q.CorrectAnswerIndex
		}
		first, err := Score(tpl, answers)
		require.Nil(t, err)
		second, err := Score(tpl, answers)
		require.Nil(t, err)
		require.Equal(t, first, second)
		require.Equal(t, 50.0, first.Score)
	})
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		level     models.SeniorityLevel
		score     float64
		approved  bool
		threshold float64
	}{
		{name: "senior at threshold", level: models.LevelSenior, score: 42.5, approved: true, threshold: 42.5},
		{name: "senior just below", level: models.LevelSenior, score: 42.4999, approved: false, threshold: 42.5},
		{name: "junior pass", level: models.LevelJunior, score: 25.0, approved: true, threshold: 25.0},
		{name: "junior fail", level: models.LevelJunior, score: 24.9, approved: false, threshold: 25.0},
		{name: "middle pass", level: models.LevelMiddle, score: 36.0, approved: true, threshold: 35.0},
		{name: "unknown level falls back to middle", level: "Staff", score: 35.0, approved: true, threshold: 35.0},
		{name: "unknown level fail", level: "Staff", score: 34.9, approved: false, threshold: 35.0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verdict := Evaluate(tc.level, tc.score)
			require.Equal(t, tc.approved, verdict.Approved)
			require.Equal(t, tc.threshold, verdict.Threshold)
		})
	}
}
