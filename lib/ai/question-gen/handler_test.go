package questiongen

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"sap-talent-backend/models"
	aiapimodels "sap-talent-backend/models/api/ai"
)

type fakeGpt struct {
	response string
	err      error
}

func (f fakeGpt) GenerateByPromptAndText(ctx context.Context, prompt, text string) (string, error) {
	return f.response, f.err
}

func genParams() aiapimodels.GenerationParams {
	return aiapimodels.GenerationParams{
		ModuleCode:     "FI",
		ModuleName:     "Financial Accounting",
		IndustryName:   "Retail",
		Level:          models.LevelSenior,
		DeploymentType: models.DeploymentPublicCloud,
		CountsPerBlock: map[models.QuestionBlock]int{models.BlockProcess: 2},
	}
}

func TestGenerateQuestions(t *testing.T) {
	t.Run("decodes fenced payload and normalizes loose block names", func(t *testing.T) {
		response := "```json\n{\"questions\":[" +
			`{"text":"q1","options":["a","b","c"],"correct_answer_index":2,"block":"master data"},` +
			`{"text":"q2","options":["a","b"],"correct_answer_index":0,"block":"clean_core","explanation":"why"}` +
			"]}\n```"
		gen := NewInstance(fakeGpt{response: response})

		questions, err := gen.GenerateQuestions(context.Background(), genParams())
		require.Nil(t, err)
		require.Len(t, questions, 2)
		require.Equal(t, models.BlockMasterData, questions[0].Block)
		require.Equal(t, models.BlockCleanCore, questions[1].Block)
		require.NotEmpty(t, questions[0].QuestionID)
		require.NotEqual(t, questions[0].QuestionID, questions[1].QuestionID)
		require.Equal(t, "why", questions[1].Explanation)
	})

	t.Run("drops malformed questions and keeps valid ones", func(t *testing.T) {
		response := `{"questions":[` +
			`{"text":"bad block","options":["a","b"],"correct_answer_index":0,"block":"Leadership"},` +
			`{"text":"one option","options":["a"],"correct_answer_index":0,"block":"Process"},` +
			`{"text":"index out of range","options":["a","b"],"correct_answer_index":5,"block":"Process"},` +
			`{"text":"ok","options":["a","b"],"correct_answer_index":1,"block":"Process"}` +
			`]}`
		gen := NewInstance(fakeGpt{response: response})

		questions, err := gen.GenerateQuestions(context.Background(), genParams())
		require.Nil(t, err)
		require.Len(t, questions, 1)
		require.Equal(t, "ok", questions[0].Text)
	})

	t.Run("empty set is a generation failure", func(t *testing.T) {
		gen := NewInstance(fakeGpt{response: `{"questions":[]}`})
		_, err := gen.GenerateQuestions(context.Background(), genParams())
		require.ErrorIs(t, err, models.ErrGenerationFailure)
	})

	t.Run("gpt error is a generation failure", func(t *testing.T) {
		gen := NewInstance(fakeGpt{err: errors.New("quota exceeded")})
		_, err := gen.GenerateQuestions(context.Background(), genParams())
		require.ErrorIs(t, err, models.ErrGenerationFailure)
	})

	t.Run("non-json payload is a generation failure", func(t *testing.T) {
		gen := NewInstance(fakeGpt{response: "Sorry, I can not help with that."})
		_, err := gen.GenerateQuestions(context.Background(), genParams())
		require.ErrorIs(t, err, models.ErrGenerationFailure)
	})
}

func TestGenerateScenario(t *testing.T) {
	t.Run("decodes scenario with rubric", func(t *testing.T) {
		response := `{"title":"Month-end close","description":"desc","guidelines":"steps",` +
			`"rubric":[{"criterion":"accuracy","points":"0-5"}]}`
		gen := NewInstance(fakeGpt{response: response})

		scenario, err := gen.GenerateScenario(context.Background(), genParams())
		require.Nil(t, err)
		require.NotEmpty(t, scenario.ScenarioID)
		require.Equal(t, "Month-end close", scenario.Title)
		require.Len(t, scenario.Rubric, 1)
	})

	t.Run("missing title is a generation failure", func(t *testing.T) {
		gen := NewInstance(fakeGpt{response: `{"description":"desc"}`})
		_, err := gen.GenerateScenario(context.Background(), genParams())
		require.ErrorIs(t, err, models.ErrGenerationFailure)
	})
}
