package questiongen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/config"
	yagptclient "sap-talent-backend/lib/ai/yagpt-client"
	"sap-talent-backend/models"
	aiapimodels "sap-talent-backend/models/api/ai"
	dbmodels "sap-talent-backend/models/db"
)

// Provider is the AI content collaborator: it authors question sets and case
// study scenarios for a given assessment shape. Failures are fatal to the
// composition attempt that requested them.
type Provider interface {
	GenerateQuestions(ctx context.Context, params aiapimodels.GenerationParams) ([]dbmodels.TemplateQuestion, error)
	GenerateScenario(ctx context.Context, params aiapimodels.GenerationParams) (*dbmodels.TemplateScenario, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(yagptclient.NewClient(config.Conf.YandexGPT.IAMToken, config.Conf.YandexGPT.CatalogID))
}

func NewInstance(gpt yagptclient.Provider) Provider {
	return impl{
		gpt: gpt,
	}
}

type impl struct {
	gpt yagptclient.Provider
}

const questionsPrompt = "You are a senior SAP technical interviewer. " +
	"Author multiple-choice assessment questions and answer strictly with a single JSON object " +
	`of the form {"questions":[{"text":"...","options":["..."],"correct_answer_index":0,"block":"...","explanation":"..."}]}. ` +
	"Each question must have at least 2 options and exactly one correct option. " +
	"Allowed block values: MasterData, Process, SoftSkill, SAPActivate, CleanCore. " +
	"Do not add any text outside the JSON object."

const scenarioPrompt = "You are a senior SAP technical interviewer. " +
	"Author one open-ended case study scenario and answer strictly with a single JSON object " +
	`of the form {"title":"...","description":"...","guidelines":"...","rubric":[{"criterion":"...","points":"..."}]}. ` +
	"Do not add any text outside the JSON object."

func (i impl) GenerateQuestions(ctx context.Context, params aiapimodels.GenerationParams) ([]dbmodels.TemplateQuestion, error) {
	logger := log.
		WithField("module", params.ModuleCode).
		WithField("level", string(params.Level))

	raw, err := i.gpt.GenerateByPromptAndText(ctx, questionsPrompt, buildQuestionsTask(params))
	if err != nil {
		logger.WithError(err).Error("question generation request failed")
		return nil, errors.Wrap(models.ErrGenerationFailure, err.Error())
	}

	var payload aiapimodels.GeneratedQuestionSet
	if err := json.Unmarshal(extractJSON(raw), &payload); err != nil {
		logger.WithError(err).Error("generated questions are not valid JSON")
		return nil, errors.Wrap(models.ErrGenerationFailure, "malformed generation payload")
	}
	if len(payload.Questions) == 0 {
		logger.Error("generator returned an empty question set")
		return nil, errors.Wrap(models.ErrGenerationFailure, "empty question set")
	}

	questions := make([]dbmodels.TemplateQuestion, 0, len(payload.Questions))
	for n, generated := range payload.Questions {
		block, ok := normalizeBlock(generated.Block)
		if !ok {
			logger.WithField("block", generated.Block).Warn("generated question has unknown block, skipped")
			continue
		}
		if len(generated.Options) < 2 {
			logger.WithField("question_n", n).Warn("generated question has less than 2 options, skipped")
			continue
		}
		if generated.CorrectAnswerIndex < 0 || generated.CorrectAnswerIndex >= len(generated.Options) {
			logger.WithField("question_n", n).Warn("generated question has correct index out of range, skipped")
			continue
		}
		questions = append(questions, dbmodels.TemplateQuestion{
			QuestionID:         uuid.NewString(),
			Text:               generated.Text,
			Options:            generated.Options,
			CorrectAnswerIndex: generated.CorrectAnswerIndex,
			Block:              block,
			Weight:             generated.Weight,
			Explanation:        generated.Explanation,
		})
	}
	if len(questions) == 0 {
		return nil, errors.Wrap(models.ErrGenerationFailure, "no usable questions after validation")
	}
	return questions, nil
}

func (i impl) GenerateScenario(ctx context.Context, params aiapimodels.GenerationParams) (*dbmodels.TemplateScenario, error) {
	raw, err := i.gpt.GenerateByPromptAndText(ctx, scenarioPrompt, buildScenarioTask(params))
	if err != nil {
		return nil, errors.Wrap(models.ErrGenerationFailure, err.Error())
	}
	var payload aiapimodels.GeneratedScenario
	if err := json.Unmarshal(extractJSON(raw), &payload); err != nil {
		return nil, errors.Wrap(models.ErrGenerationFailure, "malformed scenario payload")
	}
	if payload.Title == "" || payload.Description == "" {
		return nil, errors.Wrap(models.ErrGenerationFailure, "scenario is missing title or description")
	}
	scenario := dbmodels.TemplateScenario{
		ScenarioID:  uuid.NewString(),
		Title:       payload.Title,
		Description: payload.Description,
		Guidelines:  payload.Guidelines,
		Rubric:      make([]dbmodels.ScenarioCriteria, 0, len(payload.Rubric)),
	}
	for _, criteria := range payload.Rubric {
		scenario.Rubric = append(scenario.Rubric, dbmodels.ScenarioCriteria{
			Criterion: criteria.Criterion,
			Points:    criteria.Points,
		})
	}
	return &scenario, nil
}

func buildQuestionsTask(params aiapimodels.GenerationParams) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate questions for a %s level SAP %s (%s) assessment, %s deployment, industry: %s.\n",
		params.Level, params.ModuleCode, params.ModuleName, params.DeploymentType, params.IndustryName)
	sb.WriteString("Question counts per block:\n")
	for _, block := range models.AllBlocks() {
		count := params.CountsPerBlock[block]
		if count > 0 {
			fmt.Fprintf(&sb, "- %s: %d\n", block, count)
		}
	}
	if params.ContextText != "" {
		fmt.Fprintf(&sb, "Additional context: %s\n", params.ContextText)
	}
	return sb.String()
}

func buildScenarioTask(params aiapimodels.GenerationParams) string {
	return fmt.Sprintf("Generate a case study for a %s level SAP %s (%s) consultant, %s deployment, industry: %s.",
		params.Level, params.ModuleCode, params.ModuleName, params.DeploymentType, params.IndustryName)
}

// extractJSON tolerates models that wrap the payload in markdown fences or
// prose around the object.
func extractJSON(raw string) []byte {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		raw = raw[start : end+1]
	}
	return []byte(strings.TrimSpace(raw))
}

// normalizeBlock maps loose generator spellings onto the closed enumeration.
// Anything unmatched is rejected here, never inside scoring.
func normalizeBlock(value string) (models.QuestionBlock, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(value, " ", ""), "_", ""))
	for _, block := range models.AllBlocks() {
		if normalized == strings.ToLower(string(block)) {
			return block, true
		}
	}
	return "", false
}
