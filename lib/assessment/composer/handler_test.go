package composer

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"sap-talent-backend/models"
	aiapimodels "sap-talent-backend/models/api/ai"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	candidateapimodels "sap-talent-backend/models/api/candidate"
	dbmodels "sap-talent-backend/models/db"
)

type fakeGenerator struct {
	questions []dbmodels.TemplateQuestion
	scenario  *dbmodels.TemplateScenario
	err       error
}

func (f fakeGenerator) GenerateQuestions(ctx context.Context, params aiapimodels.GenerationParams) ([]dbmodels.TemplateQuestion, error) {
	return f.questions, f.err
}

func (f fakeGenerator) GenerateScenario(ctx context.Context, params aiapimodels.GenerationParams) (*dbmodels.TemplateScenario, error) {
	return f.scenario, f.err
}

type fakeTemplateStore struct {
	saved   []dbmodels.AssessmentTemplate
	saveErr error
}

func (f *fakeTemplateStore) Save(rec dbmodels.AssessmentTemplate) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, rec)
	return rec.ID, nil
}

func (f *fakeTemplateStore) GetByID(id string) (*dbmodels.AssessmentTemplate, error) {
	for _, rec := range f.saved {
		if rec.ID == id {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeTemplateStore) List() ([]dbmodels.AssessmentTemplate, error) { return f.saved, nil }

type fakeCandidateStore struct {
	created []dbmodels.Candidate
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error) {
	f.created = append(f.created, rec)
	return rec.ID, nil
}

func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) { return nil, nil }
func (f *fakeCandidateStore) List() ([]dbmodels.Candidate, error)            { return nil, nil }
func (f *fakeCandidateStore) ListByStatus(status models.CandidateStatus) ([]dbmodels.Candidate, error) {
	return nil, nil
}
func (f *fakeCandidateStore) SetStatus(id string, status models.CandidateStatus) error { return nil }
func (f *fakeCandidateStore) SetTestLink(id, link string) error                        { return nil }
func (f *fakeCandidateStore) Delete(id string) error                                   { return nil }

type fakeModuleStore struct{}

func (fakeModuleStore) List() ([]dbmodels.SapModule, error) { return nil, nil }
func (fakeModuleStore) Add(dbmodels.SapModule, bool) error  { return nil }
func (fakeModuleStore) GetByID(id string) (*dbmodels.SapModule, error) {
	if id == "missing" {
		return nil, nil
	}
	return &dbmodels.SapModule{BaseModel: dbmodels.BaseModel{ID: id}, Code: "FI", Name: "Financial Accounting"}, nil
}

type fakeIndustryStore struct{}

func (fakeIndustryStore) List() ([]dbmodels.Industry, error) { return nil, nil }
func (fakeIndustryStore) Add(dbmodels.Industry, bool) error  { return nil }
func (fakeIndustryStore) GetByID(id string) (*dbmodels.Industry, error) {
	return &dbmodels.Industry{BaseModel: dbmodels.BaseModel{ID: id}, Code: "retail", Name: "Retail"}, nil
}

func sampleQuestions() []dbmodels.TemplateQuestion {
	return []dbmodels.TemplateQuestion{
		{QuestionID: "q1", Text: "t", Options: []string{"a", "b"}, CorrectAnswerIndex: 0, Block: models.BlockProcess},
		{QuestionID: "q2", Text: "t", Options: []string{"a", "b"}, CorrectAnswerIndex: 1, Block: models.BlockCleanCore},
	}
}

func composeRequest() assessmentapimodels.ComposeRequest {
	return assessmentapimodels.ComposeRequest{
		Name: "FI Senior Assessment",
		Candidate: candidateapimodels.CandidateData{
			Name:           "Ana Souza",
			Email:          "ana@example.com",
			ModuleID:       "8d5c27b9-5b54-4c2f-b8a8-8e8a9ea52c01",
			IndustryID:     "4f0b9a56-2ad5-4f31-bf23-4a1a64f0be02",
			Level:          models.LevelSenior,
			DeploymentType: models.DeploymentPublicCloud,
		},
	}
}

func TestComposeAssessment(t *testing.T) {
	t.Run("template and candidate written as a unit", func(t *testing.T) {
		templates := &fakeTemplateStore{}
		candidates := &fakeCandidateStore{}
		provider := NewInstance(fakeGenerator{questions: sampleQuestions()}, templates, candidates, fakeModuleStore{}, fakeIndustryStore{}, "https://talent.example.com")

		composed, err := provider.ComposeAssessment(context.Background(), composeRequest())
		require.Nil(t, err)
		require.Len(t, templates.saved, 1)
		require.Len(t, candidates.created, 1)
		require.Equal(t, templates.saved[0].ID, candidates.created[0].TemplateID)
		require.Equal(t, models.CandidateStatusPending, candidates.created[0].Status)
		require.Equal(t, "https://talent.example.com/assessment/"+candidates.created[0].ID, candidates.created[0].TestLink)
		require.Equal(t, composed.Template.ID, composed.Candidate.TemplateID)
	})

	t.Run("generation failure persists nothing", func(t *testing.T) {
		templates := &fakeTemplateStore{}
		candidates := &fakeCandidateStore{}
		provider := NewInstance(fakeGenerator{err: errors.Wrap(models.ErrGenerationFailure, "llm down")}, templates, candidates, fakeModuleStore{}, fakeIndustryStore{}, "https://talent.example.com")

		_, err := provider.ComposeAssessment(context.Background(), composeRequest())
		require.ErrorIs(t, err, models.ErrGenerationFailure)
		require.Empty(t, templates.saved)
		require.Empty(t, candidates.created)
	})

	t.Run("template save failure blocks candidate save", func(t *testing.T) {
		templates := &fakeTemplateStore{saveErr: errors.New("db down")}
		candidates := &fakeCandidateStore{}
		provider := NewInstance(fakeGenerator{questions: sampleQuestions()}, templates, candidates, fakeModuleStore{}, fakeIndustryStore{}, "https://talent.example.com")

		_, err := provider.ComposeAssessment(context.Background(), composeRequest())
		require.NotNil(t, err)
		require.Empty(t, candidates.created)
	})

	t.Run("unknown module is not found", func(t *testing.T) {
		req := composeRequest()
		req.Candidate.ModuleID = "missing"
		provider := NewInstance(fakeGenerator{questions: sampleQuestions()}, &fakeTemplateStore{}, &fakeCandidateStore{}, fakeModuleStore{}, fakeIndustryStore{}, "")
		_, err := provider.ComposeAssessment(context.Background(), req)
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestComposeTemplate(t *testing.T) {
	params := composeRequest().Candidate

	t.Run("identical inputs yield distinct template ids", func(t *testing.T) {
		first, err := ComposeTemplate("tpl", params, sampleQuestions(), nil)
		require.Nil(t, err)
		second, err := ComposeTemplate("tpl", params, sampleQuestions(), nil)
		require.Nil(t, err)
		require.NotEqual(t, first.ID, second.ID)
		require.False(t, first.CreatedAt.IsZero())
	})

	t.Run("mutating inputs never mutates a composed template", func(t *testing.T) {
		questions := sampleQuestions()
		scenario := &dbmodels.TemplateScenario{
			ScenarioID: "sc1",
			Title:      "Close",
			Rubric:     []dbmodels.ScenarioCriteria{{Criterion: "accuracy", Points: "0-5"}},
		}
		template, err := ComposeTemplate("tpl", params, questions, scenario)
		require.Nil(t, err)

		questions[0].Text = "mutated"
		questions[0].Options[0] = "mutated"
		scenario.Rubric[0].Criterion = "mutated"

		require.Equal(t, "t", template.Questions.Questions[0].Text)
		require.Equal(t, "a", template.Questions.Questions[0].Options[0])
		require.Equal(t, "accuracy", template.Scenario.Rubric[0].Criterion)
	})

	t.Run("zero questions is a composition failure", func(t *testing.T) {
		_, err := ComposeTemplate("tpl", params, nil, nil)
		require.ErrorIs(t, err, models.ErrGenerationFailure)
	})
}
