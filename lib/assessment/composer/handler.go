package composer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/config"
	"sap-talent-backend/db"
	questiongen "sap-talent-backend/lib/ai/question-gen"
	templatestore "sap-talent-backend/lib/assessment/template-store"
	candidatestore "sap-talent-backend/lib/candidate/store"
	industrystore "sap-talent-backend/lib/dicts/industry/store"
	sapmodulestore "sap-talent-backend/lib/dicts/sap-module/store"
	"sap-talent-backend/models"
	aiapimodels "sap-talent-backend/models/api/ai"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	candidateapimodels "sap-talent-backend/models/api/candidate"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	// ComposeAssessment generates a question set, freezes it into a new
	// immutable template and creates the candidate referencing it.
	// The two writes are a unit: the candidate is only written after the
	// template write succeeded; nothing is persisted on generation failure.
	ComposeAssessment(ctx context.Context, req assessmentapimodels.ComposeRequest) (*ComposedView, error)
	ListTemplates() (list []assessmentapimodels.TemplateView, err error)
	GetTemplate(id string) (view *assessmentapimodels.TemplateView, err error)
}

type ComposedView struct {
	Template  assessmentapimodels.TemplateView `json:"template"`
	Candidate candidateapimodels.CandidateView `json:"candidate"`
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		questiongen.Instance,
		templatestore.NewInstance(db.DB),
		candidatestore.NewInstance(db.DB),
		sapmodulestore.NewInstance(db.DB),
		industrystore.NewInstance(db.DB),
		config.Conf.Assessment.PublicBaseURL,
	)
}

func NewInstance(
	generator questiongen.Provider,
	templateStore templatestore.Provider,
	candidateStore candidatestore.Provider,
	moduleStore sapmodulestore.Provider,
	industryStore industrystore.Provider,
	publicBaseURL string,
) Provider {
	return impl{
		generator:      generator,
		templateStore:  templateStore,
		candidateStore: candidateStore,
		moduleStore:    moduleStore,
		industryStore:  industryStore,
		publicBaseURL:  publicBaseURL,
	}
}

type impl struct {
	generator      questiongen.Provider
	templateStore  templatestore.Provider
	candidateStore candidatestore.Provider
	moduleStore    sapmodulestore.Provider
	industryStore  industrystore.Provider
	publicBaseURL  string
}

func (i impl) ComposeAssessment(ctx context.Context, req assessmentapimodels.ComposeRequest) (*ComposedView, error) {
	logger := log.
		WithField("module_id", req.Candidate.ModuleID).
		WithField("level", string(req.Candidate.Level))

	module, err := i.moduleStore.GetByID(req.Candidate.ModuleID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load SAP module")
	}
	if module == nil {
		return nil, errors.Wrap(models.ErrNotFound, "SAP module "+req.Candidate.ModuleID)
	}
	industry, err := i.industryStore.GetByID(req.Candidate.IndustryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load industry")
	}
	if industry == nil {
		return nil, errors.Wrap(models.ErrNotFound, "industry "+req.Candidate.IndustryID)
	}

	counts := req.BlockCounts
	if len(counts) == 0 {
		counts = assessmentapimodels.DefaultBlockCounts()
	}
	params := aiapimodels.GenerationParams{
		ModuleCode:     module.Code,
		ModuleName:     module.Name,
		IndustryName:   industry.Name,
		Level:          req.Candidate.Level,
		DeploymentType: req.Candidate.DeploymentType,
		CountsPerBlock: counts,
	}

	questions, err := i.generator.GenerateQuestions(ctx, params)
	if err != nil {
		logger.WithError(err).Error("question generation failed, nothing persisted")
		return nil, err
	}
	var scenario *dbmodels.TemplateScenario
	if req.IncludeScenario {
		scenario, err = i.generator.GenerateScenario(ctx, params)
		if err != nil {
			logger.WithError(err).Error("scenario generation failed, nothing persisted")
			return nil, err
		}
	}

	template, err := ComposeTemplate(req.Name, req.Candidate, questions, scenario)
	if err != nil {
		return nil, err
	}
	if _, err := i.templateStore.Save(template); err != nil {
		logger.WithError(err).Error("template save failed, candidate not created")
		return nil, err
	}

	candidateID := uuid.NewString()
	candidate := dbmodels.Candidate{
		BaseModel:      dbmodels.BaseModel{ID: candidateID},
		Name:           req.Candidate.Name,
		Email:          req.Candidate.Email,
		ModuleID:       req.Candidate.ModuleID,
		IndustryID:     req.Candidate.IndustryID,
		Level:          req.Candidate.Level,
		DeploymentType: req.Candidate.DeploymentType,
		TemplateID:     template.ID,
		Status:         models.CandidateStatusPending,
		TestLink:       i.buildTestLink(candidateID),
	}
	if _, err := i.candidateStore.Create(candidate); err != nil {
		// The template stays: it is immutable, unreferenced and harmless,
		// and the operator can retry candidate creation against it.
		logger.WithError(err).Error("candidate save failed after template save")
		return nil, err
	}

	logger.
		WithField("template_id", template.ID).
		WithField("candidate_id", candidate.ID).
		Info("assessment composed")
	return &ComposedView{
		Template:  assessmentapimodels.TemplateConvert(template),
		Candidate: candidateapimodels.CandidateConvert(candidate),
	}, nil
}

func (i impl) ListTemplates() ([]assessmentapimodels.TemplateView, error) {
	recs, err := i.templateStore.List()
	if err != nil {
		return nil, err
	}
	list := make([]assessmentapimodels.TemplateView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, assessmentapimodels.TemplateConvert(rec))
	}
	return list, nil
}

func (i impl) GetTemplate(id string) (*assessmentapimodels.TemplateView, error) {
	rec, err := i.templateStore.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "assessment template "+id)
	}
	view := assessmentapimodels.TemplateConvert(*rec)
	return &view, nil
}

// ComposeTemplate freezes already-generated content into a new template with
// a fresh id. The question and rubric slices are copied so later mutation of
// the inputs never reaches a composed template.
func ComposeTemplate(name string, params candidateapimodels.CandidateData, questions []dbmodels.TemplateQuestion, scenario *dbmodels.TemplateScenario) (dbmodels.AssessmentTemplate, error) {
	if len(questions) == 0 {
		return dbmodels.AssessmentTemplate{}, errors.Wrap(models.ErrGenerationFailure, "no questions to compose")
	}
	template := dbmodels.AssessmentTemplate{
		BaseModel: dbmodels.BaseModel{
			ID:        uuid.NewString(),
			CreatedAt: time.Now(),
		},
		Name:           name,
		ModuleID:       params.ModuleID,
		IndustryID:     params.IndustryID,
		Level:          params.Level,
		DeploymentType: params.DeploymentType,
	}
	template.Questions.Questions = make([]dbmodels.TemplateQuestion, len(questions))
	copy(template.Questions.Questions, questions)
	for n := range template.Questions.Questions {
		options := template.Questions.Questions[n].Options
		template.Questions.Questions[n].Options = append([]string{}, options...)
	}
	if scenario != nil {
		frozen := *scenario
		frozen.Rubric = append([]dbmodels.ScenarioCriteria{}, scenario.Rubric...)
		template.Scenario = &frozen
	}
	return template, nil
}

func (i impl) buildTestLink(candidateID string) string {
	return fmt.Sprintf("%s/assessment/%s", i.publicBaseURL, candidateID)
}
