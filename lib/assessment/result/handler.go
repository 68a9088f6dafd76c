package result

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/db"
	resultstore "sap-talent-backend/lib/assessment/result-store"
	candidatestore "sap-talent-backend/lib/candidate/store"
	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
)

type Provider interface {
	List() (list []assessmentapimodels.ResultView, err error)
	Get(id string) (view *assessmentapimodels.ResultView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		resultStore:    resultstore.NewInstance(db.DB),
		candidateStore: candidatestore.NewInstance(db.DB),
	}
}

type impl struct {
	resultStore    resultstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) List() ([]assessmentapimodels.ResultView, error) {
	recs, err := i.resultStore.List()
	if err != nil {
		log.WithError(err).Error("failed to list results")
		return nil, err
	}
	list := make([]assessmentapimodels.ResultView, 0, len(recs))
	for _, rec := range recs {
		level, err := i.candidateLevel(rec.CandidateID)
		if err != nil {
			return nil, err
		}
		list = append(list, assessmentapimodels.ResultConvert(rec, level))
	}
	return list, nil
}

func (i impl) Get(id string) (*assessmentapimodels.ResultView, error) {
	rec, err := i.resultStore.GetByID(id)
	if err != nil {
		log.WithError(err).Error("failed to load result")
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "result "+id)
	}
	level, err := i.candidateLevel(rec.CandidateID)
	if err != nil {
		return nil, err
	}
	view := assessmentapimodels.ResultConvert(*rec, level)
	return &view, nil
}

// candidateLevel resolves the level the verdict is evaluated against. A
// missing candidate record falls back to the default threshold level.
func (i impl) candidateLevel(candidateID string) (models.SeniorityLevel, error) {
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		log.WithError(err).Error("failed to load candidate for result")
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	return rec.Level, nil
}
