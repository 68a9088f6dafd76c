package candidate

import (
	"sap-talent-backend/db"
	resultstore "sap-talent-backend/lib/assessment/result-store"
	candidatestore "sap-talent-backend/lib/candidate/store"
	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	candidateapimodels "sap-talent-backend/models/api/candidate"
	dbmodels "sap-talent-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	List(status *models.CandidateStatus) (list []candidateapimodels.CandidateView, err error)
	GetByID(id string) (view *assessmentapimodels.CandidateCardView, err error)
	Delete(id string) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		candidateStore: candidatestore.NewInstance(db.DB),
		resultStore:    resultstore.NewInstance(db.DB),
	}
}

type impl struct {
	candidateStore candidatestore.Provider
	resultStore    resultstore.Provider
}

func (i impl) List(status *models.CandidateStatus) ([]candidateapimodels.CandidateView, error) {
	var (
		err  error
		recs []dbmodels.Candidate
	)
	if status != nil {
		recs, err = i.candidateStore.ListByStatus(*status)
	} else {
		recs, err = i.candidateStore.List()
	}
	if err != nil {
		log.WithError(err).Error("failed to list candidates")
		return nil, err
	}
	list := make([]candidateapimodels.CandidateView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, candidateapimodels.CandidateConvert(rec))
	}
	return list, nil
}

func (i impl) GetByID(id string) (*assessmentapimodels.CandidateCardView, error) {
	logger := log.WithField("candidate_id", id)
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("failed to load candidate")
		return nil, err
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "candidate "+id)
	}
	view := assessmentapimodels.CandidateCardView{
		CandidateView: candidateapimodels.CandidateConvert(*rec),
	}
	result, err := i.resultStore.GetByCandidateID(id)
	if err != nil {
		logger.WithError(err).Error("failed to load candidate result")
		return nil, err
	}
	if result != nil {
		resultView := assessmentapimodels.ResultConvert(*result, rec.Level)
		view.Result = &resultView
	}
	return &view, nil
}

func (i impl) Delete(id string) error {
	logger := log.WithField("candidate_id", id)
	rec, err := i.candidateStore.GetByID(id)
	if err != nil {
		logger.WithError(err).Error("failed to load candidate")
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "candidate "+id)
	}
	err = i.candidateStore.Delete(id)
	if err != nil {
		logger.WithError(err).Error("failed to delete candidate")
		return err
	}
	return nil
}
