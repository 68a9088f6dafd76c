package resultstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	// Create inserts a result. The unique index on candidate_id makes a
	// second insert for the same candidate fail instead of duplicating.
	Create(rec dbmodels.AssessmentResult) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssessmentResult, err error)
	GetByCandidateID(candidateID string) (rec *dbmodels.AssessmentResult, err error)
	List() (list []dbmodels.AssessmentResult, err error)
	SetReportSentTo(id, email string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssessmentResult) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to save assessment result")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssessmentResult, error) {
	rec := dbmodels.AssessmentResult{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByCandidateID(candidateID string) (*dbmodels.AssessmentResult, error) {
	rec := dbmodels.AssessmentResult{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List() ([]dbmodels.AssessmentResult, error) {
	list := []dbmodels.AssessmentResult{}
	err := i.db.
		Model(dbmodels.AssessmentResult{}).
		Order("completed_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assessment results")
	}
	return list, nil
}

func (i impl) SetReportSentTo(id, email string) error {
	err := i.db.
		Model(&dbmodels.AssessmentResult{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"report_sent_to": email}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to update report recipient")
	}
	return nil
}
