package candidatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Candidate) (id string, err error)
	GetByID(id string) (rec *dbmodels.Candidate, err error)
	List() (list []dbmodels.Candidate, err error)
	ListByStatus(status models.CandidateStatus) (list []dbmodels.Candidate, err error)
	SetStatus(id string, status models.CandidateStatus) error
	SetTestLink(id, link string) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Candidate) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to save candidate")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
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

func (i impl) List() ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	err := i.db.
		Model(dbmodels.Candidate{}).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidates")
	}
	return list, nil
}

func (i impl) ListByStatus(status models.CandidateStatus) ([]dbmodels.Candidate, error) {
	list := []dbmodels.Candidate{}
	err := i.db.
		Model(dbmodels.Candidate{}).
		Where("status = ?", status).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list candidates by status")
	}
	return list, nil
}

func (i impl) SetStatus(id string, status models.CandidateStatus) error {
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to update candidate status")
	}
	return nil
}

func (i impl) SetTestLink(id, link string) error {
	err := i.db.
		Model(&dbmodels.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"test_link": link}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to update candidate test link")
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Candidate{BaseModel: dbmodels.BaseModel{ID: id}}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to delete candidate")
	}
	return nil
}
