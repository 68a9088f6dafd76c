package templatestore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.AssessmentTemplate) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssessmentTemplate, err error)
	List() (list []dbmodels.AssessmentTemplate, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AssessmentTemplate) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to save assessment template")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssessmentTemplate, error) {
	rec := dbmodels.AssessmentTemplate{}
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

func (i impl) List() ([]dbmodels.AssessmentTemplate, error) {
	list := []dbmodels.AssessmentTemplate{}
	err := i.db.
		Model(dbmodels.AssessmentTemplate{}).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list assessment templates")
	}
	return list, nil
}
