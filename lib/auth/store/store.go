package operatorstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	FindByEmail(email string) (rec *dbmodels.OperatorUser, err error)
	Create(rec dbmodels.OperatorUser) (id string, err error)
	Update(id string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) FindByEmail(email string) (*dbmodels.OperatorUser, error) {
	rec := dbmodels.OperatorUser{}
	err := i.db.
		Where("email = ?", email).
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

func (i impl) Create(rec dbmodels.OperatorUser) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to save operator user")
	}
	return rec.ID, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	err := i.db.
		Model(&dbmodels.OperatorUser{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to update operator user")
	}
	return nil
}
