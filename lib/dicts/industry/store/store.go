package industrystore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	List() ([]dbmodels.Industry, error)
	Add(rec dbmodels.Industry, skipDuplicate bool) error
	GetByID(id string) (*dbmodels.Industry, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List() ([]dbmodels.Industry, error) {
	var result []dbmodels.Industry
	err := i.db.
		Model(dbmodels.Industry{}).
		Order("name").
		Find(&result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list industries")
	}
	return result, nil
}

func (i impl) Add(rec dbmodels.Industry, skipDuplicate bool) error {
	unique, err := i.isUnique(rec.ID, rec)
	if err != nil {
		return err
	}
	if !unique {
		if skipDuplicate {
			return nil
		}
		return errors.New("industry already exists")
	}
	tx := i.db.Save(&rec)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to add industry")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.Industry, error) {
	rec := dbmodels.Industry{BaseModel: dbmodels.BaseModel{ID: id}}
	err := i.db.First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) isUnique(selfID string, item dbmodels.Industry) (bool, error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.Industry{})
	tx.Where("LOWER(code) = ?", strings.ToLower(item.Code))
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check industry uniqueness")
	}
	return rowCount == 0, nil
}
