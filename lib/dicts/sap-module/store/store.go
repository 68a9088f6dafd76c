package sapmodulestore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	List() ([]dbmodels.SapModule, error)
	Add(rec dbmodels.SapModule, skipDuplicate bool) error
	GetByID(id string) (*dbmodels.SapModule, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List() ([]dbmodels.SapModule, error) {
	var result []dbmodels.SapModule
	err := i.db.
		Model(dbmodels.SapModule{}).
		Order("code").
		Find(&result).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list SAP modules")
	}
	return result, nil
}

func (i impl) Add(rec dbmodels.SapModule, skipDuplicate bool) error {
	unique, err := i.isUnique(rec.ID, rec)
	if err != nil {
		return err
	}
	if !unique {
		if skipDuplicate {
			return nil
		}
		return errors.New("SAP module already exists")
	}
	tx := i.db.Save(&rec)
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to add SAP module")
	}
	return nil
}

func (i impl) GetByID(id string) (*dbmodels.SapModule, error) {
	rec := dbmodels.SapModule{BaseModel: dbmodels.BaseModel{ID: id}}
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

func (i impl) isUnique(selfID string, item dbmodels.SapModule) (bool, error) {
	var rowCount int64
	tx := i.db.Model(dbmodels.SapModule{})
	tx.Where("LOWER(code) = ?", strings.ToLower(item.Code))
	if selfID != "" {
		tx.Where("id <> ?", selfID)
	}
	err := tx.Count(&rowCount).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check SAP module uniqueness")
	}
	return rowCount == 0, nil
}
