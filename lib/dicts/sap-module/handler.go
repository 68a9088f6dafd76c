package sapmoduleprovider

import (
	"github.com/pkg/errors"

	"sap-talent-backend/db"
	store "sap-talent-backend/lib/dicts/sap-module/store"
	initchecker "sap-talent-backend/lib/utils/init-checker"
	"sap-talent-backend/models"
	dictapimodels "sap-talent-backend/models/api/dict"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	List() (list []dictapimodels.SapModuleView, err error)
	Add(data dictapimodels.SapModuleData) error
	Get(id string) (item dictapimodels.SapModuleView, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store: store.NewInstance(db.DB),
	}
	initchecker.CheckInit(
		"store", instance.store,
	)
	Instance = instance
}

type impl struct {
	store store.Provider
}

func (i impl) List() ([]dictapimodels.SapModuleView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.SapModuleView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.SapModuleConvert(rec))
	}
	return result, nil
}

func (i impl) Add(data dictapimodels.SapModuleData) error {
	rec := dbmodels.SapModule{
		Code: data.Code,
		Name: data.Name,
	}
	return i.store.Add(rec, false)
}

func (i impl) Get(id string) (dictapimodels.SapModuleView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.SapModuleView{}, err
	}
	if rec == nil {
		return dictapimodels.SapModuleView{}, errors.Wrap(models.ErrNotFound, "SAP module "+id)
	}
	return dictapimodels.SapModuleConvert(*rec), nil
}
