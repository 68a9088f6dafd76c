package industryprovider

import (
	"github.com/pkg/errors"

	"sap-talent-backend/db"
	store "sap-talent-backend/lib/dicts/industry/store"
	initchecker "sap-talent-backend/lib/utils/init-checker"
	"sap-talent-backend/models"
	dictapimodels "sap-talent-backend/models/api/dict"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	List() (list []dictapimodels.IndustryView, err error)
	Add(data dictapimodels.IndustryData) error
	Get(id string) (item dictapimodels.IndustryView, err error)
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

func (i impl) List() ([]dictapimodels.IndustryView, error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.IndustryView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.IndustryConvert(rec))
	}
	return result, nil
}

func (i impl) Add(data dictapimodels.IndustryData) error {
	rec := dbmodels.Industry{
		Code: data.Code,
		Name: data.Name,
	}
	return i.store.Add(rec, false)
}

func (i impl) Get(id string) (dictapimodels.IndustryView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.IndustryView{}, err
	}
	if rec == nil {
		return dictapimodels.IndustryView{}, errors.Wrap(models.ErrNotFound, "industry "+id)
	}
	return dictapimodels.IndustryConvert(*rec), nil
}
