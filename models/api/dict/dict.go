package dictapimodels

import (
	"github.com/pkg/errors"

	dbmodels "sap-talent-backend/models/db"
)

type SapModuleData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type SapModuleView struct {
	SapModuleData
	ID string `json:"id"`
}

func (d *SapModuleData) Validate() error {
	if d.Code == "" {
		return errors.New("SAP module code is required")
	}
	if d.Name == "" {
		return errors.New("SAP module name is required")
	}
	return nil
}

func SapModuleConvert(rec dbmodels.SapModule) SapModuleView {
	return SapModuleView{
		SapModuleData: SapModuleData{
			Code: rec.Code,
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}

type IndustryData struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type IndustryView struct {
	IndustryData
	ID string `json:"id"`
}

func (d *IndustryData) Validate() error {
	if d.Code == "" {
		return errors.New("industry code is required")
	}
	if d.Name == "" {
		return errors.New("industry name is required")
	}
	return nil
}

func IndustryConvert(rec dbmodels.Industry) IndustryView {
	return IndustryView{
		IndustryData: IndustryData{
			Code: rec.Code,
			Name: rec.Name,
		},
		ID: rec.ID,
	}
}
