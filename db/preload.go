package db

import (
	log "github.com/sirupsen/logrus"

	industrystore "sap-talent-backend/lib/dicts/industry/store"
	sapmodulestore "sap-talent-backend/lib/dicts/sap-module/store"
	dbmodels "sap-talent-backend/models/db"
)

func InitPreload() {
	fillSapModules()
	fillIndustries()
}

var sapModules = []dbmodels.SapModule{
	{Code: "FI", Name: "Financial Accounting"},
	{Code: "CO", Name: "Controlling"},
	{Code: "MM", Name: "Materials Management"},
	{Code: "SD", Name: "Sales and Distribution"},
	{Code: "PP", Name: "Production Planning"},
	{Code: "QM", Name: "Quality Management"},
	{Code: "PM", Name: "Plant Maintenance"},
	{Code: "WM", Name: "Warehouse Management"},
	{Code: "HCM", Name: "Human Capital Management"},
	{Code: "ABAP", Name: "ABAP Development"},
	{Code: "BTP", Name: "Business Technology Platform"},
}

var industries = []dbmodels.Industry{
	{Code: "retail", Name: "Retail"},
	{Code: "manufacturing", Name: "Manufacturing"},
	{Code: "agribusiness", Name: "Agribusiness"},
	{Code: "finance", Name: "Financial Services"},
	{Code: "energy", Name: "Energy and Utilities"},
	{Code: "healthcare", Name: "Healthcare"},
	{Code: "logistics", Name: "Logistics"},
	{Code: "public", Name: "Public Sector"},
}

func fillSapModules() {
	store := sapmodulestore.NewInstance(DB)
	for _, rec := range sapModules {
		if err := store.Add(rec, true); err != nil {
			log.WithError(err).WithField("code", rec.Code).Error("failed to preload SAP module")
		}
	}
}

func fillIndustries() {
	store := industrystore.NewInstance(DB)
	for _, rec := range industries {
		if err := store.Add(rec, true); err != nil {
			log.WithError(err).WithField("code", rec.Code).Error("failed to preload industry")
		}
	}
}
