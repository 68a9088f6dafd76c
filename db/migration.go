package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "sap-talent-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.OperatorUser{}); err != nil {
		return errors.Wrap(err, "failed to migrate OperatorUser")
	}
	if err := DB.AutoMigrate(&dbmodels.SapModule{}); err != nil {
		return errors.Wrap(err, "failed to migrate SapModule")
	}
	if err := DB.AutoMigrate(&dbmodels.Industry{}); err != nil {
		return errors.Wrap(err, "failed to migrate Industry")
	}
	if err := DB.AutoMigrate(&dbmodels.AssessmentTemplate{}); err != nil {
		return errors.Wrap(err, "failed to migrate AssessmentTemplate")
	}
	if err := DB.AutoMigrate(&dbmodels.Candidate{}); err != nil {
		return errors.Wrap(err, "failed to migrate Candidate")
	}
	if err := DB.AutoMigrate(&dbmodels.AssessmentSession{}); err != nil {
		return errors.Wrap(err, "failed to migrate AssessmentSession")
	}
	if err := DB.AutoMigrate(&dbmodels.AssessmentResult{}); err != nil {
		return errors.Wrap(err, "failed to migrate AssessmentResult")
	}
	log.Info("migrations finished")
	return nil
}
