package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"sap-talent-backend/config"
	"sap-talent-backend/fiberlog"
	questiongen "sap-talent-backend/lib/ai/question-gen"
	"sap-talent-backend/lib/analytics"
	"sap-talent-backend/lib/assessment/composer"
	reaperworker "sap-talent-backend/lib/assessment/reaper-worker"
	"sap-talent-backend/lib/assessment/result"
	"sap-talent-backend/lib/assessment/session"
	"sap-talent-backend/lib/auth"
	"sap-talent-backend/lib/candidate"
	industryprovider "sap-talent-backend/lib/dicts/industry"
	sapmoduleprovider "sap-talent-backend/lib/dicts/sap-module"
	xlsexport "sap-talent-backend/lib/export/xls"
	"sap-talent-backend/lib/report"
	"sap-talent-backend/lib/ws"
	connectionhub "sap-talent-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	connectionhub.Init()
	auth.NewHandler()
	if err := auth.Instance.EnsureSeedOperator(); err != nil {
		log.WithError(err).Error("failed to ensure seed operator")
	}
	sapmoduleprovider.NewHandler()
	industryprovider.NewHandler()
	questiongen.NewHandler()
	composer.NewHandler()
	session.NewHandler(ws.Notifier{})
	candidate.NewHandler()
	result.NewHandler()
	analytics.NewHandler()
	xlsexport.NewHandler()
	report.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Forces a result for sessions whose deadline passed without a submit
	reaperworker.StartWorker(ctx)
}
