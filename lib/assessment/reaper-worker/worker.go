package reaperworker

import (
	"context"
	"time"

	"sap-talent-backend/config"
	"sap-talent-backend/db"
	"sap-talent-backend/lib/assessment/session"
	sessionstore "sap-talent-backend/lib/assessment/session-store"
	baseworker "sap-talent-backend/lib/utils/base-worker"
	"sap-talent-backend/lib/utils/helpers"
)

// StartWorker force-finishes sessions whose deadline passed while nobody
// submitted, so every started assessment ends up with a scored result.
func StartWorker(ctx context.Context) {
	i := &impl{
		BaseImpl:     *baseworker.NewInstance("SessionReaperWorker", 15*time.Second, time.Minute),
		sessionStore: sessionstore.NewInstance(db.DB),
		grace:        time.Duration(config.Conf.Assessment.GraceSec) * time.Second,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	sessionStore sessionstore.Provider
	grace        time.Duration
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	list, err := i.sessionStore.GetOverdue(time.Now(), i.grace)
	if err != nil {
		logger.WithError(err).Error("failed to load overdue sessions")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		err = session.Instance.FinishOverdue(rec)
		if err != nil {
			logger.
				WithError(err).
				WithField("candidate_id", rec.CandidateID).
				Error("failed to finish overdue session")
			continue
		}
	}
}
