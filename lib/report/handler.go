package report

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/config"
	"sap-talent-backend/db"
	resultstore "sap-talent-backend/lib/assessment/result-store"
	candidatestore "sap-talent-backend/lib/candidate/store"
	pdfexport "sap-talent-backend/lib/export/pdf"
	filestorage "sap-talent-backend/lib/file-storage"
	"sap-talent-backend/lib/smtp"
	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	candidateapimodels "sap-talent-backend/models/api/candidate"
)

type Provider interface {
	// SendResultReport renders the candidate's result as PDF, archives it
	// and mails it to the configured hiring team address.
	SendResultReport(ctx context.Context, candidateID string) error
	GetReportPDF(ctx context.Context, candidateID string) ([]byte, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		candidateStore: candidatestore.NewInstance(db.DB),
		resultStore:    resultstore.NewInstance(db.DB),
	}
}

type impl struct {
	candidateStore candidatestore.Provider
	resultStore    resultstore.Provider
}

func (i impl) SendResultReport(ctx context.Context, candidateID string) error {
	logger := log.WithField("candidate_id", candidateID)
	candidate, result, err := i.load(candidateID)
	if err != nil {
		return err
	}

	pdfFile, err := pdfexport.GenerateResultReport(*candidate, *result)
	if err != nil {
		logger.WithError(err).Error("failed to render result report")
		return err
	}

	if filestorage.Instance != nil {
		_, err = filestorage.Instance.UploadReport(ctx, candidateID, pdfFile)
		if err != nil {
			// the mail still carries the report, archive can be retried
			logger.WithError(err).Error("failed to archive result report")
		}
	}

	recipient := config.Conf.Assessment.ReportEmail
	if recipient == "" {
		logger.Warn("report recipient is not configured, email skipped")
		return nil
	}
	subject := fmt.Sprintf("Assessment result: %s", candidate.Name)
	message := fmt.Sprintf("Candidate %s (%s, %s) finished the assessment with score %.1f of 50.",
		candidate.Name, candidate.Level, candidate.DeploymentType, result.Score)
	fileName := fmt.Sprintf("assessment-report-%s.pdf", candidateID)
	err = smtp.Instance.SendEMailWithAttachment(config.Conf.Smtp.User, recipient, message, subject, fileName, pdfFile)
	if err != nil {
		logger.WithError(err).Error("failed to email result report")
		return err
	}
	err = i.resultStore.SetReportSentTo(result.ID, recipient)
	if err != nil {
		logger.WithError(err).Error("failed to record report recipient")
	}
	return nil
}

func (i impl) GetReportPDF(ctx context.Context, candidateID string) ([]byte, error) {
	candidate, result, err := i.load(candidateID)
	if err != nil {
		return nil, err
	}
	return pdfexport.GenerateResultReport(*candidate, *result)
}

func (i impl) load(candidateID string) (*candidateapimodels.CandidateView, *assessmentapimodels.ResultView, error) {
	rec, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.Wrap(models.ErrNotFound, "candidate "+candidateID)
	}
	resultRec, err := i.resultStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, nil, err
	}
	if resultRec == nil {
		return nil, nil, errors.Wrap(models.ErrNotFound, "result for candidate "+candidateID)
	}
	candidateView := candidateapimodels.CandidateConvert(*rec)
	resultView := assessmentapimodels.ResultConvert(*resultRec, rec.Level)
	return &candidateView, &resultView, nil
}
