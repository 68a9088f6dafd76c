package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
)

type Provider interface {
	ExportComparison(view assessmentapimodels.ComparisonView) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func comparisonHeaders() []string {
	headers := []string{"Candidate", "Level", "Score (of 50)"}
	for _, block := range models.AllBlocks() {
		headers = append(headers, fmt.Sprintf("%s (of 10)", block))
	}
	return append(headers, "Approved", "Completed At")
}

func (i impl) ExportComparison(view assessmentapimodels.ComparisonView) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	headers := comparisonHeaders()
	row := 0
	row, err := writeHeader(f, sheet, row, headers)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(view.Rows) != 0 {
		row, err = writeComparisonData(f, sheet, view.Rows, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Candidates")
	return f.WriteToBuffer()
}

func writeComparisonData(f *excelize.File, sheet string, rows []assessmentapimodels.ComparisonRow, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(comparisonHeaders()), len(rows)+1); err != nil {
		return row, err
	}
	for _, item := range rows {
		row++
		col := 1
		if err := writeColumn(f, sheet, col, row, item.CandidateName); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, string(item.Level)); err != nil {
			return row, err
		}

		col++
		if err := writeColumn(f, sheet, col, row, item.Score); err != nil {
			return row, err
		}

		for _, block := range models.AllBlocks() {
			col++
			if err := writeColumn(f, sheet, col, row, item.BlockScores[block]); err != nil {
				return row, err
			}
		}

		col++
		verdict := "No"
		if item.Approved {
			verdict = "Yes"
		}
		if err := writeColumn(f, sheet, col, row, verdict); err != nil {
			return row, err
		}

		col++
		if !item.CompletedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.CompletedAt.Format("02.01.2006 15:04")); err != nil {
				return row, err
			}
		}
	}
	return row, nil
}
