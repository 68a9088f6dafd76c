package pdfexport

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	candidateapimodels "sap-talent-backend/models/api/candidate"
)

// GenerateResultReport renders the one-page assessment report that gets
// mailed to the hiring team and archived.
func GenerateResultReport(candidate candidateapimodels.CandidateView, result assessmentapimodels.ResultView) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateResultReport panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}

	pdf.CellFormat(0, 10, "SAP Technical Assessment Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	writeKeyValue(pdf, "Candidate", candidate.Name)
	writeKeyValue(pdf, "Email", candidate.Email)
	writeKeyValue(pdf, "Level", string(candidate.Level))
	writeKeyValue(pdf, "Deployment", string(candidate.DeploymentType))
	writeKeyValue(pdf, "Completed at", result.CompletedAt.Format("02.01.2006 15:04"))
	if result.Expired {
		writeKeyValue(pdf, "Finish", "deadline reached, auto-submitted")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	verdict := "NOT APPROVED"
	if result.Verdict.Approved {
		verdict = "APPROVED"
	}
	pdf.CellFormat(0, 8, fmt.Sprintf("Score: %.1f / 50  (threshold %.1f)  -  %s", result.Score, result.Verdict.Threshold, verdict), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, "Knowledge block", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Score (of 10)", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, block := range models.AllBlocks() {
		pdf.CellFormat(120, 7, string(block), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.1f", result.BlockScores[block]), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	correct := 0
	for _, answer := range result.Answers {
		if answer.IsCorrect {
			correct++
		}
	}
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Questions answered correctly: %d of %d", correct, len(result.Answers)), "", 1, "L", false, 0, "")

	buf := new(bytes.Buffer)
	err = pdf.Output(buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeKeyValue(pdf *fpdf.Fpdf, key, value string) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(35, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}
