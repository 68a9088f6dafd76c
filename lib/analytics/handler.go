package analytics

import (
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/db"
	resultstore "sap-talent-backend/lib/assessment/result-store"
	"sap-talent-backend/lib/assessment/scoring"
	candidatestore "sap-talent-backend/lib/candidate/store"
	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
)

type Provider interface {
	// Compare builds the dashboard comparison table across scored
	// candidates, optionally narrowed to one seniority level.
	Compare(level *models.SeniorityLevel) (view assessmentapimodels.ComparisonView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(
		resultstore.NewInstance(db.DB),
		candidatestore.NewInstance(db.DB),
	)
}

func NewInstance(resultStore resultstore.Provider, candidateStore candidatestore.Provider) Provider {
	return impl{
		resultStore:    resultStore,
		candidateStore: candidateStore,
	}
}

type impl struct {
	resultStore    resultstore.Provider
	candidateStore candidatestore.Provider
}

func (i impl) Compare(level *models.SeniorityLevel) (assessmentapimodels.ComparisonView, error) {
	results, err := i.resultStore.List()
	if err != nil {
		log.WithError(err).Error("failed to list results")
		return assessmentapimodels.ComparisonView{}, err
	}
	candidates, err := i.candidateStore.List()
	if err != nil {
		log.WithError(err).Error("failed to list candidates")
		return assessmentapimodels.ComparisonView{}, err
	}
	byID := make(map[string]int, len(candidates))
	for idx, rec := range candidates {
		byID[rec.ID] = idx
	}

	view := assessmentapimodels.ComparisonView{
		Rows:          []assessmentapimodels.ComparisonRow{},
		AverageBlocks: map[models.QuestionBlock]float64{},
	}
	approved := 0
	for _, rec := range results {
		idx, ok := byID[rec.CandidateID]
		if !ok {
			continue
		}
		candidate := candidates[idx]
		if level != nil && candidate.Level != *level {
			continue
		}
		verdict := scoring.Evaluate(candidate.Level, rec.Score)
		row := assessmentapimodels.ComparisonRow{
			CandidateID:   candidate.ID,
			CandidateName: candidate.Name,
			Level:         candidate.Level,
			Score:         rec.Score,
			BlockScores:   rec.BlockScores.Scores,
			Approved:      verdict.Approved,
			CompletedAt:   rec.CompletedAt,
		}
		view.Rows = append(view.Rows, row)
		view.AverageScore += rec.Score
		for block, score := range rec.BlockScores.Scores {
			view.AverageBlocks[block] += score
		}
		if verdict.Approved {
			approved++
		}
	}
	count := float64(len(view.Rows))
	if count == 0 {
		return view, nil
	}
	view.AverageScore /= count
	for block := range view.AverageBlocks {
		view.AverageBlocks[block] /= count
	}
	view.ApprovalRate = float64(approved) / count
	return view, nil
}
