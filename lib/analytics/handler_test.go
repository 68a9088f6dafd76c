package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

type fakeResultStore struct {
	results []dbmodels.AssessmentResult
}

func (f *fakeResultStore) Create(rec dbmodels.AssessmentResult) (string, error) { return rec.ID, nil }
func (f *fakeResultStore) GetByID(id string) (*dbmodels.AssessmentResult, error) {
	return nil, nil
}
func (f *fakeResultStore) GetByCandidateID(candidateID string) (*dbmodels.AssessmentResult, error) {
	return nil, nil
}
func (f *fakeResultStore) List() ([]dbmodels.AssessmentResult, error) { return f.results, nil }
func (f *fakeResultStore) SetReportSentTo(id, email string) error     { return nil }

type fakeCandidateStore struct {
	candidates []dbmodels.Candidate
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error)  { return rec.ID, nil }
func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) { return nil, nil }
func (f *fakeCandidateStore) List() ([]dbmodels.Candidate, error)            { return f.candidates, nil }
func (f *fakeCandidateStore) ListByStatus(status models.CandidateStatus) ([]dbmodels.Candidate, error) {
	return nil, nil
}
func (f *fakeCandidateStore) SetStatus(id string, status models.CandidateStatus) error { return nil }
func (f *fakeCandidateStore) SetTestLink(id, link string) error                        { return nil }
func (f *fakeCandidateStore) Delete(id string) error                                   { return nil }

func scoredCandidate(id, name string, level models.SeniorityLevel, score float64) (dbmodels.Candidate, dbmodels.AssessmentResult) {
	candidate := dbmodels.Candidate{
		BaseModel: dbmodels.BaseModel{ID: id},
		Name:      name,
		Level:     level,
		Status:    models.CandidateStatusCompleted,
	}
	result := dbmodels.AssessmentResult{
		CandidateID: id,
		Score:       score,
		BlockScores: dbmodels.BlockScores{Scores: map[models.QuestionBlock]float64{
			models.BlockProcess:   score / 5,
			models.BlockCleanCore: score / 10,
		}},
		CompletedAt: time.Now(),
	}
	return candidate, result
}

func TestCompare(t *testing.T) {
	juniorCand, juniorRes := scoredCandidate("c1", "Ana", models.LevelJunior, 30)
	seniorCand, seniorRes := scoredCandidate("c2", "Bruno", models.LevelSenior, 40)
	provider := NewInstance(
		&fakeResultStore{results: []dbmodels.AssessmentResult{juniorRes, seniorRes}},
		&fakeCandidateStore{candidates: []dbmodels.Candidate{juniorCand, seniorCand}},
	)

	t.Run("aggregates scores and approval across all levels", func(t *testing.T) {
		view, err := provider.Compare(nil)
		require.Nil(t, err)
		require.Len(t, view.Rows, 2)
		require.InDelta(t, 35.0, view.AverageScore, 0.0001)
		require.InDelta(t, 7.0, view.AverageBlocks[models.BlockProcess], 0.0001)
		// junior passes at 30 >= 25, senior fails at 40 < 42.5
		require.InDelta(t, 0.5, view.ApprovalRate, 0.0001)
		require.True(t, view.Rows[0].Approved)
		require.False(t, view.Rows[1].Approved)
	})

	t.Run("level filter narrows the table", func(t *testing.T) {
		level := models.LevelSenior
		view, err := provider.Compare(&level)
		require.Nil(t, err)
		require.Len(t, view.Rows, 1)
		require.Equal(t, "Bruno", view.Rows[0].CandidateName)
		require.InDelta(t, 40.0, view.AverageScore, 0.0001)
		require.InDelta(t, 0.0, view.ApprovalRate, 0.0001)
	})

	t.Run("no scored candidates keeps averages at zero", func(t *testing.T) {
		empty := NewInstance(&fakeResultStore{}, &fakeCandidateStore{})
		view, err := empty.Compare(nil)
		require.Nil(t, err)
		require.Empty(t, view.Rows)
		require.Zero(t, view.AverageScore)
		require.Zero(t, view.ApprovalRate)
	})
}
