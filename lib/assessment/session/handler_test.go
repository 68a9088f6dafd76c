package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	dbmodels "sap-talent-backend/models/db"
)

type fakeTemplateStore struct {
	templates map[string]dbmodels.AssessmentTemplate
}

func (f *fakeTemplateStore) Save(rec dbmodels.AssessmentTemplate) (string, error) {
	f.templates[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeTemplateStore) GetByID(id string) (*dbmodels.AssessmentTemplate, error) {
	rec, ok := f.templates[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeTemplateStore) List() ([]dbmodels.AssessmentTemplate, error) {
	return nil, nil
}

type fakeCandidateStore struct {
	mu         sync.Mutex
	candidates map[string]dbmodels.Candidate
	statusSets []models.CandidateStatus
}

func (f *fakeCandidateStore) Create(rec dbmodels.Candidate) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.candidates[rec.ID] = rec
	return rec.ID, nil
}

func (f *fakeCandidateStore) GetByID(id string) (*dbmodels.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.candidates[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (f *fakeCandidateStore) List() ([]dbmodels.Candidate, error) { return nil, nil }

func (f *fakeCandidateStore) ListByStatus(status models.CandidateStatus) ([]dbmodels.Candidate, error) {
	return nil, nil
}

func (f *fakeCandidateStore) SetStatus(id string, status models.CandidateStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := f.candidates[id]
	rec.Status = status
	f.candidates[id] = rec
	f.statusSets = append(f.statusSets, status)
	return nil
}

func (f *fakeCandidateStore) SetTestLink(id, link string) error { return nil }
func (f *fakeCandidateStore) Delete(id string) error            { return nil }

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]dbmodels.AssessmentSession // keyed by candidate id
}

func (f *fakeSessionStore) Save(rec dbmodels.AssessmentSession) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.ID == "" {
		rec.ID = "sess-" + rec.CandidateID
	}
	f.sessions[rec.CandidateID] = rec
	return rec.ID, nil
}

func (f *fakeSessionStore) GetByID(id string) (*dbmodels.AssessmentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.sessions {
		if rec.ID == id {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) GetByCandidateID(candidateID string) (*dbmodels.AssessmentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.sessions[candidateID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (f *fakeSessionStore) SetAnswer(id, questionID string, selected int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for candidateID, rec := range f.sessions {
		if rec.ID == id {
			if rec.Answers.Selected == nil {
				rec.Answers.Selected = map[string]int{}
			}
			rec.Answers.Selected[questionID] = selected
			f.sessions[candidateID] = rec
			return nil
		}
	}
	return errors.New("session not found")
}

func (f *fakeSessionStore) AppendVisited(id string, questionIndex int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for candidateID, rec := range f.sessions {
		if rec.ID == id {
			rec.VisitedOrder = append(rec.VisitedOrder, int64(questionIndex))
			f.sessions[candidateID] = rec
			return nil
		}
	}
	return errors.New("session not found")
}

func (f *fakeSessionStore) SetTerminal(id string, state models.SessionState, finishedAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for candidateID, rec := range f.sessions {
		if rec.ID == id {
			rec.State = state
			rec.FinishedAt = &finishedAt
			f.sessions[candidateID] = rec
			return nil
		}
	}
	return errors.New("session not found")
}

func (f *fakeSessionStore) GetOverdue(now time.Time, grace time.Duration) ([]dbmodels.AssessmentSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []dbmodels.AssessmentSession{}
	for _, rec := range f.sessions {
		if rec.State == models.SessionRunning && rec.Deadline != nil && rec.Deadline.Before(now.Add(-grace)) {
			list = append(list, rec)
		}
	}
	return list, nil
}

type fakeResultStore struct {
	mu      sync.Mutex
	results map[string]dbmodels.AssessmentResult // keyed by candidate id
	creates int
}

func (f *fakeResultStore) Create(rec dbmodels.AssessmentResult) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.results[rec.CandidateID]; ok {
		return "", errors.New("duplicate key value violates unique constraint")
	}
	rec.ID = "res-" + rec.CandidateID
	f.results[rec.CandidateID] = rec
	f.creates++
	return rec.ID, nil
}

func (f *fakeResultStore) GetByID(id string) (*dbmodels.AssessmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.results {
		if rec.ID == id {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeResultStore) GetByCandidateID(candidateID string) (*dbmodels.AssessmentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.results[candidateID]
	if !ok {
		return nil, nil
	}
	out := rec
	return &out, nil
}

func (f *fakeResultStore) List() ([]dbmodels.AssessmentResult, error) { return nil, nil }

func (f *fakeResultStore) SetReportSentTo(id, email string) error { return nil }

type env struct {
	provider   Provider
	templates  *fakeTemplateStore
	candidates *fakeCandidateStore
	sessions   *fakeSessionStore
	results    *fakeResultStore
}

func newEnv(t *testing.T, duration time.Duration) env {
	t.Helper()
	e := env{
		templates:  &fakeTemplateStore{templates: map[string]dbmodels.AssessmentTemplate{}},
		candidates: &fakeCandidateStore{candidates: map[string]dbmodels.Candidate{}},
		sessions:   &fakeSessionStore{sessions: map[string]dbmodels.AssessmentSession{}},
		results:    &fakeResultStore{results: map[string]dbmodels.AssessmentResult{}},
	}
	e.provider = NewInstance(e.sessions, e.templates, e.candidates, e.results, nil, duration)
	t.Cleanup(e.provider.StopTimers)

	tpl := dbmodels.AssessmentTemplate{BaseModel: dbmodels.BaseModel{ID: "tpl-1"}}
	for _, block := range models.AllBlocks() {
		for n := 0; n < 5; n++ {
			tpl.Questions.Questions = append(tpl.Questions.Questions, dbmodels.TemplateQuestion{
				QuestionID:         fmt.Sprintf("%s-%d", block, n),
				Text:               "q",
				Options:            []string{"a", "b", "c", "d"},
				CorrectAnswerIndex: 1,
				Block:              block,
			})
		}
	}
	_, err := e.templates.Save(tpl)
	require.Nil(t, err)

	_, err = e.candidates.Create(dbmodels.Candidate{
		BaseModel:  dbmodels.BaseModel{ID: "cand-1"},
		Name:       "Ana Souza",
		Level:      models.LevelSenior,
		TemplateID: "tpl-1",
		Status:     models.CandidateStatusPending,
	})
	require.Nil(t, err)
	return e
}

func TestSessionLifecycle(t *testing.T) {
	t.Run("start answer finish", func(t *testing.T) {
		e := newEnv(t, time.Hour)

		state, err := e.provider.Start("cand-1")
		require.Nil(t, err)
		require.Equal(t, models.SessionRunning, state.State)
		require.Greater(t, state.RemainingSec, 3500)

		candidate, _ := e.candidates.GetByID("cand-1")
		require.Equal(t, models.CandidateStatusInProgress, candidate.Status)

		tpl, _ := e.templates.GetByID("tpl-1")
		for _, q := range tpl.Questions.Questions {
			err = e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{
				QuestionID:     q.QuestionID,
				SelectedOption: q.CorrectAnswerIndex,
			})
			require.Nil(t, err)
		}

		result, err := e.provider.Finish("cand-1")
		require.Nil(t, err)
		require.Equal(t, 50.0, result.Score)
		require.True(t, result.Approved)
		require.Equal(t, 42.5, result.Threshold)

		candidate, _ = e.candidates.GetByID("cand-1")
		require.Equal(t, models.CandidateStatusCompleted, candidate.Status)
		rec, _ := e.sessions.GetByCandidateID("cand-1")
		require.Equal(t, models.SessionCompleted, rec.State)
		persisted, _ := e.results.GetByCandidateID("cand-1")
		require.False(t, persisted.Expired)
	})

	t.Run("answer overwrite keeps last write", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)

		questionID := string(models.BlockProcess) + "-0"
		require.Nil(t, e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{QuestionID: questionID, SelectedOption: 0}))
		require.Nil(t, e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{QuestionID: questionID, SelectedOption: 3}))

		rec, _ := e.sessions.GetByCandidateID("cand-1")
		require.Equal(t, 3, rec.Answers.Selected[questionID])
		require.Len(t, rec.Answers.Selected, 1)
	})

	t.Run("answer validation", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)

		err = e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{QuestionID: "unknown", SelectedOption: 0})
		require.NotNil(t, err)

		err = e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{QuestionID: string(models.BlockProcess) + "-0", SelectedOption: 9})
		require.NotNil(t, err)
	})

	t.Run("finish is idempotent", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)

		first, err := e.provider.Finish("cand-1")
		require.Nil(t, err)
		second, err := e.provider.Finish("cand-1")
		require.Nil(t, err)

		require.Equal(t, first.Score, second.Score)
		require.Equal(t, 1, e.results.creates)
		// status flipped to Completed exactly once
		completedFlips := 0
		for _, status := range e.candidates.statusSets {
			if status == models.CandidateStatusCompleted {
				completedFlips++
			}
		}
		require.Equal(t, 1, completedFlips)
	})

	t.Run("concurrent finish produces one result", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)

		var wg sync.WaitGroup
		for n := 0; n < 8; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := e.provider.Finish("cand-1")
				require.Nil(t, err)
			}()
		}
		wg.Wait()
		require.Equal(t, 1, e.results.creates)
	})

	t.Run("expiry forces completion with unanswered scored incorrect", func(t *testing.T) {
		e := newEnv(t, 150*time.Millisecond)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)

		tpl, _ := e.templates.GetByID("tpl-1")
		for n := 0; n < 10; n++ {
			q := tpl.Questions.Questions[n]
			require.Nil(t, e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{
				QuestionID:     q.QuestionID,
				SelectedOption: q.CorrectAnswerIndex,
			}))
		}

		require.Eventually(t, func() bool {
			rec, _ := e.results.GetByCandidateID("cand-1")
			return rec != nil
		}, 2*time.Second, 20*time.Millisecond)

		rec, _ := e.results.GetByCandidateID("cand-1")
		require.True(t, rec.Expired)
		require.Len(t, rec.Answers.Answers, 25)
		unanswered := 0
		for _, detail := range rec.Answers.Answers {
			if detail.SelectedOption == models.UnansweredOption {
				unanswered++
				require.False(t, detail.IsCorrect)
			}
		}
		require.Equal(t, 15, unanswered)
		require.Equal(t, 10.0/25.0*50, rec.Score)

		sess, _ := e.sessions.GetByCandidateID("cand-1")
		require.Equal(t, models.SessionExpired, sess.State)
		candidate, _ := e.candidates.GetByID("cand-1")
		require.Equal(t, models.CandidateStatusCompleted, candidate.Status)
	})

	t.Run("late user finish is recorded as expired", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)
		e.provider.StopTimers()

		// simulate a deadline in the past
		rec, _ := e.sessions.GetByCandidateID("cand-1")
		past := time.Now().Add(-time.Minute)
		rec.Deadline = &past
		_, err = e.sessions.Save(*rec)
		require.Nil(t, err)

		_, err = e.provider.Finish("cand-1")
		require.Nil(t, err)
		persisted, _ := e.results.GetByCandidateID("cand-1")
		require.True(t, persisted.Expired)
	})

	t.Run("resolve unknown link", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Resolve("missing")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("resolve completed candidate short-circuits", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)
		_, err = e.provider.Finish("cand-1")
		require.Nil(t, err)

		view, err := e.provider.Resolve("cand-1")
		require.Nil(t, err)
		require.True(t, view.Completed)
		require.Empty(t, view.Questions)
		require.NotNil(t, view.Result)

		// starting again is a duplicate submission
		_, err = e.provider.Start("cand-1")
		require.ErrorIs(t, err, models.ErrDuplicateSubmission)
	})

	t.Run("resolve pending candidate lists questions without answers", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		view, err := e.provider.Resolve("cand-1")
		require.Nil(t, err)
		require.False(t, view.Completed)
		require.Len(t, view.Questions, 25)
	})

	t.Run("answers after finish are rejected", func(t *testing.T) {
		e := newEnv(t, time.Hour)
		_, err := e.provider.Start("cand-1")
		require.Nil(t, err)
		_, err = e.provider.Finish("cand-1")
		require.Nil(t, err)

		err = e.provider.Answer("cand-1", assessmentapimodels.AnswerRequest{QuestionID: string(models.BlockProcess) + "-0", SelectedOption: 1})
		require.ErrorIs(t, err, models.ErrDuplicateSubmission)
	})
}
