package session

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"sap-talent-backend/config"
	"sap-talent-backend/db"
	resultstore "sap-talent-backend/lib/assessment/result-store"
	"sap-talent-backend/lib/assessment/scoring"
	sessionstore "sap-talent-backend/lib/assessment/session-store"
	templatestore "sap-talent-backend/lib/assessment/template-store"
	candidatestore "sap-talent-backend/lib/candidate/store"
	"sap-talent-backend/models"
	assessmentapimodels "sap-talent-backend/models/api/assessment"
	dbmodels "sap-talent-backend/models/db"
)

// Provider runs one candidate's live test-taking session:
// NotStarted -> Running -> {Completed, Expired}. Both terminal states lead
// to scoring; there is no path that discards a session unscored.
type Provider interface {
	// Resolve maps a shareable link to its entry state: not found, already
	// completed (short-circuits to the result view) or the question set.
	Resolve(candidateID string) (*assessmentapimodels.PublicAssessmentView, error)
	// Start begins the countdown and flips the candidate to InProgress.
	// Re-starting a running session resumes it instead of resetting.
	Start(candidateID string) (*assessmentapimodels.SessionStateView, error)
	// Answer synchronously overwrites one question's entry, last write wins.
	Answer(candidateID string, req assessmentapimodels.AnswerRequest) error
	// MarkVisited records navigation to a question.
	MarkVisited(candidateID string, questionIndex int) error
	// State reports remaining time and saved answers, for page reloads.
	State(candidateID string) (*assessmentapimodels.SessionStateView, error)
	// Finish is the user-initiated submit. Safe to invoke more than once:
	// repeats return the already-persisted result.
	Finish(candidateID string) (*assessmentapimodels.PublicResultView, error)
	// FinishOverdue force-finishes a running session whose deadline has
	// passed, on behalf of the reaper.
	FinishOverdue(rec dbmodels.AssessmentSession) error
	// StopTimers cancels all scheduled expirations, for shutdown.
	StopTimers()
}

// Notifier pushes completion events to connected dashboard operators.
type Notifier interface {
	CandidateCompleted(candidateID, candidateName string, score float64)
}

var Instance Provider

func NewHandler(notifier Notifier) {
	Instance = NewInstance(
		sessionstore.NewInstance(db.DB),
		templatestore.NewInstance(db.DB),
		candidatestore.NewInstance(db.DB),
		resultstore.NewInstance(db.DB),
		notifier,
		time.Duration(config.Conf.Assessment.DurationSec)*time.Second,
	)
}

func NewInstance(
	sessionStore sessionstore.Provider,
	templateStore templatestore.Provider,
	candidateStore candidatestore.Provider,
	resultStore resultstore.Provider,
	notifier Notifier,
	duration time.Duration,
) Provider {
	return &impl{
		sessionStore:   sessionStore,
		templateStore:  templateStore,
		candidateStore: candidateStore,
		resultStore:    resultStore,
		notifier:       notifier,
		duration:       duration,
		timers:         map[string]*time.Timer{},
		locks:          map[string]*sync.Mutex{},
	}
}

type impl struct {
	sessionStore   sessionstore.Provider
	templateStore  templatestore.Provider
	candidateStore candidatestore.Provider
	resultStore    resultstore.Provider
	notifier       Notifier
	duration       time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer // keyed by candidate id
	locks  map[string]*sync.Mutex
}

func (i *impl) Resolve(candidateID string) (*assessmentapimodels.PublicAssessmentView, error) {
	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate")
	}
	if candidate == nil {
		return nil, errors.Wrap(models.ErrNotFound, "candidate "+candidateID)
	}

	view := assessmentapimodels.PublicAssessmentView{
		CandidateName: candidate.Name,
		Level:         candidate.Level,
		DurationSec:   int(i.duration.Seconds()),
	}

	if candidate.Status == models.CandidateStatusCompleted {
		view.Completed = true
		result, err := i.resultStore.GetByCandidateID(candidateID)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load existing result")
		}
		if result != nil {
			view.Result = publicResult(candidate.Level, result.Score)
		}
		return &view, nil
	}

	template, err := i.templateStore.GetByID(candidate.TemplateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load template")
	}
	if template == nil {
		return nil, errors.Wrap(models.ErrNotFound, "template "+candidate.TemplateID)
	}
	view.AssessmentName = template.Name
	view.Questions = make([]assessmentapimodels.PublicQuestionView, 0, len(template.Questions.Questions))
	for _, q := range template.Questions.Questions {
		view.Questions = append(view.Questions, assessmentapimodels.PublicQuestionConvert(q))
	}
	if template.Scenario != nil {
		view.Scenario = &assessmentapimodels.ScenarioView{
			ScenarioID:  template.Scenario.ScenarioID,
			Title:       template.Scenario.Title,
			Description: template.Scenario.Description,
			Guidelines:  template.Scenario.Guidelines,
			Rubric:      template.Scenario.Rubric,
		}
	}
	return &view, nil
}

func (i *impl) Start(candidateID string) (*assessmentapimodels.SessionStateView, error) {
	lock := i.candidateLock(candidateID)
	lock.Lock()
	defer lock.Unlock()

	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate")
	}
	if candidate == nil {
		return nil, errors.Wrap(models.ErrNotFound, "candidate "+candidateID)
	}
	if candidate.Status == models.CandidateStatusCompleted {
		return nil, errors.Wrap(models.ErrDuplicateSubmission, "candidate "+candidateID)
	}

	rec, err := i.sessionStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if rec != nil && rec.State == models.SessionRunning {
		// Resume after a page reload or a service restart: keep the
		// original deadline and make sure an expiration is scheduled.
		i.armTimer(candidateID, time.Until(*rec.Deadline))
		return stateView(*rec), nil
	}

	now := time.Now()
	deadline := now.Add(i.duration)
	rec = &dbmodels.AssessmentSession{
		CandidateID: candidateID,
		TemplateID:  candidate.TemplateID,
		State:       models.SessionRunning,
		StartedAt:   &now,
		Deadline:    &deadline,
		Answers:     dbmodels.SessionAnswers{Selected: map[string]int{}},
	}
	id, err := i.sessionStore.Save(*rec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to start session")
	}
	rec.ID = id

	if err := i.candidateStore.SetStatus(candidateID, models.CandidateStatusInProgress); err != nil {
		log.WithError(err).
			WithField("candidate_id", candidateID).
			Warn("failed to mark candidate in progress")
	}
	i.armTimer(candidateID, i.duration)
	log.WithField("candidate_id", candidateID).Info("assessment session started")
	return stateView(*rec), nil
}

func (i *impl) Answer(candidateID string, req assessmentapimodels.AnswerRequest) error {
	rec, err := i.runningSession(candidateID)
	if err != nil {
		return err
	}
	template, err := i.templateStore.GetByID(rec.TemplateID)
	if err != nil {
		return errors.Wrap(err, "failed to load template")
	}
	if template == nil {
		return errors.Wrap(models.ErrNotFound, "template "+rec.TemplateID)
	}
	question := findQuestion(*template, req.QuestionID)
	if question == nil {
		return errors.New("question does not belong to this assessment")
	}
	if req.SelectedOption >= len(question.Options) {
		return errors.New("selected option is out of range")
	}
	return i.sessionStore.SetAnswer(rec.ID, req.QuestionID, req.SelectedOption)
}

func (i *impl) MarkVisited(candidateID string, questionIndex int) error {
	rec, err := i.runningSession(candidateID)
	if err != nil {
		return err
	}
	return i.sessionStore.AppendVisited(rec.ID, questionIndex)
}

func (i *impl) State(candidateID string) (*assessmentapimodels.SessionStateView, error) {
	rec, err := i.sessionStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if rec == nil {
		return &assessmentapimodels.SessionStateView{State: models.SessionNotStarted}, nil
	}
	return stateView(*rec), nil
}

func (i *impl) Finish(candidateID string) (*assessmentapimodels.PublicResultView, error) {
	return i.finish(candidateID, false)
}

func (i *impl) FinishOverdue(rec dbmodels.AssessmentSession) error {
	_, err := i.finish(rec.CandidateID, true)
	return err
}

// finish is the single submission path for user-initiated, timer-initiated
// and reaper-initiated completion. It is effectively-once per candidate:
// the per-candidate lock serializes racing triggers and an existing result
// turns later invocations into no-ops returning that result.
func (i *impl) finish(candidateID string, expired bool) (*assessmentapimodels.PublicResultView, error) {
	lock := i.candidateLock(candidateID)
	lock.Lock()
	defer lock.Unlock()

	logger := log.WithField("candidate_id", candidateID)

	candidate, err := i.candidateStore.GetByID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate")
	}
	if candidate == nil {
		return nil, errors.Wrap(models.ErrNotFound, "candidate "+candidateID)
	}

	existing, err := i.resultStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for existing result")
	}
	if existing != nil {
		logger.Debug("duplicate finish, returning existing result")
		i.stopTimer(candidateID)
		return publicResult(candidate.Level, existing.Score), nil
	}

	rec, err := i.sessionStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "session for candidate "+candidateID)
	}
	template, err := i.templateStore.GetByID(rec.TemplateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load template")
	}
	if template == nil {
		return nil, errors.Wrap(models.ErrNotFound, "template "+rec.TemplateID)
	}

	// A user submit arriving after the deadline still counts the saved
	// answers, but the session is recorded as expired: the deadline is
	// authoritative, not the client clock.
	if !expired && rec.Deadline != nil && time.Now().After(*rec.Deadline) {
		expired = true
	}

	outcome, err := scoring.Score(*template, rec.Answers)
	if err != nil {
		// Never present a misleading score; a degenerate template is a
		// loud failure, not a zero.
		logger.WithError(err).Error("scoring failed")
		return nil, err
	}

	now := time.Now()
	result := dbmodels.AssessmentResult{
		CandidateID: candidateID,
		TemplateID:  rec.TemplateID,
		Score:       outcome.Score,
		BlockScores: outcome.BlockScores,
		Answers:     outcome.Answers,
		Expired:     expired,
		CompletedAt: now,
	}
	if _, err := i.resultStore.Create(result); err != nil {
		// The unique index on candidate_id turns a concurrent duplicate
		// into an error here; surface whatever result won the race.
		winner, lookupErr := i.resultStore.GetByCandidateID(candidateID)
		if lookupErr == nil && winner != nil {
			logger.Debug("lost finish race, returning persisted result")
			i.stopTimer(candidateID)
			return publicResult(candidate.Level, winner.Score), nil
		}
		logger.WithError(err).Error("failed to persist result")
		return nil, err
	}

	terminalState := models.SessionCompleted
	if expired {
		terminalState = models.SessionExpired
	}
	if err := i.sessionStore.SetTerminal(rec.ID, terminalState, now); err != nil {
		logger.WithError(err).Warn("failed to finalize session state")
	}
	// Result first, status second: a failed flip leaves a valid result and
	// a retriable status update, never a Completed candidate without result.
	if err := i.candidateStore.SetStatus(candidateID, models.CandidateStatusCompleted); err != nil {
		logger.WithError(err).Warn("failed to mark candidate completed")
	}
	i.stopTimer(candidateID)

	if i.notifier != nil {
		i.notifier.CandidateCompleted(candidateID, candidate.Name, outcome.Score)
	}
	logger.
		WithField("score", outcome.Score).
		WithField("expired", expired).
		Info("assessment session finished")
	return publicResult(candidate.Level, outcome.Score), nil
}

func (i *impl) runningSession(candidateID string) (*dbmodels.AssessmentSession, error) {
	rec, err := i.sessionStore.GetByCandidateID(candidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	if rec == nil {
		return nil, errors.Wrap(models.ErrNotFound, "session for candidate "+candidateID)
	}
	if rec.State != models.SessionRunning {
		return nil, errors.Wrap(models.ErrDuplicateSubmission, "session is not running")
	}
	return rec, nil
}

// armTimer schedules the deadline-initiated finish as a cancellable task.
func (i *impl) armTimer(candidateID string, in time.Duration) {
	if in < 0 {
		in = 0
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if old, ok := i.timers[candidateID]; ok {
		old.Stop()
	}
	i.timers[candidateID] = time.AfterFunc(in, func() {
		if _, err := i.finish(candidateID, true); err != nil {
			log.WithError(err).
				WithField("candidate_id", candidateID).
				Error("deadline-initiated finish failed")
		}
	})
}

func (i *impl) stopTimer(candidateID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if timer, ok := i.timers[candidateID]; ok {
		timer.Stop()
		delete(i.timers, candidateID)
	}
}

func (i *impl) StopTimers() {
	i.mu.Lock()
	defer i.mu.Unlock()
	for id, timer := range i.timers {
		timer.Stop()
		delete(i.timers, id)
	}
}

func (i *impl) candidateLock(candidateID string) *sync.Mutex {
	i.mu.Lock()
	defer i.mu.Unlock()
	lock, ok := i.locks[candidateID]
	if !ok {
		lock = &sync.Mutex{}
		i.locks[candidateID] = lock
	}
	return lock
}

func stateView(rec dbmodels.AssessmentSession) *assessmentapimodels.SessionStateView {
	view := assessmentapimodels.SessionStateView{
		State:    rec.State,
		Answered: rec.Answers.Selected,
	}
	if view.Answered == nil {
		view.Answered = map[string]int{}
	}
	if rec.State == models.SessionRunning && rec.Deadline != nil {
		remaining := int(time.Until(*rec.Deadline).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		view.RemainingSec = remaining
	}
	return &view
}

func findQuestion(template dbmodels.AssessmentTemplate, questionID string) *dbmodels.TemplateQuestion {
	for n := range template.Questions.Questions {
		if template.Questions.Questions[n].QuestionID == questionID {
			return &template.Questions.Questions[n]
		}
	}
	return nil
}

func publicResult(level models.SeniorityLevel, score float64) *assessmentapimodels.PublicResultView {
	verdict := scoring.Evaluate(level, score)
	return &assessmentapimodels.PublicResultView{
		Score:     score,
		MaxScore:  50,
		Approved:  verdict.Approved,
		Threshold: verdict.Threshold,
	}
}
