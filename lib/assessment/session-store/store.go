package sessionstore

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"sap-talent-backend/models"
	dbmodels "sap-talent-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.AssessmentSession) (id string, err error)
	GetByID(id string) (rec *dbmodels.AssessmentSession, err error)
	GetByCandidateID(candidateID string) (rec *dbmodels.AssessmentSession, err error)
	SetAnswer(id, questionID string, selected int) error
	AppendVisited(id string, questionIndex int) error
	SetTerminal(id string, state models.SessionState, finishedAt time.Time) error
	GetOverdue(now time.Time, grace time.Duration) (list []dbmodels.AssessmentSession, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AssessmentSession) (id string, err error) {
	existedRec, err := i.GetByCandidateID(rec.CandidateID)
	if err != nil {
		return "", err
	}
	if existedRec != nil {
		rec.ID = existedRec.ID
	}
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "failed to save assessment session")
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.AssessmentSession, error) {
	rec := dbmodels.AssessmentSession{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByCandidateID(candidateID string) (*dbmodels.AssessmentSession, error) {
	rec := dbmodels.AssessmentSession{}
	err := i.db.
		Where("candidate_id = ?", candidateID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// SetAnswer overwrites a single question's entry in the answer map. Writes
// within one session are ordered by user action order, last write wins.
func (i impl) SetAnswer(id, questionID string, selected int) error {
	rec, err := i.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "session "+id)
	}
	if rec.Answers.Selected == nil {
		rec.Answers.Selected = map[string]int{}
	}
	rec.Answers.Selected[questionID] = selected
	err = i.db.
		Model(&dbmodels.AssessmentSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"answers": rec.Answers}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to record answer")
	}
	return nil
}

func (i impl) AppendVisited(id string, questionIndex int) error {
	rec, err := i.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.Wrap(models.ErrNotFound, "session "+id)
	}
	visited := append(pq.Int64Array{}, rec.VisitedOrder...)
	visited = append(visited, int64(questionIndex))
	err = i.db.
		Model(&dbmodels.AssessmentSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"visited_order": visited}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to record navigation")
	}
	return nil
}

func (i impl) SetTerminal(id string, state models.SessionState, finishedAt time.Time) error {
	err := i.db.
		Model(&dbmodels.AssessmentSession{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"state":       state,
			"finished_at": finishedAt,
		}).
		Error
	if err != nil {
		return errors.Wrap(err, "failed to finalize session state")
	}
	return nil
}

// GetOverdue returns running sessions whose deadline plus grace has passed.
// Used by the reaper to force-finish abandoned sessions server-side.
func (i impl) GetOverdue(now time.Time, grace time.Duration) ([]dbmodels.AssessmentSession, error) {
	list := []dbmodels.AssessmentSession{}
	err := i.db.
		Model(dbmodels.AssessmentSession{}).
		Where("state = ?", models.SessionRunning).
		Where("deadline is not null").
		Where("deadline < ?", now.Add(-grace)).
		Find(&list).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list overdue sessions")
	}
	return list, nil
}
