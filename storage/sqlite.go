package storage

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cortexlab/oddball/dsp/sweep"
)

// Session is one extraction run over one recording.
type Session struct {
	ID              uint `gorm:"primaryKey;autoIncrement"`
	Source          string
	SampleRate      int
	SignalThreshold float64
	PeriodThreshold int
	SoundDuration   int
	CreatedAt       time.Time
}

// Event is one detected stimulus presentation within a session.
type Event struct {
	ID         uint `gorm:"primaryKey;autoIncrement"`
	SessionID  uint `gorm:"index:idx_event_session"`
	TrialIndex int
	Onset      int
	Direction  int
}

// Store is a sqlite-backed session database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the session database at path.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	if err := db.AutoMigrate(&Session{}, &Event{}); err != nil {
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("storage: close: %w", err)
	}
	return sqlDB.Close()
}

// SaveSession stores one extraction archive and returns the session ID.
func (s *Store) SaveSession(a *Archive) (uint, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}

	sess := &Session{
		Source:          a.Source,
		SampleRate:      a.SampleRate,
		SignalThreshold: a.SignalThreshold,
		PeriodThreshold: a.PeriodThreshold,
		SoundDuration:   a.SoundDuration,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sess).Error; err != nil {
			return err
		}

		if len(a.Onsets) == 0 {
			return nil
		}

		events := make([]Event, len(a.Onsets))
		for i, o := range a.Onsets {
			events[i] = Event{
				SessionID:  sess.ID,
				TrialIndex: i,
				Onset:      o,
				Direction:  a.Directions[i],
			}
		}

		return tx.Create(&events).Error
	})
	if err != nil {
		return 0, fmt.Errorf("storage: save session: %w", err)
	}

	return sess.ID, nil
}

// LoadSession reconstructs the archive of a stored session.
func (s *Store) LoadSession(id uint) (*Archive, error) {
	var sess Session
	if err := s.db.First(&sess, id).Error; err != nil {
		return nil, fmt.Errorf("storage: load session %d: %w", id, err)
	}

	var events []Event
	if err := s.db.Where("session_id = ?", id).Order("trial_index").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("storage: load events of session %d: %w", id, err)
	}

	a := &Archive{
		Source:          sess.Source,
		SampleRate:      sess.SampleRate,
		SignalThreshold: sess.SignalThreshold,
		PeriodThreshold: sess.PeriodThreshold,
		SoundDuration:   sess.SoundDuration,
		Labels:          sweep.Labels(),
	}

	for _, e := range events {
		a.Onsets = append(a.Onsets, e.Onset)
		a.Directions = append(a.Directions, e.Direction)
	}

	return a, nil
}

// Sessions lists all stored sessions, oldest first.
func (s *Store) Sessions() ([]Session, error) {
	var out []Session
	if err := s.db.Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("storage: list sessions: %w", err)
	}
	return out, nil
}
