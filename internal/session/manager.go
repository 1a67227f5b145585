package session

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"ncfqr/internal/logger"
	"ncfqr/internal/models"
	apperrors "ncfqr/pkg/errors"
)

// Manager applies operations to stored sessions. Operations on the same
// session id run one at a time; different sessions do not block each other.
type Manager struct {
	store     Store
	validator Validator
	generator Generator
	log       zerolog.Logger

	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, v Validator, g Generator) *Manager {
	return &Manager{
		store:     store,
		validator: v,
		generator: g,
		log:       logger.Get(),
		locks:     make(map[string]*idLock),
	}
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}

func (m *Manager) load(ctx context.Context, id string) (*Session, error) {
	s, err := m.store.Load(ctx, id)
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		return New(id), nil
	}
	return s, err
}

// do loads (or creates) the session, applies fn and saves the result even
// when fn fails, since a failed generation still updates errors and notice.
func (m *Manager) do(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	opErr := fn(s)
	if err := m.store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, opErr
}

// Get returns the current state. Unknown ids yield an empty session that
// is not stored until it is first modified.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()
	return m.load(ctx, id)
}

func (m *Manager) Edit(ctx context.Context, id string, field models.Field, value string) (*Session, error) {
	return m.do(ctx, id, func(s *Session) error {
		return s.Edit(field, value)
	})
}

func (m *Manager) Generate(ctx context.Context, id string) (*Session, error) {
	return m.do(ctx, id, func(s *Session) error {
		err := s.Generate(ctx, m.validator, m.generator)
		switch {
		case err == nil:
			m.log.Info().Str("session", id).Str("student_id", s.Artifact.Record.StudentID).Msg("QR code generated")
		case errors.Is(err, apperrors.ErrInvalidForm):
			m.log.Debug().Str("session", id).Int("errors", len(s.Errors)).Msg("Form rejected")
		default:
			m.log.Error().Err(err).Str("session", id).Msg("QR generation failed")
		}
		return err
	})
}

// Reset clears the session. Resetting an already empty session changes
// nothing.
func (m *Manager) Reset(ctx context.Context, id string) (*Session, error) {
	unlock := m.lock(id)
	defer unlock()

	if err := m.store.Delete(ctx, id); err != nil {
		return nil, err
	}
	return New(id), nil
}

func (m *Manager) DismissNotice(ctx context.Context, id string) (*Session, error) {
	return m.do(ctx, id, func(s *Session) error {
		s.DismissNotice()
		return nil
	})
}

func (m *Manager) Download(ctx context.Context, id string) (string, []byte, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	return s.Download()
}
