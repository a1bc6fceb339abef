package state

import (
	"fmt"
	"sync"

	"github.com/julianstephens/dentaplan/internal/logger"
	"github.com/julianstephens/dentaplan/internal/storage"
)

// Session owns the live state for one process and writes every accepted
// transition through to a storage.Provider. Each touched collection is
// rewritten whole, so concurrent writers follow last-write-wins.
type Session struct {
	store storage.Provider

	mu    sync.RWMutex
	state State
}

// NewSession returns a session over store holding a fresh state. Call Load
// to read persisted data.
func NewSession(store storage.Provider) *Session {
	return &Session{store: store, state: New()}
}

// Load replaces the in-memory state with the stored collections.
func (s *Session) Load() error {
	settings, err := s.store.GetSettings()
	if err != nil {
		return err
	}
	patients, err := s.store.GetPatients()
	if err != nil {
		return err
	}
	appts, err := s.store.GetAppointments()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.state = State{Settings: settings, Patients: patients, Appointments: appts}
	s.mu.Unlock()

	logger.Debug("Loaded state", "patients", len(patients), "appointments", len(appts), "configured", settings.IsConfigured)
	return nil
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Store returns the backing provider.
func (s *Session) Store() storage.Provider {
	return s.store
}

// Dispatch reduces a against the current state, persists the touched
// collections and publishes the result. If persisting fails the in-memory
// state is left unchanged.
func (s *Session) Dispatch(a Action) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, a)
	if err != nil {
		return s.state.Clone(), err
	}
	if err := s.persist(next, a.Touches()); err != nil {
		logger.Error("Failed to persist state", "action", fmt.Sprintf("%T", a), "error", err)
		return s.state.Clone(), err
	}

	s.state = next
	logger.Debug("Applied action", "action", fmt.Sprintf("%T", a))
	return next.Clone(), nil
}

func (s *Session) persist(st State, touched Collection) error {
	if touched.Has(CollectionSettings) {
		if err := s.store.SaveSettings(st.Settings); err != nil {
			return err
		}
	}
	if touched.Has(CollectionPatients) {
		if err := s.store.SavePatients(st.Patients); err != nil {
			return err
		}
	}
	if touched.Has(CollectionAppointments) {
		if err := s.store.SaveAppointments(st.Appointments); err != nil {
			return err
		}
	}
	return nil
}
