package memory

import (
	"sync"

	"github.com/jhoicas/biocat-api/internal/application/ports"
	"github.com/jhoicas/biocat-api/internal/domain/entity"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore sesión única en memoria; no sobrevive a un reinicio.
type SessionStore struct {
	mu      sync.Mutex
	current *entity.Session
	epoch   int64
}

// NewSessionStore crea el store con la época inicial. Usar un valor distinto en cada
// arranque (p. ej. la hora en nanosegundos) invalida los tokens del proceso anterior.
func NewSessionStore(initialEpoch int64) *SessionStore {
	return &SessionStore{epoch: initialEpoch}
}

// Start registra la sesión con la época vigente y la devuelve.
func (s *SessionStore) Start(session entity.Session) entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Epoch = s.epoch
	stored := session
	s.current = &stored
	return session
}

// Current devuelve una copia de la sesión activa o nil.
func (s *SessionStore) Current() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Clear cierra la sesión activa sin cambiar la época.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Invalidate cierra la sesión y avanza la época.
func (s *SessionStore) Invalidate() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.epoch++
	return s.epoch
}

// Epoch época vigente.
func (s *SessionStore) Epoch() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.epoch
}
