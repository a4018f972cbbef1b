package testutil

import (
	"fmt"
	"sync"
	"time"
)

// StepClock reloj determinista para tests: cada llamada a Now avanza Step.
type StepClock struct {
	mu      sync.Mutex
	current time.Time
	Step    time.Duration
}

// NewStepClock crea un reloj que empieza en start y avanza un segundo por llamada.
func NewStepClock(start time.Time) *StepClock {
	return &StepClock{current: start, Step: time.Second}
}

// Now devuelve la hora actual del reloj y avanza.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.current
	c.current = c.current.Add(c.Step)
	return now
}

// SequenceIDs genera ids predecibles con prefijo: "<prefix>-1", "<prefix>-2", ...
type SequenceIDs struct {
	mu     sync.Mutex
	prefix string
	seq    int
}

// NewSequenceIDs crea el generador.
func NewSequenceIDs(prefix string) *SequenceIDs {
	return &SequenceIDs{prefix: prefix}
}

// NewID devuelve el siguiente id.
func (g *SequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("%s-%d", g.prefix, g.seq)
}
