package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jhoicas/biocat-api/internal/domain/entity"
	"github.com/jhoicas/biocat-api/internal/domain/repository"
	"github.com/jhoicas/biocat-api/pkg/logger"
)

// ErrPersisterClosed se devuelve al encolar o esperar en un persister ya cerrado.
var ErrPersisterClosed = errors.New("persister cerrado")

const saveTimeout = 15 * time.Second

type saveJob struct {
	snapshot *entity.Snapshot
	ack      chan error // solo en barreras de Flush
}

// Persister es el único escritor hacia el SnapshotRepository. Procesa los snapshots en
// el orden en que se encolaron, así un estado anterior nunca pisa a uno posterior.
type Persister struct {
	repo  repository.SnapshotRepository
	log   *logger.Logger
	queue chan saveJob
	done  chan struct{}

	mu     sync.Mutex // protege closed y los envíos a queue
	closed bool

	errMu   sync.Mutex
	lastErr error
}

// NewPersister arranca la goroutine de guardado. buffer es la capacidad de la cola;
// con la cola llena Enqueue bloquea hasta que haya lugar.
func NewPersister(repo repository.SnapshotRepository, log *logger.Logger, buffer int) *Persister {
	if buffer <= 0 {
		buffer = 64
	}
	if log == nil {
		log = logger.Nop()
	}
	p := &Persister{
		repo:  repo,
		log:   log.Component("persister"),
		queue: make(chan saveJob, buffer),
		done:  make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *Persister) loop() {
	defer close(p.done)
	for job := range p.queue {
		if job.ack != nil {
			p.errMu.Lock()
			err := p.lastErr
			p.lastErr = nil
			p.errMu.Unlock()
			job.ack <- err
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		err := p.repo.Save(ctx, job.snapshot)
		cancel()
		if err != nil {
			p.log.Error().Err(err).Msg("guardar snapshot")
			p.errMu.Lock()
			if p.lastErr == nil {
				p.lastErr = err
			}
			p.errMu.Unlock()
			continue
		}
		p.log.Debug().
			Int("products", len(job.snapshot.Inventory)).
			Int("clients", len(job.snapshot.Clients)).
			Int("orders", len(job.snapshot.Orders)).
			Msg("snapshot guardado")
	}
}

// Enqueue agrega un snapshot a la cola. El snapshot no debe mutarse después.
func (p *Persister) Enqueue(s *entity.Snapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrPersisterClosed
	}
	p.queue <- saveJob{snapshot: s}
	return nil
}

// Flush espera a que se guarden todos los snapshots encolados hasta ahora.
// Devuelve el primer error de guardado ocurrido desde el Flush anterior.
func (p *Persister) Flush(ctx context.Context) error {
	ack := make(chan error, 1)
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPersisterClosed
	}
	p.queue <- saveJob{ack: ack}
	p.mu.Unlock()

	select {
	case err := <-ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close deja de aceptar snapshots, guarda los pendientes y detiene la goroutine.
func (p *Persister) Close(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
	case <-ctx.Done():
		return ctx.Err()
	}
	p.errMu.Lock()
	defer p.errMu.Unlock()
	err := p.lastErr
	p.lastErr = nil
	return err
}
