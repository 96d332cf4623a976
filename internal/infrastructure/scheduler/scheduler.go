// Package scheduler recarga el snapshot periódicamente con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Reloader recarga el estado completo (state.Cache).
type Reloader interface {
	Reload(ctx context.Context) error
}

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// reloadTimeout límite de cada recarga programada.
const reloadTimeout = 30 * time.Second

// Scheduler ejecuta Reload según una expresión cron (acepta segundos opcionales y @every).
type Scheduler struct {
	cron     *cron.Cron
	reloader Reloader
	log      zerolog.Logger
}

// New valida la expresión y registra el job; no arranca hasta Start.
func New(spec string, loc *time.Location, reloader Reloader, log zerolog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithParser(cronParser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reloader: reloader,
		log:      log,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("scheduler: REFRESH_CRON inválido %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce ejecuta una recarga; los errores solo se registran.
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
	defer cancel()

	start := time.Now()
	if err := s.reloader.Reload(ctx); err != nil {
		s.log.Error().Err(err).Msg("recarga programada falhou")
		return
	}
	s.log.Debug().Dur("duration", time.Since(start)).Msg("recarga programada concluída")
}

// Start arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el cron y espera al job en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
