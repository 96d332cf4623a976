package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-ti/internal/infrastructure/scheduler"
)

type countingReloader struct {
	calls atomic.Int32
	err   error
}

func (r *countingReloader) Reload(ctx context.Context) error {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("sem deadline")
	}
	return r.err
}

func TestNew_ExpresionInvalida(t *testing.T) {
	_, err := scheduler.New("a cada minuto", time.UTC, &countingReloader{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestRunOnce_LlamaReload(t *testing.T) {
	r := &countingReloader{err: errors.New("gateway fora")}
	s, err := scheduler.New("@every 1h", nil, r, zerolog.Nop())
	require.NoError(t, err)

	s.RunOnce()
	s.RunOnce()
	assert.Equal(t, int32(2), r.calls.Load())
}

func TestStart_EjecutaPeriodicamente(t *testing.T) {
	r := &countingReloader{}
	s, err := scheduler.New("@every 1s", time.UTC, r, zerolog.Nop())
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
