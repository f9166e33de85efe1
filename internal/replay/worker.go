package replay

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/punchamoorthee/payflow/internal/ledger"
)

// ErrWorkerStopped is returned when a command is submitted to a worker
// whose loop is no longer running.
var ErrWorkerStopped = errors.New("ledger worker stopped")

type command struct {
	action ledger.Action
	snap   chan []ledger.ClientSnapshot
	resp   chan error
}

// Worker gives a single goroutine exclusive ownership of a Ledger. All
// mutations and snapshots travel over the command channel, so concurrent
// HTTP handlers never touch ledger state directly and per-account mutation
// pairs stay atomic.
type Worker struct {
	db     *ledger.Ledger
	log    *zap.Logger
	cmds   chan command
	cancel context.CancelFunc
	done   chan struct{}
}

// NewWorker wraps db. Start must be called before submitting commands.
func NewWorker(db *ledger.Ledger, log *zap.Logger) *Worker {
	return &Worker{
		db:   db,
		log:  log,
		cmds: make(chan command, 64),
		done: make(chan struct{}),
	}
}

// Start launches the worker loop. A panic inside action handling is
// recovered and shuts the worker down instead of crashing the process.
func (w *Worker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go func() {
		defer close(w.done)
		defer func() {
			if r := recover(); r != nil {
				w.log.Error("ledger worker panic", zap.Any("reason", r))
			}
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case cmd := <-w.cmds:
				if cmd.snap != nil {
					cmd.snap <- w.db.Snapshot()
					continue
				}
				err := w.db.Apply(cmd.action)
				countAction(cmd.action, err)
				cmd.resp <- err
			}
		}
	}()
}

// Stop cancels the worker loop and waits for it to exit.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	<-w.done
}

// Apply submits one action and waits for the ledger's verdict.
func (w *Worker) Apply(ctx context.Context, a ledger.Action) error {
	cmd := command{action: a, resp: make(chan error, 1)}
	select {
	case w.cmds <- cmd:
	case <-w.done:
		return ErrWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-cmd.resp:
		return err
	case <-w.done:
		return ErrWorkerStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the state of every known client.
func (w *Worker) Snapshot(ctx context.Context) ([]ledger.ClientSnapshot, error) {
	cmd := command{snap: make(chan []ledger.ClientSnapshot, 1)}
	select {
	case w.cmds <- cmd:
	case <-w.done:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case s := <-cmd.snap:
		return s, nil
	case <-w.done:
		return nil, ErrWorkerStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
