package db

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

// ErrWorkerClosed is returned by Do once Close has been called.
var ErrWorkerClosed = errors.New("db worker closed")

// TxFn runs inside a transaction owned by the Worker.
type TxFn func(ctx context.Context, tx *sql.Tx) error

type writeJob struct {
	ctx    context.Context
	fn     TxFn
	result chan error
}

// Worker funnels every write to the gate-log kv table through one goroutine,
// so read-modify-write of a JSON array key never interleaves with another.
type Worker struct {
	db    *sql.DB
	queue chan writeJob

	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func NewWorker(db *sql.DB) *Worker {
	w := &Worker{
		db:      db,
		queue:   make(chan writeJob, 64),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w
}

// Close stops accepting writes, finishes the ones already queued and waits
// for the loop to exit. It is safe to call more than once.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.quit) })
	<-w.stopped
}

// Do runs fn in its own transaction and returns its error or the commit
// error. A job whose ctx is done before it starts is skipped.
func (w *Worker) Do(ctx context.Context, fn TxFn) error {
	select {
	case <-w.quit:
		return ErrWorkerClosed
	default:
	}

	j := writeJob{ctx: ctx, fn: fn, result: make(chan error, 1)}
	select {
	case w.queue <- j:
	case <-w.quit:
		return ErrWorkerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-w.stopped:
		// Enqueued after the final drain.
		select {
		case err := <-j.result:
			return err
		default:
			return ErrWorkerClosed
		}
	}
}

func (w *Worker) run() {
	defer close(w.stopped)

	for {
		select {
		case j := <-w.queue:
			j.result <- w.exec(j)
		case <-w.quit:
			for {
				select {
				case j := <-w.queue:
					j.result <- w.exec(j)
				default:
					return
				}
			}
		}
	}
}

func (w *Worker) exec(j writeJob) error {
	if err := j.ctx.Err(); err != nil {
		return err
	}

	tx, err := w.db.BeginTx(j.ctx, nil)
	if err != nil {
		return err
	}
	if err := j.fn(j.ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
