// Package worker provides a worker pool that plays independent games in
// parallel. Each job builds its own Game, so workers share no state.
package worker

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/chessrules-go/internal/chess"
	"github.com/lgbarn/chessrules-go/internal/engine"
)

// Job describes one game to play.
type Job struct {
	Index int    // Position in the submission order
	Seed  int64  // Seed for the game's random source
	FEN   string // Start position; empty means the standard one
}

// Result is the end state of a played job.
type Result struct {
	Index    int
	Seed     int64
	Outcome  engine.Outcome
	Plies    int
	FinalFEN string
	Key      chess.PositionKey // Key of the final position
	Err      error
}

// ProcessFunc plays one job. It should return promptly once ctx is done.
type ProcessFunc func(ctx context.Context, job Job) Result

// Pool manages a pool of workers for parallel game play.
type Pool struct {
	numWorkers  int
	bufferSize  int
	jobs        chan Job
	results     chan Result
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a worker pool. Defaults: 1 worker, buffer size of 10.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.jobs = make(chan Job, p.bufferSize)
	p.results = make(chan Result, p.bufferSize)
	return p
}

// Start starts the worker goroutines. Jobs still queued when ctx is done
// are drained without being played.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for job := range p.jobs {
		if p.IsStopped() || ctx.Err() != nil {
			continue
		}
		p.results <- p.processFunc(ctx, job)
	}
}

// Submit queues a job, blocking while the queue is full.
func (p *Pool) Submit(job Job) {
	p.jobs <- job
}

// TrySubmit queues a job without blocking. It returns false if the queue is
// full or the pool is stopped.
func (p *Pool) TrySubmit(job Job) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.jobs <- job:
		return true
	default:
		return false
	}
}

// Stop makes workers skip the jobs still queued.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped returns true if the pool has been stopped.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the job queue and waits for the workers. The result channel
// is closed once they are done.
func (p *Pool) Close() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// PlayRandom is a ProcessFunc that plays uniformly random moves from the
// job's position until the game ends or maxPlies is reached.
func PlayRandom(rules engine.Rules, maxPlies int) ProcessFunc {
	return func(ctx context.Context, job Job) Result {
		res := Result{Index: job.Index, Seed: job.Seed}

		fen := job.FEN
		if fen == "" {
			fen = engine.InitialFEN
		}
		g, err := engine.NewGameFromFEN(fen, engine.WithRules(rules))
		if err != nil {
			res.Err = err
			return res
		}

		// Each job owns its source; *rand.Rand is not safe to share.
		r := rand.New(rand.NewSource(job.Seed))
		for g.Running() && (maxPlies <= 0 || g.Ply() < maxPlies) {
			if res.Err = ctx.Err(); res.Err != nil {
				break
			}
			if res.Err = g.PlayRandom(r); res.Err != nil {
				break
			}
		}

		res.Outcome = g.Outcome()
		res.Plies = g.Ply()
		res.FinalFEN = g.FEN()
		res.Key = g.Board().Key()
		return res
	}
}
