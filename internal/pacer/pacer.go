// Throttling between outbound calls.

package pacer

import (
	"context"
	"log"
	"math/rand"
	"time"
)

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer spaces out search queries: a random delay in [MinDelay, MaxDelay]
// between queries and BatchPause after every BatchSize queries.
type Pacer struct {
	MinDelay   time.Duration
	MaxDelay   time.Duration
	BatchSize  int
	BatchPause time.Duration

	sleep SleepFunc
	rnd   *rand.Rand
}

func New(minDelay, maxDelay time.Duration, batchSize int, batchPause time.Duration) *Pacer {
	return &Pacer{
		MinDelay:   minDelay,
		MaxDelay:   maxDelay,
		BatchSize:  batchSize,
		BatchPause: batchPause,
		sleep:      Sleep,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithSleep swaps the sleeper (tests)
func (p *Pacer) WithSleep(fn SleepFunc) *Pacer {
	p.sleep = fn
	return p
}

// WithSeed makes the random delays reproducible
func (p *Pacer) WithSeed(seed int64) *Pacer {
	p.rnd = rand.New(rand.NewSource(seed))
	return p
}

// Delay is the pause owed after finishing query done (1-based) of total.
// Nothing is owed after the last query.
func (p *Pacer) Delay(done, total int) time.Duration {
	if done >= total {
		return 0
	}
	if p.BatchSize > 0 && done%p.BatchSize == 0 {
		return p.BatchPause
	}
	if p.MaxDelay <= p.MinDelay {
		return p.MinDelay
	}
	span := p.MaxDelay - p.MinDelay
	return p.MinDelay + time.Duration(p.rnd.Int63n(int64(span)+1))
}

// Wait sleeps for Delay(done, total)
func (p *Pacer) Wait(ctx context.Context, done, total int) error {
	d := p.Delay(done, total)
	if d <= 0 {
		return nil
	}
	if p.BatchSize > 0 && done%p.BatchSize == 0 {
		log.Printf("   ⏸️ Batch pause (%s)...", d)
	}
	return p.sleep(ctx, d)
}
