package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/ingest"
	"golang.org/x/time/rate"
)

// DefaultLimiterIdle is how long a host's limiter is kept after its last use.
const DefaultLimiterIdle = 10 * time.Minute

var _ ingest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces upstream requests with one token bucket per host.
// Hosts are supplied by callers, so buckets that sit idle are dropped; an
// idle bucket is full again anyway, and a fresh one behaves the same.
type DomainLimiter struct {
	mu        sync.Mutex
	hosts     map[string]*hostLimiter
	rps       float64
	idle      time.Duration
	lastPrune time.Time
}

type hostLimiter struct {
	limiter  *rate.Limiter
	lastUsed time.Time
	waiting  int
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return NewDomainLimiterWithIdle(rps, DefaultLimiterIdle)
}

// NewDomainLimiterWithIdle is like NewDomainLimiter but drops a host's bucket
// once it has been unused for idle. The idle period is never shorter than
// the refill interval of one token.
func NewDomainLimiterWithIdle(rps float64, idle time.Duration) *DomainLimiter {
	if rps > 0 {
		idle = max(idle, time.Duration(float64(time.Second)/rps))
	}
	return &DomainLimiter{
		hosts:     make(map[string]*hostLimiter),
		rps:       rps,
		idle:      idle,
		lastPrune: time.Now(),
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	now := time.Now()

	d.mu.Lock()
	if now.Sub(d.lastPrune) >= d.idle {
		d.prune(now)
	}
	h, ok := d.hosts[domain]
	if !ok {
		h = &hostLimiter{limiter: rate.NewLimiter(rate.Limit(d.rps), 1)}
		d.hosts[domain] = h
	}
	h.waiting++
	d.mu.Unlock()

	err := h.limiter.Wait(ctx)

	d.mu.Lock()
	h.waiting--
	h.lastUsed = time.Now()
	d.mu.Unlock()

	return err
}

// Len returns the number of hosts currently tracked.
func (d *DomainLimiter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.hosts)
}

// prune drops buckets with no pending waits that have been idle for d.idle.
// Callers must hold d.mu.
func (d *DomainLimiter) prune(now time.Time) {
	for host, h := range d.hosts {
		if h.waiting == 0 && now.Sub(h.lastUsed) >= d.idle {
			delete(d.hosts, host)
		}
	}
	d.lastPrune = now
}
