// Package ratelimit implements an exact sliding-window request throttle.
package ratelimit

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Decision is the outcome of a single admission check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// SlidingWindow admits at most maxRequests per key within any trailing window.
// It keeps the timestamps of admitted requests per key; state is process-local.
type SlidingWindow struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	mu   sync.Mutex
	hits []time.Time
	// dead is set by the janitor after the bucket was removed from the map.
	dead bool
}

// Option customizes a SlidingWindow.
type Option func(*SlidingWindow)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindow) {
		l.now = now
	}
}

// NewSlidingWindow creates a throttle admitting maxRequests per window. A non-positive
// maxRequests is raised to 1.
func NewSlidingWindow(maxRequests int, window time.Duration, opts ...Option) *SlidingWindow {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	l := &SlidingWindow{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		buckets:     make(map[string]*bucket),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow prunes the key's timestamps older than the window and admits the request when
// fewer than maxRequests remain. Only admitted requests are recorded.
func (l *SlidingWindow) Allow(key string) Decision {
	for {
		b := l.bucket(key)

		b.mu.Lock()
		if b.dead {
			b.mu.Unlock()
			continue
		}

		now := l.now()
		b.prune(now.Add(-l.window))

		if len(b.hits) >= l.maxRequests {
			retry := b.hits[0].Add(l.window).Sub(now)
			b.mu.Unlock()
			return Decision{Allowed: false, Limit: l.maxRequests, Remaining: 0, RetryAfter: retry}
		}

		b.hits = append(b.hits, now)
		remaining := l.maxRequests - len(b.hits)
		b.mu.Unlock()

		return Decision{Allowed: true, Limit: l.maxRequests, Remaining: remaining}
	}
}

func (l *SlidingWindow) bucket(key string) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{}
		l.buckets[key] = b
	}
	return b
}

// prune drops timestamps at or before cutoff. hits is kept in ascending order.
func (b *bucket) prune(cutoff time.Time) {
	i := sort.Search(len(b.hits), func(i int) bool { return b.hits[i].After(cutoff) })
	if i == 0 {
		return
	}
	b.hits = append(b.hits[:0], b.hits[i:]...)
}

// Sweep prunes every key and removes keys whose windows became empty.
// It returns the number of removed keys.
func (l *SlidingWindow) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	removed := 0
	for key, b := range l.buckets {
		b.mu.Lock()
		b.prune(cutoff)
		if len(b.hits) == 0 {
			b.dead = true
			delete(l.buckets, key)
			removed++
		}
		b.mu.Unlock()
	}
	return removed
}

// Len returns the number of tracked keys.
func (l *SlidingWindow) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// DefaultJanitorInterval is used by Run when no positive interval is given.
const DefaultJanitorInterval = time.Minute

// Run sweeps idle keys every interval until ctx is done.
func (l *SlidingWindow) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}
