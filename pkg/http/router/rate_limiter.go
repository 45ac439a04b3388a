package router

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const maxTrackedClients = 4096

// ipRateLimiter. one token bucket per client ip, least recently seen clients are evicted.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	r        rate.Limit
	burst    int
}

func newIPRateLimiter(r rate.Limit, burst int) *ipRateLimiter {
	limiters, _ := lru.New[string, *rate.Limiter](maxTrackedClients)
	return &ipRateLimiter{
		limiters: limiters,
		r:        r,
		burst:    burst,
	}
}

func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, ok := l.limiters.Get(ip)
	if !ok {
		limiter = rate.NewLimiter(l.r, l.burst)
		l.limiters.Add(ip, limiter)
	}
	return limiter
}
