package middleware

import (
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimit ограничивает частоту запросов одного игрока.
// Ставится после Auth, запросы без имени пропускаются как есть.
func RateLimit(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	get := func(username string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[username]
		if !ok {
			l = rate.NewLimiter(limit, burst)
			limiters[username] = l
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := UsernameFromContext(r.Context())
			if ok && !get(username).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
