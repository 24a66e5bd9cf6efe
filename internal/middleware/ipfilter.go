package middleware

import (
	"net/http"
	"sync"
)

// Blocklist is an in-memory set of denied client addresses. It has no
// persistence and no expiry; a process restart clears it. Mutation is an
// operator hook, not exposed through any route.
type Blocklist struct {
	mu  sync.RWMutex
	ips map[string]struct{}
}

// NewBlocklist creates an empty Blocklist.
func NewBlocklist() *Blocklist {
	return &Blocklist{ips: make(map[string]struct{})}
}

// Block adds ip to the blocklist.
func (b *Blocklist) Block(ip string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ips[ip] = struct{}{}
}

// Unblock removes ip from the blocklist.
func (b *Blocklist) Unblock(ip string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.ips, ip)
}

// IsBlocked reports whether ip is on the blocklist.
func (b *Blocklist) IsBlocked(ip string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.ips[ip]
	return ok
}

// IPFilter returns middleware rejecting blocklisted clients. It runs ahead of
// every other gate.
func IPFilter(blocklist *Blocklist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if blocklist.IsBlocked(RealIP(r)) {
				writeJSONError(w, http.StatusForbidden, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
