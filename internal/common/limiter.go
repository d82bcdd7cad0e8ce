// Package common holds small helpers shared by the portal's handlers.
package common

import (
	"strings"
	"sync"
	"time"
)

const (
	limitWindow  = time.Minute
	cleanEvery   = 10 * time.Minute
	DefaultLimit = 100
)

// LimitSet counts hits per visitor over a sliding one minute window. The
// public pages take no credentials so this is all that stands between them
// and a scraper.
type LimitSet struct {
	m     map[string][]int64
	l     sync.Mutex
	limit int
	now   func() time.Time
	done  chan struct{}
}

func NewLimitSet(perMinute int) *LimitSet {
	if perMinute <= 0 {
		perMinute = DefaultLimit
	}
	ls := &LimitSet{
		m:     make(map[string][]int64),
		limit: perMinute,
		now:   time.Now,
		done:  make(chan struct{}),
	}
	go ls.clean()
	return ls
}

// Allow records a hit for ip and reports whether it's within the limit.
// When it isn't, wait is how long until the oldest hit leaves the window.
func (ls *LimitSet) Allow(ip string) (wait time.Duration, ok bool) {
	ip = StripPort(ip)
	now := ls.now()
	cutoff := now.Add(-limitWindow).UnixNano()

	ls.l.Lock()
	defer ls.l.Unlock()

	hits := recent(ls.m[ip], cutoff)
	if len(hits) >= ls.limit {
		ls.m[ip] = hits
		return time.Duration(hits[0]-cutoff) + time.Second, false
	}
	ls.m[ip] = append(hits, now.UnixNano())
	return 0, true
}

func (ls *LimitSet) Close() {
	select {
	case <-ls.done:
	default:
		close(ls.done)
	}
}

func (ls *LimitSet) clean() {
	ticker := time.NewTicker(cleanEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ls.done:
			return
		case <-ticker.C:
		}

		cutoff := ls.now().Add(-limitWindow).UnixNano()
		ls.l.Lock()
		for ip, hits := range ls.m {
			if hits = recent(hits, cutoff); len(hits) == 0 {
				delete(ls.m, ip)
			} else {
				ls.m[ip] = hits
			}
		}
		ls.l.Unlock()
	}
}

// recent drops the hits at or before cutoff, hits are in ascending order.
func recent(hits []int64, cutoff int64) []int64 {
	i := 0
	for i < len(hits) && hits[i] <= cutoff {
		i++
	}
	return hits[i:]
}

// StripPort drops the port from a host:port, IPv6 brackets included.
func StripPort(ip string) string {
	if strings.HasPrefix(ip, "[") {
		if idx := strings.Index(ip, "]"); idx > 0 {
			return ip[1:idx]
		}
	}
	if strings.Count(ip, ":") == 1 {
		return ip[:strings.Index(ip, ":")]
	}
	return ip
}
