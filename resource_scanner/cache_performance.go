package resource_scanner

import (
	"sync"
	"time"
)

// CachePerformance is a snapshot of the token cache hit counters.
type CachePerformance struct {
	Lookups int64
	Hits    int64
	Misses  int64
	Since   time.Time
}

// HitRate returns the share of lookups served from the cache, in percent.
func (p CachePerformance) HitRate() float64 {
	if p.Lookups == 0 {
		return 0
	}
	return float64(p.Hits) / float64(p.Lookups) * 100
}

type cacheCounters struct {
	mutex sync.Mutex
	snap  CachePerformance
}

func (c *cacheCounters) record(hit bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.snap.Lookups++
	if hit {
		c.snap.Hits++
	} else {
		c.snap.Misses++
	}
}

func (c *cacheCounters) reset() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.snap = CachePerformance{Since: time.Now()}
}

// Performance returns the hit and miss counters since the cache was opened or
// last cleared.
func (cm *CacheManager) Performance() CachePerformance {
	cm.performance.mutex.Lock()
	defer cm.performance.mutex.Unlock()
	return cm.performance.snap
}
