package network

import (
	"github.com/benbjohnson/clock"
	"projekt/udpframe/lib/ipaddr"
	"time"
)

// DefaultRefreshInterval is the minimum time between two refreshes of a Cache.
const DefaultRefreshInterval = 10 * time.Second

// Lister enumerates local addresses.
type Lister func() ([]ipaddr.Addr, error)

// Cache remembers the local addresses and refreshes them at most once per interval.
// Refresh timing only depends on the time passed to Refresh
// or, for Update, on the injected clock.
type Cache struct {
	clock       clock.Clock
	list        Lister
	interval    time.Duration
	addrs       map[ipaddr.Addr]struct{}
	lastRefresh time.Time
}

type CacheOption func(*Cache)

func WithClock(c clock.Clock) CacheOption {
	return func(cache *Cache) {
		cache.clock = c
	}
}

func WithLister(l Lister) CacheOption {
	return func(cache *Cache) {
		cache.list = l
	}
}

func WithInterval(d time.Duration) CacheOption {
	return func(cache *Cache) {
		cache.interval = d
	}
}

// NewCache creates an empty Cache.
// By default it lists addresses with LocalAddrs, uses the wall clock
// and refreshes every DefaultRefreshInterval.
func NewCache(opts ...CacheOption) *Cache {
	c := &Cache{
		clock:    clock.New(),
		list:     LocalAddrs,
		interval: DefaultRefreshInterval,
		addrs:    map[ipaddr.Addr]struct{}{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Refresh lists the local addresses again if the cache was never filled
// or if at least one interval passed since the last refresh.
// It reports whether a refresh was attempted.
// On error the previous addresses are kept until the next interval.
func (c *Cache) Refresh(now time.Time) (refreshed bool, err error) {
	if !c.lastRefresh.IsZero() && now.Sub(c.lastRefresh) < c.interval {
		return false, nil
	}
	c.lastRefresh = now
	addrs, err := c.list()
	if err != nil {
		return true, err
	}
	c.addrs = make(map[ipaddr.Addr]struct{}, len(addrs))
	for _, a := range addrs {
		c.addrs[a] = struct{}{}
	}
	return true, nil
}

// Update calls Refresh with the current time of the injected clock.
func (c *Cache) Update() (bool, error) {
	return c.Refresh(c.clock.Now())
}

// Contains reports whether a is one of the cached local addresses.
func (c *Cache) Contains(a ipaddr.Addr) bool {
	_, ok := c.addrs[a]
	return ok
}

// Addrs returns a copy of the cached addresses in no particular order.
func (c *Cache) Addrs() []ipaddr.Addr {
	result := make([]ipaddr.Addr, 0, len(c.addrs))
	for a := range c.addrs {
		result = append(result, a)
	}
	return result
}

func (c *Cache) LastRefresh() time.Time {
	return c.lastRefresh
}
