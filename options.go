package searchd

import "time"

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	driver   string // "valkey" or "redis"
	addrs    []string
	password string

	minScore     float64
	historyScan  int
	projectScan  int
	readyTimeout time.Duration
}

// WithValkey configures the client to connect to a Valkey instance.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithMinScore overrides the relevance floor below which hits are dropped.
// Default: 0.4.
func WithMinScore(score float64) Option {
	return func(c *clientConfig) {
		c.minScore = score
	}
}

// WithScanLimits bounds how many history records and project names are
// examined per suggestion request. Defaults: 50 and 200.
func WithScanLimits(historyScan, projectScan int) Option {
	return func(c *clientConfig) {
		c.historyScan = historyScan
		c.projectScan = projectScan
	}
}

// WithReadyTimeout bounds how long New waits for the database.
// Default: 10s.
func WithReadyTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readyTimeout = d
	}
}
