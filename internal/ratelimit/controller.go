package ratelimit

import "time"

// Controller tracks the adaptive inter-request delay used between calls to
// a single upstream. It is pure policy state: it never sleeps, the caller
// does. Not goroutine-safe; each request stream owns its own Controller so
// no two in-flight requests ever share one.
type Controller struct {
	base       time.Duration
	max        time.Duration
	multiplier float64
	reduction  float64
	current    time.Duration
}

// Config holds controller configuration.
type Config struct {
	BaseDelay  time.Duration // initial and minimum delay
	MaxDelay   time.Duration // ceiling for backoff growth
	Multiplier float64       // growth factor on throttling, > 1
	Reduction  float64       // decay factor on success, in (0, 1)
}

// New creates a controller starting at the base delay.
func New(cfg Config) *Controller {
	return &Controller{
		base:       cfg.BaseDelay,
		max:        cfg.MaxDelay,
		multiplier: cfg.Multiplier,
		reduction:  cfg.Reduction,
		current:    cfg.BaseDelay,
	}
}

// OnSuccess relaxes the delay after a successful request, never dropping
// below the base delay.
func (c *Controller) OnSuccess() {
	reduced := time.Duration(float64(c.current) * c.reduction)
	if reduced < c.base {
		reduced = c.base
	}
	c.current = reduced
	CurrentDelaySeconds.Set(c.current.Seconds())
}

// OnThrottled reacts to an upstream rate-limit signal and returns how long
// the caller should sleep. When the upstream supplies an explicit
// Retry-After hint the hint is returned verbatim and the adaptive delay is
// left untouched. Otherwise the caller sleeps the current delay and the
// delay then grows by the multiplier, up to the ceiling, so consecutive
// throttles produce the sequence d, d*m, d*m^2, ...
func (c *Controller) OnThrottled(hint time.Duration) time.Duration {
	ThrottleEventsTotal.Inc()

	if hint > 0 {
		return hint
	}

	sleep := c.current

	grown := time.Duration(float64(c.current) * c.multiplier)
	if grown > c.max {
		grown = c.max
	}
	c.current = grown
	CurrentDelaySeconds.Set(c.current.Seconds())

	return sleep
}

// OnTransientFailure returns the sleep for a transient error (timeout,
// connection reset, bad body). The delay is not changed: transient errors
// say nothing about upstream load.
func (c *Controller) OnTransientFailure() time.Duration {
	TransientFailuresTotal.Inc()
	return c.current
}

// Delay returns the current inter-request delay.
func (c *Controller) Delay() time.Duration {
	return c.current
}
