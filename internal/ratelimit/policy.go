package ratelimit

import "time"

// LimitConfig is a single cap over a single trailing window.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// Policy maps scopes to the limits enforced for them. A request may match
// several scopes; every matching limit must pass for it to be admitted.
type Policy struct {
	Limits map[Scope][]LimitConfig
}

// DefaultPolicy returns the limits applied when an endpoint carries no
// configuration of its own.
func DefaultPolicy() *Policy {
	return &Policy{
		Limits: map[Scope][]LimitConfig{
			ScopeGlobal: {
				{Window: time.Minute, Max: 120},
			},
			ScopeRead: {
				{Window: time.Minute, Max: 60},
			},
			ScopeWrite: {
				{Window: time.Minute, Max: 20},
				{Window: time.Hour, Max: 300},
			},
		},
	}
}
