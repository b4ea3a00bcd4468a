package ratelimit

import (
	"context"
	"fmt"
)

// LimitExceeded describes which limit turned a request away.
type LimitExceeded struct {
	Scope  Scope
	Config LimitConfig
	Count  int64
}

// PolicyLimiter checks a request against every limit the policy configures
// for its scopes. All matching limits are recorded, so a denied request
// still consumes budget in every window it touched.
type PolicyLimiter struct {
	store  Store
	policy *Policy
}

func NewPolicyLimiter(store Store, policy *Policy) *PolicyLimiter {
	return &PolicyLimiter{
		store:  store,
		policy: policy,
	}
}

// Allow records the request under every limit configured for the given
// scopes and reports the first limit that is over budget, if any.
func (l *PolicyLimiter) Allow(ctx context.Context, clientKey string, scopes []Scope) (bool, *LimitExceeded, error) {
	for _, scope := range scopes {
		for _, limit := range l.policy.Limits[scope] {
			count, err := l.store.Record(ctx, limitKey(clientKey, scope, limit), limit.Window)
			if err != nil {
				return false, nil, err
			}

			if count > limit.Max {
				return false, &LimitExceeded{Scope: scope, Config: limit, Count: count}, nil
			}
		}
	}

	return true, nil, nil
}

// Store exposes the counting store for callers that apply ad-hoc limits
// outside the policy.
func (l *PolicyLimiter) Store() Store {
	return l.store
}

// limitKey separates counters per client, scope and window length so two
// limits on the same scope never share a counter.
func limitKey(clientKey string, scope Scope, limit LimitConfig) string {
	return fmt.Sprintf("%s:%s:%d", clientKey, scope, limit.Window.Milliseconds())
}
