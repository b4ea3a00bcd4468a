package guard

import "context"

// UnlockOutcome classifies the result of one unlock attempt.
type UnlockOutcome int

const (
	// OutcomeUnlocked means the PIN matched and the account is now unlocked.
	OutcomeUnlocked UnlockOutcome = iota
	// OutcomeInvalidPin means the PIN did not match; attempts remain.
	OutcomeInvalidPin
	// OutcomeLockedOut means the attempt budget is exhausted for the current
	// lockout window. The PIN is not even checked in this state.
	OutcomeLockedOut
)

// UnlockResult is the outcome of an unlock attempt plus the attempt budget
// left afterwards. Remaining is a best-effort snapshot under concurrent
// attempts; the counter itself is atomic.
type UnlockResult struct {
	Outcome   UnlockOutcome
	Remaining int64
}

// AttemptUnlock runs one pass of the unlock state machine:
//
//  1. The attempt is recorded first, unconditionally. Every attempt, right
//     or wrong, consumes one of the allowed tries.
//  2. If the budget is exhausted the lock is re-asserted and the attempt is
//     rejected without comparing the PIN at all. A correct PIN submitted on
//     the attempt that exhausts the budget is still rejected; the account
//     stays locked until the attempt counter expires on its own.
//  3. Otherwise the PIN is verified. A match unlocks the account and resets
//     the counter; a mismatch leaves the account locked with the remaining
//     budget reported to the caller.
//
// Recording precedes verification, so probing a PIN always spends budget.
func (g *Guard) AttemptUnlock(ctx context.Context, userID, pin string) (UnlockResult, error) {
	count, err := g.RecordAttempt(ctx, userID)
	if err != nil {
		return UnlockResult{}, err
	}

	remaining := g.maxAttempts - count
	if remaining < 0 {
		remaining = 0
	}

	if remaining <= 0 {
		if err := g.Lock(ctx, userID); err != nil {
			return UnlockResult{}, err
		}

		return UnlockResult{Outcome: OutcomeLockedOut, Remaining: 0}, nil
	}

	valid, err := g.VerifyPin(ctx, userID, pin)
	if err != nil {
		return UnlockResult{}, err
	}

	if !valid {
		return UnlockResult{Outcome: OutcomeInvalidPin, Remaining: remaining}, nil
	}

	if err := g.Unlock(ctx, userID); err != nil {
		return UnlockResult{}, err
	}

	if err := g.ResetAttempts(ctx, userID); err != nil {
		return UnlockResult{}, err
	}

	return UnlockResult{Outcome: OutcomeUnlocked, Remaining: g.maxAttempts}, nil
}
