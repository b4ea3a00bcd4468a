// Package events defines the security events emitted by the account guard
// endpoints and consumed by the audit pipeline.
package events

import "time"

// TopicAccountSecurity is the topic all account security events are published to.
const TopicAccountSecurity = "account.security"

// Type identifies what happened to the account.
type Type string

const (
	TypePinSet          Type = "pin.set"
	TypePinRemoved      Type = "pin.removed"
	TypeAccountLocked   Type = "account.locked"
	TypeUnlockSucceeded Type = "unlock.succeeded"
	TypeUnlockFailed    Type = "unlock.failed"
	TypeUnlockLockedOut Type = "unlock.locked_out"
)

// SecurityEvent records one sensitive-account action for the audit trail.
type SecurityEvent struct {
	ID                string    `json:"id"`
	Type              Type      `json:"type"`
	UserID            string    `json:"userId"`
	ClientIP          string    `json:"clientIp,omitempty"`
	UserAgent         string    `json:"userAgent,omitempty"`
	RequestID         string    `json:"requestId,omitempty"`
	RemainingAttempts *int64    `json:"remainingAttempts,omitempty"`
	OccurredAt        time.Time `json:"occurredAt"`
}
