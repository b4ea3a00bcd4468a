package handlers

// CheckPinResponse reports whether the user has a PIN credential.
type CheckPinResponse struct {
	Body struct {
		HasPin bool `doc:"Whether a PIN is set for the account" json:"hasPin"`
	}
}

// CheckLockResponse reports the account lock state. RawLockStatus carries the
// raw stored flag ("true" or null) for clients that inspect it directly.
type CheckLockResponse struct {
	Body struct {
		IsLocked      bool    `doc:"Whether the account is locked"    json:"isLocked"`
		RawLockStatus *string `doc:"Raw stored lock value, if any"    json:"rawLockStatus"`
	}
}

// SetPinRequest is the request body for setting a PIN.
type SetPinRequest struct {
	Body struct {
		Pin string `doc:"4-digit numeric PIN" example:"4821" json:"pin"`
	}
}

// UnlockRequest is the request body for an unlock attempt.
type UnlockRequest struct {
	Body struct {
		Pin string `doc:"4-digit numeric PIN" example:"4821" json:"pin"`
	}
}

// SuccessResponse is the generic success body for PIN mutations.
type SuccessResponse struct {
	Body struct {
		Success bool `json:"success"`
	}
}

// UnlockResponse is returned after a successful unlock.
type UnlockResponse struct {
	Body struct {
		Success     bool   `json:"success"`
		RedirectURL string `doc:"Where the client should navigate next" json:"redirectUrl"`
	}
}
