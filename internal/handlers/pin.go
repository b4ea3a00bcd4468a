package handlers

import (
	"context"
	"errors"

	"github.com/ostracon-app/ostracon/internal/auth"
	"github.com/ostracon-app/ostracon/internal/events"
	"github.com/ostracon-app/ostracon/internal/guard"
	"go.uber.org/zap"
)

// DefaultRedirectURL is where a freshly unlocked session lands.
const DefaultRedirectURL = "/explore"

// PinHandler handles the account PIN and lock endpoints.
type PinHandler struct {
	guard       *guard.Guard
	recorder    *events.Recorder
	logger      *zap.Logger
	redirectURL string
}

// NewPinHandler creates a new PIN handler.
func NewPinHandler(g *guard.Guard, recorder *events.Recorder, logger *zap.Logger) *PinHandler {
	return &PinHandler{
		guard:       g,
		recorder:    recorder,
		logger:      logger,
		redirectURL: DefaultRedirectURL,
	}
}

// CheckPin reports whether the authenticated user has a PIN set.
func (h *PinHandler) CheckPin(ctx context.Context, _ *struct{}) (*CheckPinResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	hasPin, err := h.guard.HasPin(ctx, userID)
	if err != nil {
		return nil, h.storeFailure(userID, "check pin", err)
	}

	resp := &CheckPinResponse{}
	resp.Body.HasPin = hasPin

	return resp, nil
}

// CheckLock reports the lock state of the authenticated user's account.
func (h *PinHandler) CheckLock(ctx context.Context, _ *struct{}) (*CheckLockResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	locked, raw, err := h.guard.LockStatus(ctx, userID)
	if err != nil {
		return nil, h.storeFailure(userID, "check lock", err)
	}

	resp := &CheckLockResponse{}
	resp.Body.IsLocked = locked

	if raw != "" {
		resp.Body.RawLockStatus = &raw
	}

	return resp, nil
}

// SetPin stores a new PIN for the authenticated user, replacing any prior one.
func (h *PinHandler) SetPin(ctx context.Context, req *SetPinRequest) (*SuccessResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.guard.SetPin(ctx, userID, req.Body.Pin); err != nil {
		if errors.Is(err, guard.ErrInvalidPin) {
			return nil, errInvalidPinFormat()
		}

		return nil, h.storeFailure(userID, "set pin", err)
	}

	h.record(ctx, events.TypePinSet, userID, nil)

	return successResponse(), nil
}

// Lock marks the authenticated user's account locked.
func (h *PinHandler) Lock(ctx context.Context, _ *struct{}) (*SuccessResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.guard.Lock(ctx, userID); err != nil {
		return nil, h.storeFailure(userID, "lock", err)
	}

	h.record(ctx, events.TypeAccountLocked, userID, nil)

	return successResponse(), nil
}

// Remove deletes the user's PIN and clears the lock together.
func (h *PinHandler) Remove(ctx context.Context, _ *struct{}) (*SuccessResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.guard.RemovePin(ctx, userID); err != nil {
		return nil, h.storeFailure(userID, "remove pin", err)
	}

	h.record(ctx, events.TypePinRemoved, userID, nil)

	return successResponse(), nil
}

// Unlock runs one unlock attempt through the guard's state machine.
func (h *PinHandler) Unlock(ctx context.Context, req *UnlockRequest) (*UnlockResponse, error) {
	userID, err := h.userID(ctx)
	if err != nil {
		return nil, err
	}

	result, err := h.guard.AttemptUnlock(ctx, userID, req.Body.Pin)
	if err != nil {
		return nil, h.storeFailure(userID, "unlock", err)
	}

	switch result.Outcome {
	case guard.OutcomeLockedOut:
		h.record(ctx, events.TypeUnlockLockedOut, userID, &result.Remaining)

		return nil, errLockedOut()

	case guard.OutcomeInvalidPin:
		h.record(ctx, events.TypeUnlockFailed, userID, &result.Remaining)

		return nil, errWrongPin(result.Remaining)
	}

	h.record(ctx, events.TypeUnlockSucceeded, userID, nil)

	resp := &UnlockResponse{}
	resp.Body.Success = true
	resp.Body.RedirectURL = h.redirectURL

	return resp, nil
}

func (h *PinHandler) userID(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", errUnauthorized()
	}

	return userID, nil
}

func (h *PinHandler) storeFailure(userID, op string, err error) error {
	h.logger.Error("store operation failed",
		zap.String("operation", op),
		zap.String("userId", userID),
		zap.Error(err),
	)

	return errInternal()
}

func (h *PinHandler) record(ctx context.Context, eventType events.Type, userID string, remaining *int64) {
	meta := RequestMetaFromContext(ctx)

	h.recorder.Record(&events.SecurityEvent{
		Type:              eventType,
		UserID:            userID,
		ClientIP:          meta.ClientIP,
		UserAgent:         meta.UserAgent,
		RequestID:         meta.RequestID,
		RemainingAttempts: remaining,
	})
}

func successResponse() *SuccessResponse {
	resp := &SuccessResponse{}
	resp.Body.Success = true

	return resp
}
