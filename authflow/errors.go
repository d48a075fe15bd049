package authflow

import (
	"errors"
	"fmt"
	"time"
)

// ValidationError rejects malformed input before any network call is
// made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ErrBusy means a request for this flow is already in flight. Flows
// allow a single outstanding request per step.
var ErrBusy = errors.New("a request is already in progress")

// ErrWrongStep means the submitted action does not match the flow's
// current step.
var ErrWrongStep = errors.New("action not valid for the current step")

// CooldownError rejects an OTP resend issued before the cooldown has
// elapsed.
type CooldownError struct {
	Until time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("resend available after %s", e.Until.Format(time.Kitchen))
}
