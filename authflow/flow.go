// Package authflow drives the multi-step verification sequences used
// for admin login and password recovery: mobile → otp → password
// (recovery only) → success. Each step is its own state type carrying
// exactly the data that step needs, so a step can never be reached
// without its inputs.
package authflow

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"kesharadmin/platform"

	"github.com/google/uuid"
)

// Kind separates the two flavors of the flow.
type Kind string

const (
	KindLogin    Kind = "login"
	KindRecovery Kind = "recovery"
)

// Step names the current position of a flow, for rendering.
type Step string

const (
	StepMobile   Step = "mobile"
	StepOTP      Step = "otp"
	StepPassword Step = "password"
	StepSuccess  Step = "success"
)

// State is one step of the flow. Variants:
// MobileState, OTPState, PasswordState, SuccessState.
type State interface {
	Step() Step
}

// MobileState collects the mobile number (and password, for login).
type MobileState struct{}

func (MobileState) Step() Step { return StepMobile }

// OTPState collects the 6-digit code sent to Mobile. DevOTP is the
// code echoed by non-production backends, kept so the caller can
// pre-fill the field.
type OTPState struct {
	Mobile string
	DevOTP string
}

func (OTPState) Step() Step { return StepOTP }

// PasswordState collects the replacement password for the verified
// mobile number. Recovery only.
type PasswordState struct {
	Mobile string
}

func (PasswordState) Step() Step { return StepPassword }

// SuccessState is terminal.
type SuccessState struct{}

func (SuccessState) Step() Step { return StepSuccess }

// PlatformAPI is the slice of the platform client the flows need.
type PlatformAPI interface {
	AdminLogin(ctx context.Context, mobile, password string) (*platform.LoginResult, error)
	AdminVerifyOTP(ctx context.Context, mobile string, otp int) (*platform.VerifiedSession, error)
	AdminResendOTP(ctx context.Context, mobile string) error
	ForgotPassword(ctx context.Context, mobile string) (*platform.LoginResult, error)
	ForgotVerifyOTP(ctx context.Context, mobile string, otp int) error
	ForgotResendOTP(ctx context.Context, mobile string) error
	ForgotSetPassword(ctx context.Context, mobile, password string) error
}

var (
	mobileRe = regexp.MustCompile(`^\d{10}$`)
	otpRe    = regexp.MustCompile(`^\d{6}$`)
)

// Flow is one in-progress verification sequence. All methods are safe
// for concurrent use; only one platform request may be outstanding at
// a time.
type Flow struct {
	ID   string
	Kind Kind

	api      PlatformAPI
	cooldown time.Duration

	mu           sync.Mutex
	busy         bool
	state        State
	blockedUntil *time.Time
	resendAfter  time.Time
	touchedAt    time.Time
}

// NewLogin starts a login flow at the mobile step.
func NewLogin(api PlatformAPI, cooldown time.Duration) *Flow {
	return newFlow(KindLogin, api, cooldown)
}

// NewRecovery starts a password-recovery flow at the mobile step.
func NewRecovery(api PlatformAPI, cooldown time.Duration) *Flow {
	return newFlow(KindRecovery, api, cooldown)
}

func newFlow(kind Kind, api PlatformAPI, cooldown time.Duration) *Flow {
	return &Flow{
		ID:        uuid.NewString(),
		Kind:      kind,
		api:       api,
		cooldown:  cooldown,
		state:     MobileState{},
		touchedAt: time.Now(),
	}
}

// State returns the current step variant.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// BlockedUntil reports the block window the platform imposed, if any.
func (f *Flow) BlockedUntil() *time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blockedUntil
}

// TouchedAt is the time of the last action, used by the sweeper.
func (f *Flow) TouchedAt() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touchedAt
}

// begin takes the busy flag and checks the flow is at the expected
// step. Callers must pair it with end.
func (f *Flow) begin(want Step) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return nil, ErrBusy
	}
	if f.blockedUntil != nil {
		return nil, &platform.BlockedError{Until: *f.blockedUntil}
	}
	if f.state.Step() != want {
		return nil, ErrWrongStep
	}
	f.busy = true
	f.touchedAt = time.Now()
	return f.state, nil
}

func (f *Flow) end() {
	f.mu.Lock()
	f.busy = false
	f.mu.Unlock()
}

// SubmitMobile validates and submits the credential step. For login
// the password must be non-empty; recovery takes the mobile only.
func (f *Flow) SubmitMobile(ctx context.Context, mobile, password string) error {
	if !mobileRe.MatchString(mobile) {
		return &ValidationError{Field: "mobile_no", Message: "Please enter a valid 10-digit mobile number"}
	}
	if f.Kind == KindLogin && len(password) == 0 {
		return &ValidationError{Field: "password", Message: "Please enter your password"}
	}

	if _, err := f.begin(StepMobile); err != nil {
		return err
	}
	defer f.end()

	var result *platform.LoginResult
	var err error
	if f.Kind == KindLogin {
		result, err = f.api.AdminLogin(ctx, mobile, password)
	} else {
		result, err = f.api.ForgotPassword(ctx, mobile)
	}
	if err != nil {
		f.recordBlock(err)
		return err
	}

	f.mu.Lock()
	f.state = OTPState{Mobile: mobile, DevOTP: result.DevOTP}
	f.resendAfter = time.Now().Add(f.cooldown)
	f.mu.Unlock()
	return nil
}

// SubmitOTP validates and submits the 6-digit code. On login success
// the verified session is returned for the caller to persist; on
// recovery success the flow advances to the password step.
func (f *Flow) SubmitOTP(ctx context.Context, otp string) (*platform.VerifiedSession, error) {
	if !otpRe.MatchString(otp) {
		return nil, &ValidationError{Field: "otp", Message: "Please enter the 6-digit code"}
	}

	state, err := f.begin(StepOTP)
	if err != nil {
		return nil, err
	}
	defer f.end()
	mobile := state.(OTPState).Mobile
	code := mustAtoi(otp)

	if f.Kind == KindLogin {
		session, err := f.api.AdminVerifyOTP(ctx, mobile, code)
		if err != nil {
			// A block during login verification disables submission
			// but keeps the entered mobile number.
			f.recordBlock(err)
			return nil, err
		}
		f.mu.Lock()
		f.state = SuccessState{}
		f.mu.Unlock()
		return session, nil
	}

	if err := f.api.ForgotVerifyOTP(ctx, mobile, code); err != nil {
		// A block during recovery verification discards the mobile
		// number entirely and returns to the first step. Asymmetric
		// with login on purpose; matches observed product behavior.
		var blocked *platform.BlockedError
		if errors.As(err, &blocked) {
			f.mu.Lock()
			f.blockedUntil = &blocked.Until
			f.state = MobileState{}
			f.mu.Unlock()
		}
		return nil, err
	}
	f.mu.Lock()
	f.state = PasswordState{Mobile: mobile}
	f.mu.Unlock()
	return nil, nil
}

// ResendOTP re-issues the code for the active mobile number and
// restarts the cooldown. Failures surface without changing step.
func (f *Flow) ResendOTP(ctx context.Context) error {
	state, err := f.begin(StepOTP)
	if err != nil {
		return err
	}
	defer f.end()

	// The busy flag is held, so no concurrent resend can race this
	// check and double-issue the code.
	f.mu.Lock()
	if time.Now().Before(f.resendAfter) {
		until := f.resendAfter
		f.mu.Unlock()
		return &CooldownError{Until: until}
	}
	f.mu.Unlock()

	mobile := state.(OTPState).Mobile
	if f.Kind == KindLogin {
		err = f.api.AdminResendOTP(ctx, mobile)
	} else {
		err = f.api.ForgotResendOTP(ctx, mobile)
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.resendAfter = time.Now().Add(f.cooldown)
	f.mu.Unlock()
	return nil
}

// SubmitPassword completes recovery with the replacement password.
func (f *Flow) SubmitPassword(ctx context.Context, newPassword, confirmPassword string) error {
	if f.Kind != KindRecovery {
		return ErrWrongStep
	}
	if len(newPassword) < 6 {
		return &ValidationError{Field: "password", Message: "Password must be at least 6 characters long"}
	}
	if newPassword != confirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}

	state, err := f.begin(StepPassword)
	if err != nil {
		return err
	}
	defer f.end()

	if err := f.api.ForgotSetPassword(ctx, state.(PasswordState).Mobile, newPassword); err != nil {
		return err
	}
	f.mu.Lock()
	f.state = SuccessState{}
	f.mu.Unlock()
	return nil
}

// Reset returns the flow to the mobile step and clears any block.
// This is the only way out of a blocked flow.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.state = MobileState{}
	f.blockedUntil = nil
	f.busy = false
	f.touchedAt = time.Now()
	f.mu.Unlock()
}

func (f *Flow) recordBlock(err error) {
	var blocked *platform.BlockedError
	if errors.As(err, &blocked) {
		f.mu.Lock()
		f.blockedUntil = &blocked.Until
		f.mu.Unlock()
	}
}

// mustAtoi: input is pre-validated as exactly six digits.
func mustAtoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
