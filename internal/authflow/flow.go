// Package authflow drives the login, registration and password recovery
// flows against the gateway, multiplexing them over shared form buffers
// the way the original login screen does.
package authflow

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"clusterview/internal/domain/user"
)

// Admin credentials are matched locally and never leave the process.
// The pair is hardwired in the backend; see DESIGN.md before treating
// it as anything but a development shortcut.
const (
	adminEmail    = "Admin@gmail.com"
	adminPassword = "123"
)

// Mode is the form the flow currently presents.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
	ModeForgot
)

// Route is where a successful operation sends the user.
type Route int

const (
	RouteNone Route = iota
	RouteMain
	RouteAdmin
)

// Gateway is the slice of the HTTP client the flow needs.
type Gateway interface {
	Login(ctx context.Context, creds user.Credentials) error
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	Register(ctx context.Context, reg user.Registration) (string, error)
	RecoverPassword(ctx context.Context, rec user.Recovery) (string, error)
}

// SessionStore persists the credential pair between runs.
type SessionStore interface {
	Set(email, password string) error
	Clear() error
}

// Flow is the authentication state machine.
type Flow struct {
	gw       Gateway
	sessions SessionStore
	log      *slog.Logger

	mode Mode

	// registration survives the OTP exchange frozen so the verified
	// fields cannot drift before the completion call.
	registration user.Registration
	frozen       bool
	awaitingCode bool
}

func New(gw Gateway, sessions SessionStore, log *slog.Logger) *Flow {
	return &Flow{
		gw:       gw,
		sessions: sessions,
		log:      log.With(slog.String("component", "authflow")),
		mode:     ModeLogin,
	}
}

// Mode returns the active form.
func (f *Flow) Mode() Mode {
	return f.mode
}

// AwaitingCode reports whether registration is waiting on the one-time
// code, with its buffer frozen.
func (f *Flow) AwaitingCode() bool {
	return f.awaitingCode
}

// SwitchMode changes the active form. Switching away from registration
// abandons any pending code exchange.
func (f *Flow) SwitchMode(mode Mode) {
	if mode != ModeRegister {
		f.frozen = false
		f.awaitingCode = false
	}
	f.mode = mode
}

// Login authenticates the credential pair. The admin pair routes to the
// admin console without a request and without persisting a session;
// everyone else goes through the gateway, and success stores the pair
// for later runs.
func (f *Flow) Login(ctx context.Context, email, password string) (Route, error) {
	creds := user.Credentials{Email: email, Password: password}
	if err := user.ValidateLogin(creds); err != nil {
		return RouteNone, err
	}

	if email == adminEmail && password == adminPassword {
		f.log.Info("admin login, skipping gateway")
		return RouteAdmin, nil
	}

	if err := f.gw.Login(ctx, creds); err != nil {
		return RouteNone, err
	}

	if err := f.sessions.Set(email, password); err != nil {
		return RouteNone, fmt.Errorf("login succeeded but session was not saved: %w", err)
	}

	f.log.Info("login successful", slog.String("email", email))
	return RouteMain, nil
}

// SetRegistration replaces the registration buffer. Rejected while the
// buffer is frozen for a pending code exchange.
func (f *Flow) SetRegistration(reg user.Registration) error {
	if f.frozen {
		return fmt.Errorf("registration is locked until the code is verified or cancelled")
	}
	f.registration = reg
	return nil
}

// Registration returns the current buffer.
func (f *Flow) Registration() user.Registration {
	return f.registration
}

// RequestCode validates the registration buffer and asks the gateway to
// send a one-time code. Success freezes the buffer and enters code
// entry.
func (f *Flow) RequestCode(ctx context.Context) error {
	if err := user.ValidateRegistration(f.registration); err != nil {
		return err
	}

	if err := f.gw.SendOTP(ctx, f.registration.Email); err != nil {
		return err
	}

	f.frozen = true
	f.awaitingCode = true
	f.mode = ModeRegister
	f.log.Info("verification code sent", slog.String("email", f.registration.Email))
	return nil
}

// VerifyCode submits the received code and, on acceptance, immediately
// completes registration with the frozen buffer. The flow then unlocks
// and returns to login.
func (f *Flow) VerifyCode(ctx context.Context, code string) (string, error) {
	if !f.awaitingCode {
		return "", fmt.Errorf("no code was requested")
	}
	if err := user.ValidateOTP(code); err != nil {
		return "", err
	}

	if err := f.gw.VerifyOTP(ctx, f.registration.Email, code); err != nil {
		return "", err
	}

	message, err := f.gw.Register(ctx, f.registration)
	if err != nil {
		return "", err
	}

	f.log.Info("registration complete", slog.String("email", f.registration.Email))
	f.registration = user.Registration{}
	f.frozen = false
	f.awaitingCode = false
	f.mode = ModeLogin
	return message, nil
}

// CancelCode abandons a pending code exchange and unlocks the buffer.
func (f *Flow) CancelCode() {
	f.frozen = false
	f.awaitingCode = false
}

// Recover exchanges the recovery answer for the account password. The
// caller decides how much of the password to show; see DESIGN.md.
func (f *Flow) Recover(ctx context.Context, email, favoriteAnimal string) (string, error) {
	rec := user.Recovery{Email: email, FavoriteAnimal: favoriteAnimal}
	if err := user.ValidateRecovery(rec); err != nil {
		return "", err
	}

	password, err := f.gw.RecoverPassword(ctx, rec)
	if err != nil {
		return "", err
	}

	f.log.Info("password recovered", slog.String("email", email))
	return password, nil
}

// Logout clears the persisted session.
func (f *Flow) Logout() error {
	if err := f.sessions.Clear(); err != nil {
		return err
	}
	f.log.Info("session cleared")
	return nil
}

// MaskPassword renders a recovered password for display with all but
// the first and last characters hidden. Short passwords are fully
// masked.
func MaskPassword(password string) string {
	runes := []rune(password)
	if len(runes) <= 2 {
		return maskRunes(len(runes))
	}
	return string(runes[0]) + maskRunes(len(runes)-2) + string(runes[len(runes)-1])
}

func maskRunes(n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = '*'
	}
	return string(out)
}
