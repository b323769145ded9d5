package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/domain/model/partner"
)

// LoginStep is the position in the email then code exchange.
type LoginStep int

const (
	StepEmail LoginStep = iota + 1
	StepOTP
	StepDone
)

func (s LoginStep) String() string {
	switch s {
	case StepEmail:
		return "email"
	case StepOTP:
		return "otp"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("LoginStep(%d)", int(s))
	}
}

var ErrWrongLoginStep = errors.New("login step not allowed now")

type OTPSender interface {
	Handle(ctx context.Context, cmd commands.SendOTPCommand) error
}

type OTPVerifier interface {
	Handle(ctx context.Context, cmd commands.VerifyOTPCommand) (partner.Session, error)
}

// LoginFlow tracks the two login steps. A failed step, whether rejected by
// validation or by the backend, leaves the step counter where it was.
type LoginFlow struct {
	sender    OTPSender
	verifier  OTPVerifier
	otpLength int

	mu    sync.Mutex
	step  LoginStep
	email string
}

func NewLoginFlow(sender OTPSender, verifier OTPVerifier, otpLength int) *LoginFlow {
	if otpLength <= 0 {
		otpLength = commands.DefaultOTPLength
	}
	return &LoginFlow{sender: sender, verifier: verifier, otpLength: otpLength, step: StepEmail}
}

func (f *LoginFlow) Step() LoginStep {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Email is the address the code was sent to, empty before step one succeeds.
func (f *LoginFlow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *LoginFlow) OTPLength() int {
	return f.otpLength
}

// SubmitEmail validates the address and requests a code.
func (f *LoginFlow) SubmitEmail(ctx context.Context, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepEmail {
		return fmt.Errorf("%w: at %s", ErrWrongLoginStep, f.step)
	}

	cmd, err := commands.NewSendOTPCommand(email)
	if err != nil {
		return err
	}
	if err = f.sender.Handle(ctx, cmd); err != nil {
		return err
	}

	f.email = cmd.Email()
	f.step = StepOTP
	return nil
}

// Resend requests another code for the address from step one.
func (f *LoginFlow) Resend(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepOTP {
		return fmt.Errorf("%w: at %s", ErrWrongLoginStep, f.step)
	}

	cmd, err := commands.NewSendOTPCommand(f.email)
	if err != nil {
		return err
	}
	return f.sender.Handle(ctx, cmd)
}

// SubmitOTP exchanges the code for a session.
func (f *LoginFlow) SubmitOTP(ctx context.Context, otp string) (partner.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepOTP {
		return partner.Session{}, fmt.Errorf("%w: at %s", ErrWrongLoginStep, f.step)
	}

	cmd, err := commands.NewVerifyOTPCommand(f.email, otp, f.otpLength)
	if err != nil {
		return partner.Session{}, err
	}

	s, err := f.verifier.Handle(ctx, cmd)
	if err != nil {
		return partner.Session{}, err
	}

	f.step = StepDone
	return s, nil
}

// Back returns from the code step to the email step.
func (f *LoginFlow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step == StepOTP {
		f.step = StepEmail
		f.email = ""
	}
}
