package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/application/workflow"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/pkg/errs"
)

const (
	loginFailed    = "Login failed. Please try again."
	sendOTPFailed  = "Failed to send OTP. Please try again."
	verifyFailed   = "Invalid OTP. Please try again."
	resendKeyword  = "resend"
	backKeyword    = "back"
	signedInFormat = "Signed in as %s.\n"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.newFlagSet("login")
	mode := fs.String("mode", string(a.settings.AuthMode), "otp, password or phone")
	email := fs.String("email", "", "partner email (otp and password modes)")
	password := fs.String("password", "", "password (password mode)")
	phone := fs.String("phone", "", "10-digit phone number (phone mode)")
	otp := fs.String("otp", "", "one-time code; prompted for when omitted")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	m, err := ParseAuthMode(*mode)
	if err != nil {
		return err
	}

	var s partner.Session
	switch m {
	case AuthModePhone:
		s, err = a.phoneLogin(ctx, *phone, *otp)
	case AuthModePassword:
		s, err = a.passwordLogin(ctx, *email, *password)
	default:
		s, err = a.otpLogin(ctx, *email, *otp)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, signedInFormat, s.User().DisplayName())
	return nil
}

func (a *App) phoneLogin(ctx context.Context, phone, otp string) (partner.Session, error) {
	var err error
	if phone == "" {
		if phone, err = a.prompt("Phone number: "); err != nil {
			return partner.Session{}, err
		}
	}
	if otp == "" {
		if otp, err = a.prompt("Enter OTP: "); err != nil {
			return partner.Session{}, err
		}
	}

	cmd, err := commands.NewPhoneLoginCommand(phone, otp)
	if err != nil {
		return partner.Session{}, err
	}
	return a.handlers.PhoneLogin.Handle(ctx, cmd)
}

func (a *App) passwordLogin(ctx context.Context, email, password string) (partner.Session, error) {
	var err error
	if email == "" {
		if email, err = a.prompt("Email: "); err != nil {
			return partner.Session{}, err
		}
	}
	if password == "" {
		if password, err = a.prompt("Password: "); err != nil {
			return partner.Session{}, err
		}
	}

	cmd, err := commands.NewPasswordLoginCommand(email, password)
	if err != nil {
		return partner.Session{}, err
	}
	return a.handlers.PasswordLogin.Handle(ctx, cmd)
}

// otpLogin drives the two-step flow. A failed step prints the reason and asks
// again until input runs out; the step only advances on success.
func (a *App) otpLogin(ctx context.Context, email, otp string) (partner.Session, error) {
	flow := workflow.NewLoginFlow(a.handlers.SendOTP, a.handlers.VerifyOTP, a.settings.OTPLength)

	for {
		switch flow.Step() {
		case workflow.StepEmail:
			if email == "" {
				var err error
				if email, err = a.prompt("Email: "); err != nil {
					return partner.Session{}, a.inputEnded(err)
				}
			}
			if err := flow.SubmitEmail(ctx, email); err != nil {
				if !a.retryable(err, sendOTPFailed) {
					return partner.Session{}, err
				}
				email = ""
				continue
			}
			fmt.Fprintf(a.out, "OTP sent to %s.\n", flow.Email())

		case workflow.StepOTP:
			if otp == "" {
				var err error
				label := fmt.Sprintf("Enter the %d-digit OTP (%q to send again, %q to change email): ",
					flow.OTPLength(), resendKeyword, backKeyword)
				if otp, err = a.prompt(label); err != nil {
					return partner.Session{}, a.inputEnded(err)
				}
			}

			switch strings.ToLower(otp) {
			case resendKeyword:
				otp = ""
				if err := flow.Resend(ctx); err != nil && !a.retryable(err, sendOTPFailed) {
					return partner.Session{}, err
				}
				continue
			case backKeyword:
				otp, email = "", ""
				flow.Back()
				continue
			}

			s, err := flow.SubmitOTP(ctx, otp)
			if err != nil {
				if !a.retryable(err, verifyFailed) {
					return partner.Session{}, err
				}
				otp = ""
				continue
			}
			return s, nil

		default:
			return partner.Session{}, workflow.ErrWrongLoginStep
		}
	}
}

// retryable prints the partner-facing reason of a failed login step and
// reports whether asking again makes sense.
func (a *App) retryable(err error, fallback string) bool {
	switch {
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrRemoteRequest):
		fmt.Fprintln(a.out, errs.UserMessage(err, fallback))
		return true
	default:
		return false
	}
}

func (a *App) inputEnded(err error) error {
	if errors.Is(err, io.EOF) {
		return errors.New(loginFailed)
	}
	return err
}

func (a *App) logout(ctx context.Context, args []string) error {
	fs := a.newFlagSet("logout")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := a.handlers.Logout.Handle(ctx, commands.NewLogoutCommand()); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *App) whoami(_ context.Context, args []string) error {
	fs := a.newFlagSet("whoami")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	s, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}

	u := s.User()
	fmt.Fprintf(a.out, "Name:     %s\n", u.DisplayName())
	fmt.Fprintf(a.out, "ID:       %s\n", u.ID())
	if u.Email() != "" {
		fmt.Fprintf(a.out, "Email:    %s\n", u.Email())
	}
	if u.Phone() != "" {
		fmt.Fprintf(a.out, "Phone:    %s\n", u.Phone())
	}
	fmt.Fprintf(a.out, "Earnings: %s\n", a.money(u.Earnings()))
	if exp, ok := s.ExpiresAt(); ok {
		fmt.Fprintf(a.out, "Session:  expires %s\n", exp.In(a.settings.Location).Format(timestampLayout))
	} else {
		fmt.Fprintln(a.out, "Session:  no expiry")
	}
	return nil
}
