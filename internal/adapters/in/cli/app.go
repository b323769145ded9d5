// Package cli is the partner's terminal front end. Each subcommand maps onto
// one use case and renders its result as plain text.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/domain/model/partner"
	"deliverypartner/internal/core/ports"

	"github.com/spf13/pflag"
)

// ErrUsage is returned for unknown subcommands and bad flags.
var ErrUsage = errors.New("usage error")

// AuthMode selects how `login` signs the partner in.
type AuthMode string

const (
	AuthModeOTP      AuthMode = "otp"
	AuthModePassword AuthMode = "password"
	AuthModePhone    AuthMode = "phone"
)

// ParseAuthMode accepts an empty value as AuthModeOTP.
func ParseAuthMode(raw string) (AuthMode, error) {
	switch m := AuthMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return AuthModeOTP, nil
	case AuthModeOTP, AuthModePassword, AuthModePhone:
		return m, nil
	default:
		return "", fmt.Errorf("%w: unknown auth mode %q", ErrUsage, raw)
	}
}

type Settings struct {
	AuthMode       AuthMode
	OTPLength      int
	CurrencySymbol string
	// Location is used for delivery-date grouping and timestamps.
	Location *time.Location
}

// Handlers are the use cases the CLI drives.
type Handlers struct {
	SendOTP        *commands.SendOTPCommandHandler
	VerifyOTP      *commands.VerifyOTPCommandHandler
	PasswordLogin  *commands.PasswordLoginCommandHandler
	PhoneLogin     *commands.PhoneLoginCommandHandler
	Logout         *commands.LogoutCommandHandler
	UpdateStatus   *commands.UpdateOrderStatusCommandHandler
	AssignedOrders queries.GetAssignedOrdersQueryHandler
	Order          queries.GetOrderQueryHandler
	TodayEarnings  queries.GetTodayEarningsQueryHandler
	History        queries.GetDeliveryHistoryQueryHandler
	ScannedOrder   queries.ResolveScannedOrderQueryHandler
}

// SessionView exposes the signed-in session for `whoami`.
type SessionView interface {
	Current() (partner.Session, bool)
}

type App struct {
	handlers Handlers
	session  SessionView
	settings Settings
	camera   ports.PhotoCapturer
	logger   *slog.Logger
	now      func() time.Time

	in  *bufio.Reader
	out io.Writer
}

type subcommand struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

func NewApp(
	handlers Handlers,
	session SessionView,
	settings Settings,
	in io.Reader,
	out io.Writer,
	logger *slog.Logger,
) *App {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.OTPLength <= 0 {
		settings.OTPLength = commands.DefaultOTPLength
	}
	if settings.AuthMode == "" {
		settings.AuthMode = AuthModeOTP
	}

	a := &App{
		handlers: handlers,
		session:  session,
		settings: settings,
		logger:   logger.With("component", "cli"),
		now:      time.Now,
		in:       bufio.NewReader(in),
		out:      out,
	}
	a.camera = newPromptCapturer(a.in, a.out)
	return a
}

// WithClock replaces the clock used for "today".
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithCamera replaces the interactive photo prompt.
func (a *App) WithCamera(camera ports.PhotoCapturer) *App {
	a.camera = camera
	return a
}

func (a *App) subcommands() map[string]subcommand {
	return map[string]subcommand{
		"login":    {"sign in", a.login},
		"logout":   {"sign out and forget the session", a.logout},
		"whoami":   {"show the signed-in partner", a.whoami},
		"orders":   {"list assigned orders grouped by status", a.orders},
		"order":    {"show one order", a.order},
		"update":   {"change the status of an order", a.update},
		"earnings": {"show today's earnings", a.earnings},
		"history":  {"list delivered orders by delivery date", a.history},
		"scan":     {"open the order encoded in a QR payload", a.scan},
	}
}

// Run executes one subcommand.
func (a *App) Run(ctx context.Context, args []string) error {
	cmds := a.subcommands()

	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		a.usage(cmds)
		if len(args) == 0 {
			return ErrUsage
		}
		return nil
	}

	cmd, ok := cmds[args[0]]
	if !ok {
		a.usage(cmds)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	a.logger.DebugContext(ctx, "Running command", "command", args[0])
	if err := cmd.run(ctx, args[1:]); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return err
	}
	return nil
}

func (a *App) usage(cmds map[string]subcommand) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: partner <command> [flags]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-9s %s\n", name, cmds[name].summary)
	}
}

// newFlagSet builds a flag set that reports errors instead of exiting.
func (a *App) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.SortFlags = false
	return fs
}

func (a *App) parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// prompt writes label and reads one trimmed line. io.EOF is returned when
// input is exhausted.
func (a *App) prompt(label string) (string, error) {
	fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (a *App) money(m interface{ String() string }) string {
	return a.settings.CurrencySymbol + m.String()
}
