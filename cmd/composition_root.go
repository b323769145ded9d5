package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"deliverypartner/internal/adapters/in/cli"
	"deliverypartner/internal/adapters/out/backend"
	"deliverypartner/internal/adapters/out/sessionstore"
	"deliverypartner/internal/core/application/session"
	"deliverypartner/internal/core/application/usecases/commands"
	"deliverypartner/internal/core/application/usecases/queries"
	"deliverypartner/internal/core/domain/services"
	"deliverypartner/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// CompositionRoot wires the partner client: one session holder, one REST
// client, and the use cases on top of them.
type CompositionRoot struct {
	cfg    ClientConfig
	logger *slog.Logger

	store  ports.SessionStore
	closer io.Closer
	holder *session.Holder
	orders *backend.OrderGateway
	auth   *backend.AuthGateway
}

func NewCompositionRoot(ctx context.Context, cfg ClientConfig, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}

	if err := c.openSessionStore(); err != nil {
		return nil, err
	}
	c.holder = session.NewHolder(c.store, logger)

	client, err := backend.NewClient(ctx, backend.Config{
		BaseURL:           cfg.APIBaseURL,
		Timeout:           cfg.HTTPTimeout,
		ValidateResponses: cfg.ValidateResponses,
	}, c.holder, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.orders = backend.NewOrderGateway(client)
	c.auth = backend.NewAuthGateway(client)
	return c, nil
}

func (c *CompositionRoot) openSessionStore() error {
	if c.cfg.SessionRedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: c.cfg.SessionRedisAddr})
		c.store = sessionstore.NewRedisStore(client, sessionstore.DefaultRedisKey)
		c.closer = client
		return nil
	}

	store, err := sessionstore.OpenSQLite(c.cfg.SessionDBPath)
	if err != nil {
		return err
	}
	c.store = store
	c.closer = store
	return nil
}

// Init restores the persisted session.
func (c *CompositionRoot) Init(ctx context.Context) error {
	if err := c.holder.Init(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	return nil
}

func (c *CompositionRoot) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}

func (c *CompositionRoot) CreateSendOTPCommandHandler() *commands.SendOTPCommandHandler {
	return commands.NewSendOTPCommandHandler(c.auth, c.logger)
}

func (c *CompositionRoot) CreateVerifyOTPCommandHandler() *commands.VerifyOTPCommandHandler {
	return commands.NewVerifyOTPCommandHandler(c.auth, c.holder, c.logger)
}

func (c *CompositionRoot) CreatePasswordLoginCommandHandler() *commands.PasswordLoginCommandHandler {
	return commands.NewPasswordLoginCommandHandler(c.auth, c.holder, c.logger)
}

func (c *CompositionRoot) CreatePhoneLoginCommandHandler() *commands.PhoneLoginCommandHandler {
	return commands.NewPhoneLoginCommandHandler(c.holder, c.logger)
}

func (c *CompositionRoot) CreateLogoutCommandHandler() *commands.LogoutCommandHandler {
	return commands.NewLogoutCommandHandler(c.holder)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() *commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orders, c.logger)
}

func (c *CompositionRoot) CreateGetAssignedOrdersQueryHandler() queries.GetAssignedOrdersQueryHandler {
	return queries.NewGetAssignedOrdersQueryHandler(c.orders, c.holder, services.NewOrderBoard())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders)
}

func (c *CompositionRoot) CreateGetTodayEarningsQueryHandler() queries.GetTodayEarningsQueryHandler {
	return queries.NewGetTodayEarningsQueryHandler(c.orders, c.holder)
}

func (c *CompositionRoot) CreateGetDeliveryHistoryQueryHandler() queries.GetDeliveryHistoryQueryHandler {
	return queries.NewGetDeliveryHistoryQueryHandler(c.orders, c.holder)
}

func (c *CompositionRoot) CreateResolveScannedOrderQueryHandler() queries.ResolveScannedOrderQueryHandler {
	return queries.NewResolveScannedOrderQueryHandler(c.orders)
}

// CreateCLI builds the terminal front end over every handler.
func (c *CompositionRoot) CreateCLI(in io.Reader, out io.Writer) (*cli.App, error) {
	mode, err := cli.ParseAuthMode(c.cfg.AuthMode)
	if err != nil {
		return nil, err
	}

	handlers := cli.Handlers{
		SendOTP:        c.CreateSendOTPCommandHandler(),
		VerifyOTP:      c.CreateVerifyOTPCommandHandler(),
		PasswordLogin:  c.CreatePasswordLoginCommandHandler(),
		PhoneLogin:     c.CreatePhoneLoginCommandHandler(),
		Logout:         c.CreateLogoutCommandHandler(),
		UpdateStatus:   c.CreateUpdateOrderStatusCommandHandler(),
		AssignedOrders: c.CreateGetAssignedOrdersQueryHandler(),
		Order:          c.CreateGetOrderQueryHandler(),
		TodayEarnings:  c.CreateGetTodayEarningsQueryHandler(),
		History:        c.CreateGetDeliveryHistoryQueryHandler(),
		ScannedOrder:   c.CreateResolveScannedOrderQueryHandler(),
	}
	settings := cli.Settings{
		AuthMode:       mode,
		OTPLength:      c.cfg.OTPLength,
		CurrencySymbol: c.cfg.CurrencySymbol,
		Location:       time.Local,
	}
	return cli.NewApp(handlers, c.holder, settings, in, out, c.logger), nil
}
