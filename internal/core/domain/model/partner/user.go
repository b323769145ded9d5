package partner

import (
	"errors"
	"strings"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/pkg/errs"
	"deliverypartner/internal/pkg/guard"
)

var (
	ErrUserIDIsRequired     = errs.NewValueIsRequiredError("user id")
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser")
)

// User is the delivery partner as reported by the backend.
type User struct {
	id       string
	name     string
	email    string
	phone    string
	earnings kernel.Money

	guard guard.ConstructorGuard
}

// NewUser builds a user record. Only the identifier is required: the phone
// login stand-in produces users with nothing but a phone number as id.
func NewUser(id, name, email, phone string, earnings kernel.Money) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrUserIDIsRequired
	}

	return User{
		id:       id,
		name:     strings.TrimSpace(name),
		email:    strings.TrimSpace(email),
		phone:    strings.TrimSpace(phone),
		earnings: earnings,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (u User) Validate() error {
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u User) ID() string {
	return u.id
}

func (u User) Name() string {
	return u.name
}

// DisplayName falls back to email, then phone, when the backend sent no name.
func (u User) DisplayName() string {
	for _, v := range []string{u.name, u.email, u.phone} {
		if v != "" {
			return v
		}
	}
	return u.id
}

func (u User) Email() string {
	return u.email
}

func (u User) Phone() string {
	return u.phone
}

// Earnings is the lifetime earnings summary the backend keeps for the partner.
func (u User) Earnings() kernel.Money {
	return u.earnings
}
