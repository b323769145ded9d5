// Package sessionstore persists the single partner session slot.
//
// GormStore keeps the slot in a local SQLite file and is what the partner CLI
// uses. RedisStore keeps it under one key in Redis, for deployments where the
// client runs on ephemeral hosts.
package sessionstore

import (
	"time"

	"deliverypartner/internal/core/domain/model/kernel"
	"deliverypartner/internal/core/domain/model/partner"
)

// slotID is the primary key of the only row the session table ever holds.
const slotID = 1

// SessionDTO is the persisted form of partner.Session.
type SessionDTO struct {
	Slot      int        `gorm:"primaryKey;autoIncrement:false" json:"-"`
	UserID    string     `gorm:"not null"                       json:"user_id"`
	Name      string     `                                      json:"name,omitempty"`
	Email     string     `                                      json:"email,omitempty"`
	Phone     string     `                                      json:"phone,omitempty"`
	Earnings  string     `                                      json:"earnings,omitempty"`
	Token     string     `gorm:"not null"                       json:"token"`
	ExpiresAt *time.Time `                                      json:"expires_at,omitempty"`
	SavedAt   time.Time  `                                      json:"saved_at"`
}

func (SessionDTO) TableName() string {
	return "partner_session"
}

func fromDomain(s partner.Session, now time.Time) SessionDTO {
	u := s.User()
	dto := SessionDTO{
		Slot:     slotID,
		UserID:   u.ID(),
		Name:     u.Name(),
		Email:    u.Email(),
		Phone:    u.Phone(),
		Earnings: u.Earnings().Decimal().String(),
		Token:    s.Token(),
		SavedAt:  now.UTC(),
	}
	if exp, ok := s.ExpiresAt(); ok {
		e := exp.UTC()
		dto.ExpiresAt = &e
	}
	return dto
}

func toDomain(dto SessionDTO) (partner.Session, error) {
	earnings := kernel.ZeroMoney()
	if dto.Earnings != "" {
		m, err := kernel.MoneyFromString(dto.Earnings)
		if err != nil {
			return partner.Session{}, err
		}
		earnings = m
	}

	user, err := partner.NewUser(dto.UserID, dto.Name, dto.Email, dto.Phone, earnings)
	if err != nil {
		return partner.Session{}, err
	}
	return partner.NewSession(user, dto.Token, dto.ExpiresAt)
}
