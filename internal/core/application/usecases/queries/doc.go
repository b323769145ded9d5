// Package queries contains the partner client's read operations. Each query
// issues at most one backend request and shapes the result for a view; none
// of them keeps state between calls.
package queries

import (
	"deliverypartner/internal/core/domain/model/partner"
)

// CurrentUser resolves the signed-in partner.
type CurrentUser interface {
	RequireUser() (partner.User, error)
}
