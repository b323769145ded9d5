// Package kernel provides core domain primitives shared by the order and
// partner models.
//
// The package includes:
//   - Money: a non-negative monetary amount backed by github.com/shopspring/decimal
//   - Coordinates: a validated latitude/longitude pair with a directions link
//
// These primitives are immutable values. Amounts reported by the backend are
// carried as-is; the client never recomputes a monetary aggregate and sends it back.
package kernel
