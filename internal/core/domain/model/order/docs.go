// Package order provides the client-side read model of a backend order and the
// pure functions the list, detail and history views run over it.
//
// The package includes:
//   - Order: an order as last reported by the backend, rebuilt with RestoreOrder
//   - Status: the fulfillment vocabulary, compared case-insensitively
//   - GroupByStatus / FilterByStatus: list view grouping and filtering
//   - GroupByDeliveryDate: delivery history grouping
//   - TodayWindow / SumDeliveredCharges: today's earnings
//
// Key business rules:
//   - The backend owns every order; monetary fields are never recomputed and sent back
//   - Any status may be requested, the backend accepts or rejects the transition
//   - Only a "delivered" target requires delivery proof before submission
//   - An absent delivery charge counts as zero
package order
