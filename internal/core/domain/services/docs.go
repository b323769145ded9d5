// Package services provides domain services that work across many orders at
// once rather than on a single aggregate.
//
// The package includes:
//   - OrderBoard: the list view model (status filter, priority groups and counts)
package services
