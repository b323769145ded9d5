// Package partner models the signed-in delivery partner: the User record the
// backend returns at login and the single-slot Session the client persists.
package partner
