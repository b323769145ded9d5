// Package workflow drives the two multi-step interactions of the partner
// client: updating an order's status and signing in with an emailed code.
//
// StatusUpdate moves through
//
//	Idle -> SelectingStatus -> [AwaitingPhoto] -> Submitting -> Idle
//
// where AwaitingPhoto is entered only for a "delivered" target. Cancelling the
// camera returns to Idle without any request. Submitting sends exactly one
// update and always ends in Idle; a second update for the same order is
// refused while the first is outstanding.
//
// LoginFlow is a two-step email then code exchange whose step counter only
// advances on success.
package workflow
