// Package errs provides standardized error types for the partner client.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the client's error taxonomy:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: validation
//     failures caught before any request is sent
//   - ObjectNotFoundError: the backend (or a local store) has no such object
//   - RemoteError: the backend answered with a non-2xx status, optionally carrying
//     a free-text message that is shown to the partner verbatim
//   - TransportError: the request never produced an HTTP response
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is support against the sentinel
package errs
