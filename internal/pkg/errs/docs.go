// Package errs provides the error taxonomy of the purchasing service.
//
// Every failure the domain or application layers produce is one of the typed errors
// declared here, and each of them unwraps to a sentinel:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: bad input
//   - ErrObjectNotFound: lookup by identifier found nothing
//   - ErrInvalidTransition: status change not allowed from the current status
//   - ErrVersionIsInvalid: write based on a stale record version
//   - ErrAccessDenied, ErrUnauthenticated: authorization failures
//   - ErrStorage (and ErrStorageConflict): persistence failures
//
// Validation errors are combined with errors.Join so one request can report every
// offending field at once. Fields extracts their parameter names for the HTTP layer,
// which maps sentinels to status codes in a single place.
package errs
