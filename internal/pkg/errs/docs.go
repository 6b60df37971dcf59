// Package errs holds the error taxonomy shared by every layer of the service.
//
// Input problems are reported as ValueIsRequiredError, ValueIsInvalidError or
// ValueIsOutOfRangeError. Lookups that miss return ObjectNotFoundError. Business
// rule violations (illegal status transitions, an order that already has a rider,
// an offline rider) are ConflictError values, and broken stored settings surface
// as ConfigurationError.
//
// Every type unwraps to a sentinel (ErrValueIsInvalid, ErrObjectNotFound,
// ErrConflict, ...) so transport adapters can classify errors with errors.Is
// without knowing the concrete rule that failed.
package errs
