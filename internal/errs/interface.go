package errs

// ErrorHandler splits errors into public ones (returned to the client) and
// private ones (logged only).
type ErrorHandler interface {
	PublicError(statusCode int, err error)
	PrivateError(err error)
}
