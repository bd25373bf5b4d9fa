package router

// ErrorKind classifies user-visible command failures.
type ErrorKind int

const (
	// KindValidation covers missing or malformed arguments, media, or
	// mentions. Always user-correctable, never logged as a failure.
	KindValidation ErrorKind = iota
	// KindAuth covers non-admin or non-group usage of privileged commands.
	KindAuth
	// KindConfig covers commands whose credential is not configured.
	KindConfig
)

// UserError is a command failure whose Reply text goes to the user verbatim.
// Handlers return it for the validation/auth/config error classes; every
// other error is surfaced as the generic failure message.
type UserError struct {
	Kind  ErrorKind
	Reply string
}

func (e *UserError) Error() string {
	return e.Reply
}

// Usage builds a validation error with an instructional reply.
func Usage(reply string) *UserError {
	return &UserError{Kind: KindValidation, Reply: reply}
}

// Denied builds an authorization error.
func Denied(reply string) *UserError {
	return &UserError{Kind: KindAuth, Reply: reply}
}

// NotConfigured builds a configuration error.
func NotConfigured(reply string) *UserError {
	return &UserError{Kind: KindConfig, Reply: reply}
}
