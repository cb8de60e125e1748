package apperror

// AppError is a domain failure that knows which HTTP status it maps to.
// Modules declare them as package-level sentinels and compare with errors.Is.
type AppError struct {
	Code    int    // HTTP status code
	Message string // message safe to show to clients
	Err     error  // underlying cause, never exposed
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the same sentinel, so that a wrapped copy
// produced by Wrap still matches the original with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap attaches a cause to a sentinel without changing how it is reported.
func Wrap(sentinel *AppError, err error) *AppError {
	return &AppError{
		Code:    sentinel.Code,
		Message: sentinel.Message,
		Err:     err,
	}
}
