package codeplug

// Errors
var (
	ErrImageSize    = &Error{"image size matches no known layout"}
	ErrViolations   = &Error{"reference violations found, nothing written"}
	ErrUnknownType  = &Error{"unknown record type"}
	ErrTooManyRows  = &Error{"too many records"}
	ErrInvalidValue = &Error{"value does not fit its field"}
)

// Error represents a codeplug error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
