package tabular

// Errors
var (
	ErrUnexpectedQuote  = &Error{"unexpected quote in unquoted field"}
	ErrMissingLF        = &Error{"carriage return not followed by line feed"}
	ErrUnexpectedEOF    = &Error{"end of file inside quoted field"}
	ErrInvalidPostQuote = &Error{"unexpected character after closing quote"}
	ErrInvalidHeader    = &Error{"invalid CSV header"}
	ErrInvalidFormat    = &Error{"invalid CSV format"}
	ErrEmptyEOF         = &Error{"empty file"}
	ErrInvalidEnum      = &Error{"value is not among the enumerated values"}
)

// Error represents a tabular read or write error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
