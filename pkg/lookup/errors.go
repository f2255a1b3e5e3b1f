package lookup

// Errors
var (
	ErrOverflow = &Error{"lookup table overflow"}
	ErrCapacity = &Error{"invalid lookup table capacity"}
)

// Error represents a lookup table error
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
