package token

// Code is the status vocabulary shared by the parser and the writer.
// It implements error so library APIs can return it directly; OK is
// mapped to a nil error by Err.
type Code int

const (
	// OK means the call succeeded.
	OK Code = 0
	// ErrOutOfTokens means the token table was exhausted during a parse.
	ErrOutOfTokens Code = -1
	// ErrInvalidChar means a malformed escape, control byte, stray
	// token or bracket-type mismatch was found.
	ErrInvalidChar Code = -2
	// ErrIncomplete means the text ended inside a string or with
	// containers still open; more bytes were expected.
	ErrIncomplete Code = -3
	// ErrBufferFull means the writer exceeded its output capacity.
	ErrBufferFull Code = -4
	// ErrNotArray means an array-style element was written while an
	// object was the open container.
	ErrNotArray Code = -5
	// ErrNotObject means an object-style key/value was written while
	// an array was the open container.
	ErrNotObject Code = -6
	// ErrStackFull means writer nesting exceeded the frame stack depth.
	ErrStackFull Code = -7
	// ErrStackEmpty means more end calls than open containers.
	ErrStackEmpty Code = -8
	// ErrUnclosed means the document was ended with containers open.
	ErrUnclosed Code = -9
)

// Error returns the human-readable text for the code.
func (c Code) Error() string {
	switch c {
	case OK:
		return "ok"
	case ErrOutOfTokens:
		return "not enough tokens were provided"
	case ErrInvalidChar:
		return "invalid character inside JSON text"
	case ErrIncomplete:
		return "text is not a full JSON document, more bytes expected"
	case ErrBufferFull:
		return "output buffer full"
	case ErrNotArray:
		return "tried to write array element into object"
	case ErrNotObject:
		return "tried to write object key/value into array"
	case ErrStackFull:
		return "array/object nesting exceeds stack depth"
	case ErrStackEmpty:
		return "stack underflow, too many end calls"
	case ErrUnclosed:
		return "not all containers closed at end of document"
	}
	return "unknown error"
}

// Err converts the code to an error value, mapping OK to nil.
func (c Code) Err() error {
	if c == OK {
		return nil
	}
	return c
}
