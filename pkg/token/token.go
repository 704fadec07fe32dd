// Package token is the shared vocabulary of the flatjson parser and
// writer: the token record produced by tokenizing, the value type tags
// both halves agree on, and the integer error codes.
package token

// Type tags a token (or a writer frame) with its JSON kind.
type Type int

const (
	// Primitive covers bare literals: numbers, true, false, null.
	Primitive Type = iota
	// Object represents '{' ... '}'.
	Object
	// Array represents '[' ... ']'.
	Array
	// String is a double-quoted string literal.
	String
)

func (t Type) String() string {
	switch t {
	case Primitive:
		return "primitive"
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	}
	return "unknown"
}

// None marks an unset offset or a missing parent link.
const None = -1

// Token describes one syntactic unit by its source offsets. Start and
// End are byte offsets into the original text; End is exclusive, and
// for strings both offsets exclude the surrounding quotes. Size counts
// immediate children (pairs for objects, elements for arrays). Parent
// is the index of the enclosing container token, or None for the root.
type Token struct {
	Type   Type
	Start  int
	End    int
	Size   int
	Parent int
}

// IsContainer reports whether the token can own children.
func (t *Token) IsContainer() bool {
	return t.Type == Object || t.Type == Array
}

// Open reports whether the token has been started but not yet closed.
// After a full scan an open token means the input was truncated.
func (t *Token) Open() bool {
	return t.Start != None && t.End == None
}
