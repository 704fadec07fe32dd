package token

import "testing"

func TestCodeText(t *testing.T) {
	testCases := []struct {
		code Code
		want string
	}{
		{OK, "ok"},
		{ErrOutOfTokens, "not enough tokens were provided"},
		{ErrInvalidChar, "invalid character inside JSON text"},
		{ErrIncomplete, "text is not a full JSON document, more bytes expected"},
		{ErrBufferFull, "output buffer full"},
		{ErrNotArray, "tried to write array element into object"},
		{ErrNotObject, "tried to write object key/value into array"},
		{ErrStackFull, "array/object nesting exceeds stack depth"},
		{ErrStackEmpty, "stack underflow, too many end calls"},
		{ErrUnclosed, "not all containers closed at end of document"},
		{Code(-42), "unknown error"},
	}

	for _, tc := range testCases {
		if got := tc.code.Error(); got != tc.want {
			t.Errorf("Code(%d): expected %q, got %q", tc.code, tc.want, got)
		}
	}
}

func TestCodeErr(t *testing.T) {
	if err := OK.Err(); err != nil {
		t.Errorf("OK must map to nil, got %v", err)
	}
	if err := ErrInvalidChar.Err(); err != ErrInvalidChar {
		t.Errorf("expected the code itself, got %v", err)
	}
}

func TestTypeString(t *testing.T) {
	testCases := []struct {
		typ  Type
		want string
	}{
		{Primitive, "primitive"},
		{Object, "object"},
		{Array, "array"},
		{String, "string"},
		{Type(99), "unknown"},
	}

	for _, tc := range testCases {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("Type(%d): expected %q, got %q", tc.typ, tc.want, got)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	obj := Token{Type: Object, Start: 0, End: None, Parent: None}
	if !obj.IsContainer() {
		t.Error("object must be a container")
	}
	if !obj.Open() {
		t.Error("started token without an end must be open")
	}

	obj.End = 10
	if obj.Open() {
		t.Error("closed token must not be open")
	}

	str := Token{Type: String, Start: 1, End: 3, Parent: 0}
	if str.IsContainer() {
		t.Error("string must not be a container")
	}

	unstarted := Token{Type: Array, Start: None, End: None, Parent: None}
	if unstarted.Open() {
		t.Error("unstarted token must not be open")
	}
}
