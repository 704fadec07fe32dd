// Package parser turns a JSON text into a flat table of tokens without
// building a tree. The text is scanned exactly once, left to right;
// nesting is recorded as parent back-references into the table, so the
// structure can be reconstructed on demand by walking parent links.
// A Parser is a reusable session: Begin runs a tokenize pass over the
// caller's buffer and holds the session until End, and the cursor
// methods read the produced tokens one at a time.
package parser

import (
	"sync"

	"github.com/flatjson/flatjson/pkg/token"
)

// DefaultMaxTokens is the token table capacity used by NewParser.
const DefaultMaxTokens = 4096

// Parser is a parse session. It owns a fixed-capacity token table and
// a cursor over the tokens produced by the last Begin call. The zero
// value is not usable; construct with NewParser or NewParserSize.
//
// A session is guarded by one lock held from Begin to End, so a full
// parse-then-read pass is a single critical section. Every Begin must
// be paired with an End, including on error paths.
type Parser struct {
	mu      sync.Mutex
	js      []byte
	tokens  []token.Token
	counter int
	count   int
}

// NewParser returns a parser with the default token table capacity.
func NewParser() *Parser {
	return NewParserSize(DefaultMaxTokens)
}

// NewParserSize returns a parser whose token table holds up to
// maxTokens tokens. The table is allocated once; no allocation happens
// during parsing.
func NewParserSize(maxTokens int) *Parser {
	if maxTokens < 1 {
		maxTokens = 1
	}
	return &Parser{
		tokens: make([]token.Token, maxTokens),
	}
}

// Begin locks the session and tokenizes js. On error the token table
// contents are meaningless and Count reports zero, but the session
// stays locked; the caller must still call End.
//
// The returned tokens hold offsets into js, and Text returns
// subslices of it, so the buffer must stay alive (and unmodified)
// until the caller is done reading.
func (p *Parser) Begin(js []byte) error {
	p.mu.Lock()
	p.js = js
	p.counter = 0

	n, code := p.tokenize(js)
	if code != token.OK {
		p.count = 0
		return code
	}
	p.count = n
	return nil
}

// End releases the session lock.
func (p *Parser) End() error {
	p.mu.Unlock()
	return nil
}

// Count returns the number of tokens produced by the last Begin, zero
// after a failed parse.
func (p *Parser) Count() int {
	return p.count
}

// scan is the transient tokenize state: read position, next free table
// slot, and the "current superior" (the innermost still-open container,
// or the key string a value is about to attach to).
type scan struct {
	pos   int
	next  int
	super int
}

// alloc takes the next free slot from the table. It reports false when
// the table is exhausted.
func (s *scan) alloc(tokens []token.Token) (*token.Token, bool) {
	if s.next >= len(tokens) {
		return nil, false
	}
	t := &tokens[s.next]
	s.next++
	*t = token.Token{Start: token.None, End: token.None, Parent: token.None}
	return t, true
}

// tokenize runs the single forward pass over js. A NUL byte terminates
// the scan early, matching a null-terminated input buffer.
func (p *Parser) tokenize(js []byte) (int, token.Code) {
	tokens := p.tokens
	s := scan{super: token.None}

	for ; s.pos < len(js) && js[s.pos] != 0; s.pos++ {
		c := js[s.pos]
		switch c {
		case '{', '[':
			tok, ok := s.alloc(tokens)
			if !ok {
				return 0, token.ErrOutOfTokens
			}
			if s.super != token.None {
				tokens[s.super].Size++
				tok.Parent = s.super
			}
			if c == '{' {
				tok.Type = token.Object
			} else {
				tok.Type = token.Array
			}
			tok.Start = s.pos
			s.super = s.next - 1

		case '}', ']':
			want := token.Object
			if c == ']' {
				want = token.Array
			}
			if s.next < 1 {
				return 0, token.ErrInvalidChar
			}
			// Walk parent links from the most recent token until the
			// innermost open container. This tolerates a value token
			// (e.g. a string) being the latest allocation, so no
			// separate bracket stack is needed.
			i := s.next - 1
			for {
				t := &tokens[i]
				if t.Open() {
					if t.Type != want {
						return 0, token.ErrInvalidChar
					}
					t.End = s.pos + 1
					s.super = t.Parent
					break
				}
				if t.Parent == token.None {
					break
				}
				i = t.Parent
			}

		case '"':
			if code := s.scanString(js, tokens); code != token.OK {
				return 0, code
			}
			if s.super != token.None {
				tokens[s.super].Size++
			}

		case '\t', '\r', '\n', ' ':
			// whitespace

		case ':':
			// The just-parsed key string becomes the superior so the
			// following value attaches to it.
			s.super = s.next - 1

		case ',':
			if s.super != token.None &&
				tokens[s.super].Type != token.Array &&
				tokens[s.super].Type != token.Object {
				// After an object value the superior is the key string;
				// step back to the nearest still-open container.
				s.super = tokens[s.super].Parent
				for i := s.next - 1; i >= 0; i-- {
					t := &tokens[i]
					if t.IsContainer() && t.Open() {
						s.super = i
						break
					}
				}
			}

		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
			't', 'f', 'n':
			// Bare literals must not be object keys, and must not
			// follow a key that already has its value.
			if s.super != token.None {
				t := &tokens[s.super]
				if t.Type == token.Object ||
					(t.Type == token.String && t.Size != 0) {
					return 0, token.ErrInvalidChar
				}
			}
			if code := s.scanPrimitive(js, tokens); code != token.OK {
				return 0, code
			}
			if s.super != token.None {
				tokens[s.super].Size++
			}

		default:
			return 0, token.ErrInvalidChar
		}
	}

	for i := s.next - 1; i >= 0; i-- {
		if tokens[i].Open() {
			return 0, token.ErrIncomplete
		}
	}
	return s.next, token.OK
}

// scanString consumes a quoted string starting at the opening quote.
// The recorded span excludes the quotes. On error the position is
// rewound to the opening quote so the whole token reads as unparsed.
func (s *scan) scanString(js []byte, tokens []token.Token) token.Code {
	start := s.pos
	s.pos++

	for ; s.pos < len(js) && js[s.pos] != 0; s.pos++ {
		c := js[s.pos]

		if c == '"' {
			tok, ok := s.alloc(tokens)
			if !ok {
				s.pos = start
				return token.ErrOutOfTokens
			}
			tok.Type = token.String
			tok.Start = start + 1
			tok.End = s.pos
			tok.Parent = s.super
			return token.OK
		}

		if c == '\\' && s.pos+1 < len(js) {
			s.pos++
			switch js[s.pos] {
			case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
			case 'u':
				// Exactly four hex digits, case-insensitive.
				s.pos++
				for i := 0; i < 4 && s.pos < len(js) && js[s.pos] != 0; i++ {
					if !isHex(js[s.pos]) {
						s.pos = start
						return token.ErrInvalidChar
					}
					s.pos++
				}
				s.pos--
			default:
				s.pos = start
				return token.ErrInvalidChar
			}
		}
	}

	s.pos = start
	return token.ErrIncomplete
}

// scanPrimitive consumes a bare literal until a delimiter. The literal
// itself is not validated as a number or keyword; that is left to the
// consumer of the extracted text.
func (s *scan) scanPrimitive(js []byte, tokens []token.Token) token.Code {
	start := s.pos

loop:
	for ; s.pos < len(js) && js[s.pos] != 0; s.pos++ {
		switch js[s.pos] {
		case '\t', '\r', '\n', ' ', ',', ']', '}':
			break loop
		}
		if js[s.pos] < 32 || js[s.pos] >= 127 {
			s.pos = start
			return token.ErrInvalidChar
		}
	}

	tok, ok := s.alloc(tokens)
	if !ok {
		s.pos = start
		return token.ErrOutOfTokens
	}
	tok.Type = token.Primitive
	tok.Start = start
	tok.End = s.pos
	tok.Parent = s.super
	s.pos--
	return token.OK
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'F') ||
		(c >= 'a' && c <= 'f')
}
