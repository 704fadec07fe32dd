package parser

import "github.com/flatjson/flatjson/pkg/token"

// The cursor is a single read position over the token sequence with a
// lookahead and lookbehind of exactly one token. There is no random
// seek; callers walk forward with Advance and back with Retreat.

// HasPrev reports whether a token precedes the cursor.
func (p *Parser) HasPrev() bool {
	return p.counter > 0
}

// HasCurrent reports whether the cursor is on a token.
func (p *Parser) HasCurrent() bool {
	return p.counter >= 0 && p.counter <= p.count-1
}

// HasNext reports whether a token follows the cursor.
func (p *Parser) HasNext() bool {
	return p.counter < p.count-1
}

// Prev returns the token before the cursor, or nil.
func (p *Parser) Prev() *token.Token {
	if p.counter > 0 && p.counter <= p.count-1 {
		return &p.tokens[p.counter-1]
	}
	return nil
}

// Current returns the token under the cursor, or nil.
func (p *Parser) Current() *token.Token {
	if p.HasCurrent() {
		return &p.tokens[p.counter]
	}
	return nil
}

// Next returns the token after the cursor, or nil.
func (p *Parser) Next() *token.Token {
	if p.counter >= 0 && p.counter < p.count-1 {
		return &p.tokens[p.counter+1]
	}
	return nil
}

// PrevType returns the type of the token before the cursor.
func (p *Parser) PrevType() (token.Type, bool) {
	if t := p.Prev(); t != nil {
		return t.Type, true
	}
	return 0, false
}

// CurrentType returns the type of the token under the cursor.
func (p *Parser) CurrentType() (token.Type, bool) {
	if t := p.Current(); t != nil {
		return t.Type, true
	}
	return 0, false
}

// NextType returns the type of the token after the cursor.
func (p *Parser) NextType() (token.Type, bool) {
	if t := p.Next(); t != nil {
		return t.Type, true
	}
	return 0, false
}

// Equal reports whether the current token's source span matches s
// exactly, byte for byte.
func (p *Parser) Equal(s string) bool {
	t := p.Current()
	if t == nil {
		return false
	}
	return string(p.js[t.Start:t.End]) == s
}

// Text returns the current token's text as a subslice of the buffer
// given to Begin, without copying. The slice aliases the caller's
// buffer and is only valid while that buffer is.
func (p *Parser) Text() []byte {
	t := p.Current()
	if t == nil {
		return nil
	}
	return p.js[t.Start:t.End]
}

// Advance steps the cursor forward by one token.
func (p *Parser) Advance() {
	p.counter++
}

// Retreat steps the cursor back by one token.
func (p *Parser) Retreat() {
	p.counter--
}
