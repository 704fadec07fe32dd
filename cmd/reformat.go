package main

import (
	"fmt"

	"github.com/flatjson/flatjson/pkg/parser"
	"github.com/flatjson/flatjson/pkg/token"
	"github.com/flatjson/flatjson/pkg/writer"
)

// reformat walks the parsed token table from the parser's cursor and
// rebuilds the document through the writer. The parser session must be
// positioned at the root token; the writer session must not be begun.
// Both sessions are begun/ended here except the parser's, which the
// caller owns.
func reformat(p *parser.Parser, w *writer.Writer, pretty bool) error {
	root := p.Current()
	if root == nil {
		return fmt.Errorf("empty document: %w", token.ErrIncomplete)
	}
	if !root.IsContainer() {
		return fmt.Errorf("document root is a %s, not an object or array", root.Type)
	}

	if err := w.Begin(root.Type, pretty); err != nil {
		_ = w.End()
		return err
	}
	defer func() { _ = w.End() }()

	p.Advance()
	if err := copyChildren(p, w, root); err != nil {
		return err
	}
	return w.EndDocument()
}

// copyChildren emits the members of container c, consuming their
// tokens from the cursor. Object children arrive as key strings each
// owning one value token; array children are plain values.
func copyChildren(p *parser.Parser, w *writer.Writer, c *token.Token) error {
	if c.Type == token.Object {
		for i := 0; i < c.Size; i++ {
			key := p.Current()
			if key == nil || key.Type != token.String {
				return fmt.Errorf("object member %d has no key: %w", i, token.ErrInvalidChar)
			}
			name := string(p.Text())
			p.Advance()
			if err := copyValueToObject(p, w, name); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < c.Size; i++ {
		if err := copyValueToArray(p, w); err != nil {
			return err
		}
	}
	return nil
}

func copyValueToObject(p *parser.Parser, w *writer.Writer, key string) error {
	t := p.Current()
	if t == nil {
		return fmt.Errorf("missing value for key %q: %w", key, token.ErrIncomplete)
	}
	switch t.Type {
	case token.String:
		err := w.AddStringToObject(key, string(p.Text()))
		p.Advance()
		return err
	case token.Primitive:
		err := w.AddRawToObject(key, string(p.Text()))
		p.Advance()
		return err
	case token.Object:
		if err := w.AddObjectToObject(key); err != nil {
			return err
		}
		p.Advance()
		if err := copyChildren(p, w, t); err != nil {
			return err
		}
		return w.EndObject()
	case token.Array:
		if err := w.AddArrayToObject(key); err != nil {
			return err
		}
		p.Advance()
		if err := copyChildren(p, w, t); err != nil {
			return err
		}
		return w.EndArray()
	}
	return nil
}

func copyValueToArray(p *parser.Parser, w *writer.Writer) error {
	t := p.Current()
	if t == nil {
		return fmt.Errorf("missing array element: %w", token.ErrIncomplete)
	}
	switch t.Type {
	case token.String:
		err := w.AddStringToArray(string(p.Text()))
		p.Advance()
		return err
	case token.Primitive:
		err := w.AddRawToArray(string(p.Text()))
		p.Advance()
		return err
	case token.Object:
		if err := w.AddObjectToArray(); err != nil {
			return err
		}
		p.Advance()
		if err := copyChildren(p, w, t); err != nil {
			return err
		}
		return w.EndObject()
	case token.Array:
		if err := w.AddArrayToArray(); err != nil {
			return err
		}
		p.Advance()
		if err := copyChildren(p, w, t); err != nil {
			return err
		}
		return w.EndArray()
	}
	return nil
}
