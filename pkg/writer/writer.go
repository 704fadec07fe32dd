// Package writer emits well-formed JSON incrementally into a
// fixed-capacity buffer. A Writer is a push-down state machine over a
// bounded stack of open container frames: every value call checks that
// the kind of value fits the open container, places separators and
// indentation, and appends the text. Errors are sticky; after the
// first error every further value call is a safe no-op until a new
// Begin, so a broken session never produces a half-trusted document.
package writer

import (
	"sync"

	"github.com/flatjson/flatjson/pkg/token"
)

const (
	// DefaultBufSize is the output capacity used by NewWriter.
	DefaultBufSize = 65536
	// DefaultStackDepth is the container nesting limit used by NewWriter.
	DefaultStackDepth = 32

	// doublePrecision is the fractional digit count for AddDoubleTo*.
	doublePrecision = 6
)

// frame records one currently-open container: its type and how many
// members it has received so far (for comma placement).
type frame struct {
	nodeType token.Type
	elements int
}

// Writer is a write session. The zero value is not usable; construct
// with NewWriter or NewWriterSize. Like the parser, a session is
// guarded by one lock held from Begin to End, and every Begin must be
// paired with an End.
//
// String values are emitted verbatim between quotes; callers must
// pre-escape special characters.
type Writer struct {
	mu      sync.Mutex
	buf     []byte
	scratch []byte
	stack   []frame
	sp      int
	code    token.Code
	callNo  int
	failed  int
	pretty  bool
}

// NewWriter returns a writer with the default buffer and stack sizes.
func NewWriter() *Writer {
	return NewWriterSize(DefaultBufSize, DefaultStackDepth)
}

// NewWriterSize returns a writer with an output capacity of bufSize
// bytes and room for stackDepth nested containers (the root counts as
// one). All memory is allocated here; value calls never allocate.
func NewWriterSize(bufSize, stackDepth int) *Writer {
	if bufSize < 1 {
		bufSize = 1
	}
	if stackDepth < 1 {
		stackDepth = 1
	}
	return &Writer{
		buf:     make([]byte, 0, bufSize),
		scratch: make([]byte, 0, 32),
		stack:   make([]frame, stackDepth),
	}
}

// Begin locks the session, resets it and opens the root container.
// root must be token.Object or token.Array.
func (w *Writer) Begin(root token.Type, pretty bool) error {
	w.mu.Lock()
	w.buf = w.buf[:0]
	w.sp = 0
	w.code = token.OK
	w.callNo = 0
	w.failed = 0
	w.pretty = pretty

	switch root {
	case token.Object:
		w.stack[0] = frame{nodeType: token.Object}
		w.putch('{')
	case token.Array:
		w.stack[0] = frame{nodeType: token.Array}
		w.putch('[')
	default:
		w.code = token.ErrNotObject
	}
	return w.code.Err()
}

// End releases the session lock.
func (w *Writer) End() error {
	w.mu.Unlock()
	return nil
}

// Err returns the sticky session error, nil while the session is ok.
func (w *Writer) Err() error {
	return w.code.Err()
}

// Output returns the bytes written so far. The slice is owned by the
// writer and valid until the next Begin.
func (w *Writer) Output() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// FirstFailedCall returns the 1-based index of the value call that
// latched the session error, or 0 if no value call has failed.
func (w *Writer) FirstFailedCall() int {
	return w.failed
}

// fail latches the first error along with the failing call number.
func (w *Writer) fail(code token.Code) {
	if w.code != token.OK {
		return
	}
	w.code = code
	w.failed = w.callNo
}

// putch appends a single byte, latching ErrBufferFull and dropping the
// byte when the capacity is exhausted.
func (w *Writer) putch(c byte) {
	if len(w.buf) >= cap(w.buf) {
		w.fail(token.ErrBufferFull)
		return
	}
	w.buf = append(w.buf, c)
}

func (w *Writer) putraw(s string) {
	for i := 0; i < len(s); i++ {
		w.putch(s[i])
	}
}

func (w *Writer) putbytes(b []byte) {
	for _, c := range b {
		w.putch(c)
	}
}

func (w *Writer) putstr(s string) {
	w.putch('"')
	w.putraw(s)
	w.putch('"')
}

// indent emits the pretty-mode newline plus four spaces per open
// container. A no-op in compact mode.
func (w *Writer) indent() {
	if !w.pretty {
		return
	}
	w.putch('\n')
	for i := 0; i < w.sp+1; i++ {
		w.putraw("    ")
	}
}

// objectEntry opens one key/value member of the top object: sticky
// error gate, container check, separator, indentation, quoted key and
// colon. It reports whether the value may be emitted. Nothing is
// written when the entry is rejected.
func (w *Writer) objectEntry(key string) bool {
	if w.code != token.OK {
		return false
	}
	w.callNo++
	if w.stack[w.sp].nodeType != token.Object {
		w.fail(token.ErrNotObject)
		return false
	}
	if w.stack[w.sp].elements > 0 {
		w.putch(',')
	}
	w.stack[w.sp].elements++
	w.indent()
	w.putstr(key)
	w.putch(':')
	if w.pretty {
		w.putch(' ')
	}
	return true
}

// arrayEntry opens one element of the top array.
func (w *Writer) arrayEntry() bool {
	if w.code != token.OK {
		return false
	}
	w.callNo++
	if w.stack[w.sp].nodeType != token.Array {
		w.fail(token.ErrNotArray)
		return false
	}
	if w.stack[w.sp].elements > 0 {
		w.putch(',')
	}
	w.stack[w.sp].elements++
	w.indent()
	return true
}

func bracketOpen(t token.Type) byte {
	if t == token.Object {
		return '{'
	}
	return '['
}

func bracketClose(t token.Type) byte {
	if t == token.Object {
		return '}'
	}
	return ']'
}

// AddRawToObject writes key and the pre-formatted text raw verbatim.
func (w *Writer) AddRawToObject(key, raw string) error {
	if w.objectEntry(key) {
		w.putraw(raw)
	}
	return w.code.Err()
}

// AddStringToObject writes key and value as a quoted string.
func (w *Writer) AddStringToObject(key, value string) error {
	if w.objectEntry(key) {
		w.putstr(value)
	}
	return w.code.Err()
}

// AddIntegerToObject writes key and value as canonical decimal.
func (w *Writer) AddIntegerToObject(key string, value int) error {
	if w.objectEntry(key) {
		w.scratch = appendInt(w.scratch[:0], value)
		w.putbytes(w.scratch)
	}
	return w.code.Err()
}

// AddDoubleToObject writes key and value with six fractional digits,
// trailing zeros stripped.
func (w *Writer) AddDoubleToObject(key string, value float64) error {
	if w.objectEntry(key) {
		w.scratch = appendFixed(w.scratch[:0], value, doublePrecision)
		w.putbytes(w.scratch)
	}
	return w.code.Err()
}

// AddBooleanToObject writes key and true or false.
func (w *Writer) AddBooleanToObject(key string, value bool) error {
	if w.objectEntry(key) {
		if value {
			w.putraw("true")
		} else {
			w.putraw("false")
		}
	}
	return w.code.Err()
}

// AddNullToObject writes key and null.
func (w *Writer) AddNullToObject(key string) error {
	if w.objectEntry(key) {
		w.putraw("null")
	}
	return w.code.Err()
}

// AddObjectToObject opens a nested object under key.
func (w *Writer) AddObjectToObject(key string) error {
	return w.openToObject(key, token.Object)
}

// AddArrayToObject opens a nested array under key.
func (w *Writer) AddArrayToObject(key string) error {
	return w.openToObject(key, token.Array)
}

func (w *Writer) openToObject(key string, t token.Type) error {
	if w.code != token.OK {
		return w.code.Err()
	}
	// Check depth before writing anything so a rejected call leaves
	// the buffer untouched.
	if w.sp+1 >= len(w.stack) {
		w.callNo++
		w.fail(token.ErrStackFull)
		return w.code.Err()
	}
	if w.objectEntry(key) {
		w.putch(bracketOpen(t))
		w.sp++
		w.stack[w.sp] = frame{nodeType: t}
	}
	return w.code.Err()
}

// AddRawToArray writes the pre-formatted text raw verbatim.
func (w *Writer) AddRawToArray(raw string) error {
	if w.arrayEntry() {
		w.putraw(raw)
	}
	return w.code.Err()
}

// AddStringToArray writes value as a quoted string.
func (w *Writer) AddStringToArray(value string) error {
	if w.arrayEntry() {
		w.putstr(value)
	}
	return w.code.Err()
}

// AddIntegerToArray writes value as canonical decimal.
func (w *Writer) AddIntegerToArray(value int) error {
	if w.arrayEntry() {
		w.scratch = appendInt(w.scratch[:0], value)
		w.putbytes(w.scratch)
	}
	return w.code.Err()
}

// AddDoubleToArray writes value with six fractional digits, trailing
// zeros stripped.
func (w *Writer) AddDoubleToArray(value float64) error {
	if w.arrayEntry() {
		w.scratch = appendFixed(w.scratch[:0], value, doublePrecision)
		w.putbytes(w.scratch)
	}
	return w.code.Err()
}

// AddBooleanToArray writes true or false.
func (w *Writer) AddBooleanToArray(value bool) error {
	if w.arrayEntry() {
		if value {
			w.putraw("true")
		} else {
			w.putraw("false")
		}
	}
	return w.code.Err()
}

// AddNullToArray writes null.
func (w *Writer) AddNullToArray() error {
	if w.arrayEntry() {
		w.putraw("null")
	}
	return w.code.Err()
}

// AddObjectToArray opens a nested object as the next element.
func (w *Writer) AddObjectToArray() error {
	return w.openToArray(token.Object)
}

// AddArrayToArray opens a nested array as the next element.
func (w *Writer) AddArrayToArray() error {
	return w.openToArray(token.Array)
}

func (w *Writer) openToArray(t token.Type) error {
	if w.code != token.OK {
		return w.code.Err()
	}
	if w.sp+1 >= len(w.stack) {
		w.callNo++
		w.fail(token.ErrStackFull)
		return w.code.Err()
	}
	if w.arrayEntry() {
		w.putch(bracketOpen(t))
		w.sp++
		w.stack[w.sp] = frame{nodeType: t}
	}
	return w.code.Err()
}

// EndObject closes the innermost open container. The closing bracket
// follows the popped frame's own type, so EndObject and EndArray are
// interchangeable; call the matching one for clarity.
func (w *Writer) EndObject() error {
	return w.closeFrame()
}

// EndArray closes the innermost open container. See EndObject.
func (w *Writer) EndArray() error {
	return w.closeFrame()
}

func (w *Writer) closeFrame() error {
	if w.code != token.OK {
		return w.code.Err()
	}
	if w.sp == 0 {
		// Frame 0 belongs to EndDocument.
		w.fail(token.ErrStackEmpty)
		return w.code.Err()
	}
	f := w.stack[w.sp]
	w.sp--
	if f.elements > 0 {
		w.indent()
	}
	w.putch(bracketClose(f.nodeType))
	return w.code.Err()
}

// EndDocument closes the root container. It is only legal when every
// nested container has been closed; otherwise ErrUnclosed is latched.
func (w *Writer) EndDocument() error {
	if w.code != token.OK {
		return w.code.Err()
	}
	if w.sp != 0 {
		w.fail(token.ErrUnclosed)
		return w.code.Err()
	}
	if w.pretty {
		w.putch('\n')
	}
	w.putch(bracketClose(w.stack[0].nodeType))
	return w.code.Err()
}
