package writer

import (
	"testing"

	"github.com/flatjson/flatjson/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCompactObject(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	assert.NoError(t, w.AddStringToObject("name", "ok"))
	assert.NoError(t, w.AddIntegerToObject("count", 3))
	assert.NoError(t, w.EndDocument())

	assert.Equal(t, `{"name":"ok","count":3}`, string(w.Output()))
	assert.Equal(t, 23, w.Len())
	assert.Equal(t, 0, w.FirstFailedCall())
}

func TestWriteAllValueKinds(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	assert.NoError(t, w.AddBooleanToObject("t", true))
	assert.NoError(t, w.AddBooleanToObject("f", false))
	assert.NoError(t, w.AddNullToObject("n"))
	assert.NoError(t, w.AddDoubleToObject("d", 2.5))
	assert.NoError(t, w.AddRawToObject("r", `[1,2]`))
	assert.NoError(t, w.EndDocument())

	assert.Equal(t, `{"t":true,"f":false,"n":null,"d":2.5,"r":[1,2]}`, string(w.Output()))
}

func TestWriteNestedCompact(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Array, false))
	defer w.End()

	assert.NoError(t, w.AddIntegerToArray(1))
	assert.NoError(t, w.AddObjectToArray())
	assert.NoError(t, w.AddBooleanToObject("b", true))
	assert.NoError(t, w.AddNullToObject("n"))
	assert.NoError(t, w.EndObject())
	assert.NoError(t, w.AddArrayToArray())
	assert.NoError(t, w.AddDoubleToArray(2.5))
	assert.NoError(t, w.EndArray())
	assert.NoError(t, w.EndDocument())

	assert.Equal(t, `[1,{"b":true,"n":null},[2.5]]`, string(w.Output()))
}

func TestWritePrettyObject(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, true))
	defer w.End()

	assert.NoError(t, w.AddStringToObject("name", "ok"))
	assert.NoError(t, w.AddIntegerToObject("count", 3))
	assert.NoError(t, w.EndDocument())

	want := "{\n    \"name\": \"ok\",\n    \"count\": 3\n}"
	assert.Equal(t, want, string(w.Output()))
}

func TestWritePrettyNested(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, true))
	defer w.End()

	assert.NoError(t, w.AddArrayToObject("xs"))
	assert.NoError(t, w.AddIntegerToArray(1))
	assert.NoError(t, w.AddIntegerToArray(2))
	assert.NoError(t, w.EndArray())
	assert.NoError(t, w.AddObjectToObject("o"))
	assert.NoError(t, w.EndObject())
	assert.NoError(t, w.EndDocument())

	want := "{\n" +
		"    \"xs\": [\n" +
		"        1,\n" +
		"        2\n" +
		"    ],\n" +
		"    \"o\": {}\n" +
		"}"
	assert.Equal(t, want, string(w.Output()))
}

func TestEndCallsAreInterchangeable(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	// The closing bracket follows the popped frame's own type.
	assert.NoError(t, w.AddArrayToObject("a"))
	assert.NoError(t, w.EndObject())
	assert.NoError(t, w.AddStringToObject("b", "c"))
	assert.NoError(t, w.EndDocument())

	assert.Equal(t, `{"a":[],"b":"c"}`, string(w.Output()))
}

func TestWrongContainerIsStickyNoOp(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	before := string(w.Output())
	err := w.AddStringToArray("x")
	assert.ErrorIs(t, err, token.ErrNotArray)

	// The failing call and everything after it leave the buffer alone.
	assert.Equal(t, before, string(w.Output()))
	assert.ErrorIs(t, w.AddStringToObject("name", "ok"), token.ErrNotArray)
	assert.ErrorIs(t, w.EndDocument(), token.ErrNotArray)
	assert.Equal(t, before, string(w.Output()))
	assert.Equal(t, 1, w.FirstFailedCall())
}

func TestObjectEntryIntoArray(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Array, false))
	defer w.End()

	assert.NoError(t, w.AddIntegerToArray(1))
	err := w.AddStringToObject("k", "v")
	assert.ErrorIs(t, err, token.ErrNotObject)
	assert.Equal(t, "[1", string(w.Output()))
	assert.Equal(t, 2, w.FirstFailedCall())
}

func TestNestingTooDeep(t *testing.T) {
	w := NewWriterSize(1024, 2)
	require.NoError(t, w.Begin(token.Array, false))
	defer w.End()

	assert.NoError(t, w.AddArrayToArray())
	err := w.AddArrayToArray()
	assert.ErrorIs(t, err, token.ErrStackFull)
	assert.Equal(t, "[[", string(w.Output()))
	assert.Equal(t, 2, w.FirstFailedCall())
}

func TestStackUnderflow(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	// Frame 0 is only closed by EndDocument.
	assert.ErrorIs(t, w.EndObject(), token.ErrStackEmpty)
	assert.Equal(t, "{", string(w.Output()))
}

func TestUnclosedAtDocumentEnd(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	assert.NoError(t, w.AddObjectToObject("a"))
	assert.ErrorIs(t, w.EndDocument(), token.ErrUnclosed)
}

func TestOutputBufferFull(t *testing.T) {
	w := NewWriterSize(4, DefaultStackDepth)
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	err := w.AddStringToObject("key", "value")
	assert.ErrorIs(t, err, token.ErrBufferFull)
	assert.Equal(t, `{"ke`, string(w.Output()))
	assert.Equal(t, 4, w.Len())

	// Still inert, still 4 bytes.
	assert.ErrorIs(t, w.AddIntegerToObject("n", 1), token.ErrBufferFull)
	assert.Equal(t, 4, w.Len())
}

func TestBadRootType(t *testing.T) {
	w := NewWriter()
	assert.ErrorIs(t, w.Begin(token.String, false), token.ErrNotObject)
	require.NoError(t, w.End())

	// The session is reusable after a fresh Begin.
	require.NoError(t, w.Begin(token.Array, false))
	defer w.End()
	assert.NoError(t, w.AddIntegerToArray(7))
	assert.NoError(t, w.EndDocument())
	assert.Equal(t, "[7]", string(w.Output()))
}

func TestFirstFailedCallCounting(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	defer w.End()

	assert.NoError(t, w.AddStringToObject("a", "1"))
	assert.NoError(t, w.AddStringToObject("b", "2"))
	assert.Error(t, w.AddNullToArray())
	assert.Equal(t, 3, w.FirstFailedCall())

	// Later failures do not move the marker.
	assert.Error(t, w.AddNullToArray())
	assert.Equal(t, 3, w.FirstFailedCall())
}

func TestSessionResetOnBegin(t *testing.T) {
	w := NewWriter()
	require.NoError(t, w.Begin(token.Object, false))
	assert.Error(t, w.AddNullToArray())
	require.NoError(t, w.End())

	require.NoError(t, w.Begin(token.Array, true))
	defer w.End()
	assert.NoError(t, w.Err())
	assert.Equal(t, 0, w.FirstFailedCall())
	assert.NoError(t, w.AddBooleanToArray(false))
	assert.NoError(t, w.EndDocument())
	assert.Equal(t, "[\n    false\n]", string(w.Output()))
}
