package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/pkg/vireoerrors"
)

func allKindsRow() *Row {
	return NewRow([]Value{
		NewKeyValue(UInt64, "id", uint64(42)),
		NewValue(UInt8, "u8", uint8(8), false),
		NewValue(UInt16, "u16", uint16(16), false),
		NewValue(UInt32, "u32", uint32(32), false),
		NewValue(Int8, "i8", int8(-8), false),
		NewValue(Int16, "i16", int16(-16), false),
		NewValue(Int32, "i32", int32(-32), false),
		NewValue(Int64, "i64", int64(-64), false),
		NewValue(Float32, "f32", float32(1.5), false),
		NewValue(Float64, "f64", 2.25, false),
		NewValue(Boolean, "flag", true, false),
		NewValue(String, "name", "Jack", false),
		NewValue(Bytes, "blob", []byte{0xde, 0xad, 0xbe, 0xef}, true),
		NewValue(String, "email", nil, true),
	}, 0)
}

func assertRowsEqual(t *testing.T, want, got *Row) {
	t.Helper()
	require.Equal(t, want.NumColumns(), got.NumColumns())
	assert.Equal(t, want.PrimaryIndex(), got.PrimaryIndex())
	for i := 0; i < want.NumColumns(); i++ {
		w, g := want.Column(i), got.Column(i)
		assert.Equal(t, w.Datatype(), g.Datatype(), "column %d datatype", i)
		assert.Equal(t, w.Name(), g.Name(), "column %d name", i)
		assert.Equal(t, w.Nullable(), g.Nullable(), "column %d nullable", i)
		assert.Equal(t, w.Any(), g.Any(), "column %d value", i)
	}
}

func TestRowRoundTrip(t *testing.T) {
	row := allKindsRow()

	var buf bytes.Buffer
	require.NoError(t, row.Encode(&buf))

	decoded, err := DecodeRow(&buf)
	require.NoError(t, err)
	assertRowsEqual(t, row, decoded)
}

func TestRowRoundTripProjected(t *testing.T) {
	// Projection can null a non-nullable column; the encoded form must
	// still round-trip.
	row := allKindsRow()
	row.Project(ProjectLeaves())

	var buf bytes.Buffer
	require.NoError(t, row.Encode(&buf))

	decoded, err := DecodeRow(&buf)
	require.NoError(t, err)
	assertRowsEqual(t, row, decoded)
	assert.True(t, decoded.Column(1).IsNull())
	assert.Equal(t, uint64(42), decoded.Key().Any())
}

func TestRowSizeMatchesEncodedLength(t *testing.T) {
	rows := []*Row{
		allKindsRow(),
		NewRow([]Value{NewKeyValue(String, "id", "abcd")}, 0),
		NewRow([]Value{
			NewKeyValue(Int32, "id", int32(1)),
			NewValue(Bytes, "data", nil, true),
		}, 0),
	}
	for _, row := range rows {
		var buf bytes.Buffer
		require.NoError(t, row.Encode(&buf))
		assert.Equal(t, row.Size(), buf.Len())
	}
}

func TestRowEncodeDeterministic(t *testing.T) {
	row := allKindsRow()

	var first, second bytes.Buffer
	require.NoError(t, row.Encode(&first))
	require.NoError(t, row.Encode(&second))
	assert.Equal(t, first.Bytes(), second.Bytes())
}

// failWriter fails every write after the first limit bytes.
type failWriter struct {
	limit   int
	written int
}

func (w *failWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.limit {
		return 0, errors.New("sink full")
	}
	w.written += len(p)
	return len(p), nil
}

func TestRowEncodeSinkFailure(t *testing.T) {
	row := allKindsRow()

	for _, limit := range []int{0, 4, headerSize, headerSize + 3, row.Size() - 1} {
		err := row.Encode(&failWriter{limit: limit})
		require.Error(t, err, "limit %d", limit)
		assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeEncode), "limit %d", limit)
	}
}

func TestDecodeRowTruncated(t *testing.T) {
	row := allKindsRow()
	var buf bytes.Buffer
	require.NoError(t, row.Encode(&buf))
	encoded := buf.Bytes()

	for _, n := range []int{0, 2, headerSize, headerSize + 1, len(encoded) - 1} {
		_, err := DecodeRow(bytes.NewReader(encoded[:n]))
		require.Error(t, err, "prefix %d", n)
		assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeDecode), "prefix %d", n)
	}
}

func TestDecodeRowUnknownTypeTag(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0, 0, 0}) // one column
	buf.Write([]byte{0, 0, 0, 0}) // primary index 0
	buf.WriteByte(0xff)           // invalid tag

	_, err := DecodeRow(&buf)
	require.Error(t, err)
	assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeCorruption))
}

func TestDecodeRowPrimaryIndexOutOfRange(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0, 0, 0}) // one column
	buf.Write([]byte{7, 0, 0, 0}) // primary index 7

	_, err := DecodeRow(&buf)
	require.Error(t, err)
	assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeCorruption))
}
