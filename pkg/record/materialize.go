package record

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
)

// Timestamp is the monotonic version marker attached to every stored row.
type Timestamp uint32

// VersionedRow pairs a materialized row with its version timestamp and
// tombstone flag. Produced only by FromRecordBatch.
type VersionedRow struct {
	Row       *Row
	Timestamp Timestamp
	Deleted   bool
}

// FromRecordBatch reconstructs the row at offset from a columnar batch.
//
// The batch's own schema may be column-pruned; fullSchema is the unpruned
// logical schema carrying the primary_key_index metadata. mask decides which
// leaves are materialized, using the full schema's leaf numbering.
//
// Fields of the full schema absent from the batch materialize as typed
// nulls without touching storage. The primary-key column is read
// unconditionally, ignoring both the null bit and the mask. Every other
// column is present only when physically non-null and included by the mask;
// "stored null" and "not included" collapse to the same empty state.
//
// FromRecordBatch only reads its inputs; materializing many rows from one
// batch concurrently is safe.
func FromRecordBatch(batch arrow.Record, offset int, mask *ProjectionMask, fullSchema *arrow.Schema) *VersionedRow {
	if offset < 0 || int64(offset) >= batch.NumRows() {
		fatalf("row offset %d out of range for batch of %d rows", offset, batch.NumRows())
	}

	deleted := columnAs[*array.Boolean](batch.Column(0), "_null").Value(offset)
	ts := columnAs[*array.Uint32](batch.Column(1), "ts").Value(offset)
	primaryIndex := primaryKeyIndex(fullSchema)

	fullFields := flattenFields(fullSchema)
	batchFields := flattenFields(batch.Schema())

	columns := make([]Value, 0, len(fullFields)-userColumnOffset)
	for idx := userColumnOffset; idx < len(fullFields); idx++ {
		field := fullFields[idx]
		datatype := DataTypeOf(field.Type)

		pos := -1
		for j := range batchFields {
			if fieldContains(field, batchFields[j]) {
				pos = j
				break
			}
		}
		if pos < 0 {
			// The physical batch omitted this column entirely; never
			// attempt to read data for it.
			columns = append(columns, NewNullValue(datatype, field.Name, field.Nullable))
			continue
		}

		col := batch.Column(pos)
		primary := primaryIndex == idx-userColumnOffset

		var v interface{}
		switch datatype {
		case UInt8:
			v = leafValue[uint8](columnAs[*array.Uint8](col, field.Name), offset, idx, mask, primary)
		case UInt16:
			v = leafValue[uint16](columnAs[*array.Uint16](col, field.Name), offset, idx, mask, primary)
		case UInt32:
			v = leafValue[uint32](columnAs[*array.Uint32](col, field.Name), offset, idx, mask, primary)
		case UInt64:
			v = leafValue[uint64](columnAs[*array.Uint64](col, field.Name), offset, idx, mask, primary)
		case Int8:
			v = leafValue[int8](columnAs[*array.Int8](col, field.Name), offset, idx, mask, primary)
		case Int16:
			v = leafValue[int16](columnAs[*array.Int16](col, field.Name), offset, idx, mask, primary)
		case Int32:
			v = leafValue[int32](columnAs[*array.Int32](col, field.Name), offset, idx, mask, primary)
		case Int64:
			v = leafValue[int64](columnAs[*array.Int64](col, field.Name), offset, idx, mask, primary)
		case Float32:
			v = leafValue[float32](columnAs[*array.Float32](col, field.Name), offset, idx, mask, primary)
		case Float64:
			v = leafValue[float64](columnAs[*array.Float64](col, field.Name), offset, idx, mask, primary)
		case Boolean:
			v = leafValue[bool](columnAs[*array.Boolean](col, field.Name), offset, idx, mask, primary)
		case String:
			v = leafValue[string](columnAs[*array.String](col, field.Name), offset, idx, mask, primary)
		case Bytes:
			v = leafValue[[]byte](columnAs[*array.Binary](col, field.Name), offset, idx, mask, primary)
		}

		if primary {
			columns = append(columns, NewKeyValue(datatype, field.Name, v))
		} else {
			columns = append(columns, NewValue(datatype, field.Name, v, field.Nullable))
		}
	}

	return &VersionedRow{
		Row:       NewRow(columns, primaryIndex),
		Timestamp: Timestamp(ts),
		Deleted:   deleted,
	}
}

// leafArray is the per-type read surface of an Arrow column: a typed value
// accessor plus the per-row null check.
type leafArray[T any] interface {
	Value(i int) T
	IsNull(i int) bool
}

// leafValue applies the one extraction rule shared by all twelve kinds: the
// primary key is read unconditionally and stored bare; any other value is
// present only when physically non-null and included by the mask.
func leafValue[T any, A leafArray[T]](col A, offset, idx int, mask *ProjectionMask, primary bool) interface{} {
	if primary {
		return col.Value(offset)
	}
	if !col.IsNull(offset) && mask.LeafIncluded(idx) {
		return col.Value(offset)
	}
	return nil
}

// columnAs asserts the physical column type declared by the schema. A
// mismatch means a corrupted schema/batch pairing that upstream components
// must have prevented.
func columnAs[A arrow.Array](col arrow.Array, name string) A {
	a, ok := col.(A)
	if !ok {
		fatalf("column %q: physical column type %T does not match declared tag", name, col)
	}
	return a
}
