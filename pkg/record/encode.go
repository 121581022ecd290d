package record

import (
	"encoding/binary"
	"io"

	"github.com/vireodb/vireo/pkg/vireoerrors"
)

// Log layout, little-endian:
//
//	[column_count:u32][primary_index:u32]
//	per column:
//	  [tag:u8][name_len:u32][name][nullable:u8]
//	  primary column:      [value]
//	  any other column:    [present:u8][value if present]
//	value:
//	  fixed-width kinds at native width, String/Bytes as [len:u32][raw]
//
// Every non-primary column carries a presence flag regardless of declared
// nullability, because projection can empty a non-nullable column and the
// encoded form must round-trip any row the engine can hold.
const headerSize = 2 * 4

// Size returns the exact number of bytes Encode will produce, so callers
// can pre-size buffers and frame log entries.
func (r *Row) Size() int {
	size := headerSize
	for i := range r.columns {
		size += r.columns[i].encodedSize(i == r.primaryIndex)
	}
	return size
}

// Encode writes the row to w. Output is deterministic: encoding the same
// row twice produces byte-identical streams (required for log replay).
// A sink failure is reported as an encode error wrapping the sink's own
// error; callers must treat any failure as "nothing durable was written".
func (r *Row) Encode(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.columns))); err != nil {
		return vireoerrors.Wrap(err, vireoerrors.ErrorTypeEncode, "write column count")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(r.primaryIndex)); err != nil {
		return vireoerrors.Wrap(err, vireoerrors.ErrorTypeEncode, "write primary index")
	}
	for i := range r.columns {
		if err := r.columns[i].encode(w, i == r.primaryIndex); err != nil {
			return err
		}
	}
	return nil
}

func (v Value) encodedSize(primary bool) int {
	size := 1 + 4 + len(v.name) + 1 // tag, name length, name, nullable flag
	if !primary {
		size++ // presence flag
	}
	p := v.payload
	if !p.present {
		return size
	}
	switch v.datatype {
	case String:
		return size + 4 + len(p.str)
	case Bytes:
		return size + 4 + len(p.raw)
	default:
		return size + v.datatype.fixedWidth()
	}
}

func (v Value) encode(w io.Writer, primary bool) error {
	if err := binary.Write(w, binary.LittleEndian, uint8(v.datatype)); err != nil {
		return v.encodeErr(err, "write type tag")
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(v.name))); err != nil {
		return v.encodeErr(err, "write name length")
	}
	if _, err := io.WriteString(w, v.name); err != nil {
		return v.encodeErr(err, "write name")
	}
	if err := binary.Write(w, binary.LittleEndian, v.nullable); err != nil {
		return v.encodeErr(err, "write nullable flag")
	}

	p := v.payload
	if !primary {
		if err := binary.Write(w, binary.LittleEndian, p.present); err != nil {
			return v.encodeErr(err, "write presence flag")
		}
	}
	if !p.present {
		return nil
	}

	var err error
	switch v.datatype {
	case UInt8, Int8:
		err = binary.Write(w, binary.LittleEndian, uint8(p.bits))
	case UInt16, Int16:
		err = binary.Write(w, binary.LittleEndian, uint16(p.bits))
	case UInt32, Int32, Float32:
		err = binary.Write(w, binary.LittleEndian, uint32(p.bits))
	case UInt64, Int64, Float64:
		err = binary.Write(w, binary.LittleEndian, p.bits)
	case Boolean:
		err = binary.Write(w, binary.LittleEndian, p.bits != 0)
	case String:
		if err = binary.Write(w, binary.LittleEndian, uint32(len(p.str))); err == nil {
			_, err = io.WriteString(w, p.str)
		}
	case Bytes:
		if err = binary.Write(w, binary.LittleEndian, uint32(len(p.raw))); err == nil {
			_, err = w.Write(p.raw)
		}
	}
	if err != nil {
		return v.encodeErr(err, "write payload")
	}
	return nil
}

func (v Value) encodeErr(err error, msg string) error {
	return vireoerrors.Wrap(err, vireoerrors.ErrorTypeEncode, msg).
		WithDetail("column", v.name)
}
