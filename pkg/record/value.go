package record

import (
	"math"
)

// Value is a named, nullable, type-tagged column value. The payload sits
// behind a shared immutable handle so cloning a row is cheap and replacing a
// payload never races with readers of the original.
//
// A payload is either bare (the primary-key column, never null) or optional
// (every other column). The tag and name never change after construction;
// only the projection applier replaces a payload, and only with the null
// sentinel of the declared tag.
//
// Construction trusts the caller to pass a value matching the tag. This is
// an unchecked internal contract between this type and its producers, not a
// public safety boundary: a mismatch is a programming error and panics.
type Value struct {
	datatype DataType
	name     string
	nullable bool
	payload  *payload
}

// payload is the type-erased storage behind a Value. It is immutable after
// construction; replacement installs a new handle. Fixed-width kinds live in
// bits (floats as IEEE-754 bit patterns), text in str, raw bytes in raw.
type payload struct {
	bare    bool
	present bool
	bits    uint64
	str     string
	raw     []byte
}

// nullPayload is the shared empty optional payload. The "typed" aspect of
// the null sentinel lives in Value.datatype, which never changes.
var nullPayload = &payload{}

// NewValue creates an optional column value. A nil v produces the null
// payload. Otherwise v must be the Go value matching dt (uint8 for UInt8,
// ... string for String, []byte for Bytes).
func NewValue(dt DataType, name string, v interface{}, nullable bool) Value {
	return Value{
		datatype: dt,
		name:     name,
		nullable: nullable,
		payload:  newPayload(dt, v, false),
	}
}

// NewKeyValue creates the bare value of a primary-key column. Primary keys
// are never null; v must not be nil.
func NewKeyValue(dt DataType, name string, v interface{}) Value {
	return Value{
		datatype: dt,
		name:     name,
		payload:  newPayload(dt, v, true),
	}
}

// NewNullValue creates a column value holding the null payload of dt.
func NewNullValue(dt DataType, name string, nullable bool) Value {
	return Value{
		datatype: dt,
		name:     name,
		nullable: nullable,
		payload:  nullPayload,
	}
}

func newPayload(dt DataType, v interface{}, bare bool) *payload {
	if v == nil {
		if bare {
			fatalf("primary key payload must not be null")
		}
		return nullPayload
	}
	p := &payload{bare: bare, present: true}
	switch dt {
	case UInt8:
		p.bits = uint64(v.(uint8))
	case UInt16:
		p.bits = uint64(v.(uint16))
	case UInt32:
		p.bits = uint64(v.(uint32))
	case UInt64:
		p.bits = v.(uint64)
	case Int8:
		p.bits = uint64(uint8(v.(int8)))
	case Int16:
		p.bits = uint64(uint16(v.(int16)))
	case Int32:
		p.bits = uint64(uint32(v.(int32)))
	case Int64:
		p.bits = uint64(v.(int64))
	case Float32:
		p.bits = uint64(math.Float32bits(v.(float32)))
	case Float64:
		p.bits = math.Float64bits(v.(float64))
	case Boolean:
		if v.(bool) {
			p.bits = 1
		}
	case String:
		p.str = v.(string)
	case Bytes:
		p.raw = v.([]byte)
	default:
		fatalf("invalid data type tag %d", uint8(dt))
	}
	return p
}

// Datatype returns the primitive kind of the value.
func (v Value) Datatype() DataType { return v.datatype }

// Name returns the column name, unique within a row.
func (v Value) Name() string { return v.name }

// Nullable reports the column's declared nullability. Note that projection
// can null out a non-nullable, non-primary column; Nullable describes the
// schema declaration, not the current payload.
func (v Value) Nullable() bool { return v.nullable }

// IsNull reports whether the payload is empty.
func (v Value) IsNull() bool { return !v.payload.present }

// Any returns the payload as the Go value matching the tag, or nil when the
// payload is empty.
func (v Value) Any() interface{} {
	p := v.payload
	if !p.present {
		return nil
	}
	switch v.datatype {
	case UInt8:
		return uint8(p.bits)
	case UInt16:
		return uint16(p.bits)
	case UInt32:
		return uint32(p.bits)
	case UInt64:
		return p.bits
	case Int8:
		return int8(p.bits)
	case Int16:
		return int16(p.bits)
	case Int32:
		return int32(p.bits)
	case Int64:
		return int64(p.bits)
	case Float32:
		return math.Float32frombits(uint32(p.bits))
	case Float64:
		return math.Float64frombits(p.bits)
	case Boolean:
		return p.bits != 0
	case String:
		return p.str
	case Bytes:
		return p.raw
	default:
		fatalf("invalid data type tag %d", uint8(v.datatype))
		return nil
	}
}

// setNull replaces the payload with the null sentinel of the declared tag.
// Used only by the projection applier, never on the primary-key column.
func (v *Value) setNull() {
	v.payload = nullPayload
}
