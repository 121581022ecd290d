package record

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// DataType identifies one of the primitive column kinds supported by the
// dynamic record model. The set is closed: every code path that reads,
// defaults, nulls, or serializes a value dispatches over exactly these
// kinds.
type DataType uint8

const (
	UInt8 DataType = iota
	UInt16
	UInt32
	UInt64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Boolean
	String
	Bytes

	numDataTypes = iota
)

var dataTypeNames = [numDataTypes]string{
	UInt8:   "uint8",
	UInt16:  "uint16",
	UInt32:  "uint32",
	UInt64:  "uint64",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Float32: "float32",
	Float64: "float64",
	Boolean: "boolean",
	String:  "string",
	Bytes:   "bytes",
}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return "invalid"
}

// Valid reports whether t is one of the supported kinds.
func (t DataType) Valid() bool {
	return t < numDataTypes
}

// fixedWidth returns the encoded payload width in bytes for fixed-width
// kinds, or 0 for length-prefixed kinds (String, Bytes).
func (t DataType) fixedWidth() int {
	switch t {
	case UInt8, Int8, Boolean:
		return 1
	case UInt16, Int16:
		return 2
	case UInt32, Int32, Float32:
		return 4
	case UInt64, Int64, Float64:
		return 8
	default:
		return 0
	}
}

// ArrowType returns the Arrow data type this kind maps to in columnar
// storage.
func (t DataType) ArrowType() arrow.DataType {
	switch t {
	case UInt8:
		return arrow.PrimitiveTypes.Uint8
	case UInt16:
		return arrow.PrimitiveTypes.Uint16
	case UInt32:
		return arrow.PrimitiveTypes.Uint32
	case UInt64:
		return arrow.PrimitiveTypes.Uint64
	case Int8:
		return arrow.PrimitiveTypes.Int8
	case Int16:
		return arrow.PrimitiveTypes.Int16
	case Int32:
		return arrow.PrimitiveTypes.Int32
	case Int64:
		return arrow.PrimitiveTypes.Int64
	case Float32:
		return arrow.PrimitiveTypes.Float32
	case Float64:
		return arrow.PrimitiveTypes.Float64
	case Boolean:
		return arrow.FixedWidthTypes.Boolean
	case String:
		return arrow.BinaryTypes.String
	case Bytes:
		return arrow.BinaryTypes.Binary
	default:
		fatalf("invalid data type tag %d", uint8(t))
		return nil
	}
}

// DataTypeOf maps an Arrow data type onto the record kind it stores.
// An Arrow type outside the supported set is a schema corruption fault.
func DataTypeOf(t arrow.DataType) DataType {
	switch t.ID() {
	case arrow.UINT8:
		return UInt8
	case arrow.UINT16:
		return UInt16
	case arrow.UINT32:
		return UInt32
	case arrow.UINT64:
		return UInt64
	case arrow.INT8:
		return Int8
	case arrow.INT16:
		return Int16
	case arrow.INT32:
		return Int32
	case arrow.INT64:
		return Int64
	case arrow.FLOAT32:
		return Float32
	case arrow.FLOAT64:
		return Float64
	case arrow.BOOL:
		return Boolean
	case arrow.STRING:
		return String
	case arrow.BINARY:
		return Bytes
	default:
		fatalf("unsupported arrow data type %s", t)
		return 0
	}
}
