package record

import (
	"encoding/binary"
	"io"

	"github.com/vireodb/vireo/pkg/vireoerrors"
)

// DecodeRow reads one row from r in the layout documented in encode.go.
// Truncated input and source failures surface as decode errors; an unknown
// type tag or an inconsistent header is reported as corruption.
func DecodeRow(r io.Reader) (*Row, error) {
	var count, primary uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read column count")
	}
	if err := binary.Read(r, binary.LittleEndian, &primary); err != nil {
		return nil, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read primary index")
	}
	if primary >= count {
		return nil, vireoerrors.Newf(vireoerrors.ErrorTypeCorruption,
			"primary index %d out of range for %d columns", primary, count)
	}

	columns := make([]Value, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := decodeValue(r, i == int(primary))
		if err != nil {
			return nil, err
		}
		columns = append(columns, v)
	}

	return NewRow(columns, int(primary)), nil
}

func decodeValue(r io.Reader, primary bool) (Value, error) {
	var tag uint8
	if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
		return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read type tag")
	}
	datatype := DataType(tag)
	if !datatype.Valid() {
		return Value{}, vireoerrors.Newf(vireoerrors.ErrorTypeCorruption, "unknown type tag %d", tag)
	}

	var nameLen uint32
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read name length")
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read name")
	}

	var nullable bool
	if err := binary.Read(r, binary.LittleEndian, &nullable); err != nil {
		return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read nullable flag")
	}

	present := true
	if !primary {
		if err := binary.Read(r, binary.LittleEndian, &present); err != nil {
			return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read presence flag")
		}
	}

	v := Value{
		datatype: datatype,
		name:     string(name),
		nullable: nullable,
		payload:  nullPayload,
	}
	if !present {
		return v, nil
	}

	p := &payload{bare: primary, present: true}
	var err error
	switch datatype {
	case UInt8, Int8, Boolean:
		var x uint8
		if err = binary.Read(r, binary.LittleEndian, &x); err == nil {
			p.bits = uint64(x)
		}
	case UInt16, Int16:
		var x uint16
		if err = binary.Read(r, binary.LittleEndian, &x); err == nil {
			p.bits = uint64(x)
		}
	case UInt32, Int32, Float32:
		var x uint32
		if err = binary.Read(r, binary.LittleEndian, &x); err == nil {
			p.bits = uint64(x)
		}
	case UInt64, Int64, Float64:
		err = binary.Read(r, binary.LittleEndian, &p.bits)
	case String:
		var raw []byte
		if raw, err = decodeBytes(r); err == nil {
			p.str = string(raw)
		}
	case Bytes:
		p.raw, err = decodeBytes(r)
	}
	if err != nil {
		return Value{}, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "read payload").
			WithDetail("column", string(name))
	}

	v.payload = p
	return v, nil
}

func decodeBytes(r io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
