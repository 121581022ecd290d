package record

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	gojson "github.com/goccy/go-json"

	"github.com/vireodb/vireo/pkg/vireoerrors"
)

const (
	// primaryKeyIndexKey is the full-schema metadata entry locating the
	// primary-key column, counted over user columns.
	primaryKeyIndexKey = "primary_key_index"

	// userColumnOffset is the number of leading system columns in every
	// stored batch: the deletion flag and the version timestamp. Projection
	// leaf numbering is offset by this constant, and it must stay consistent
	// between materialization and re-projection.
	userColumnOffset = 2
)

// Field describes one user column of a runtime schema.
type Field struct {
	Name     string
	Datatype DataType
	Nullable bool
}

// Schema owns the user column definitions and the primary-key index of a
// dynamic table, and produces the full Arrow schema (system columns plus
// user columns, with primary-key metadata attached) that the storage layer
// writes and the materializer consumes.
type Schema struct {
	fields       []Field
	primaryIndex int
	arrowSchema  *arrow.Schema
}

// NewSchema builds a runtime schema from user fields and the index of the
// primary-key column within them. The primary-key column must exist, must
// not be nullable, and field names must be unique.
func NewSchema(fields []Field, primaryIndex int) (*Schema, error) {
	if primaryIndex < 0 || primaryIndex >= len(fields) {
		return nil, vireoerrors.Newf(vireoerrors.ErrorTypeValidation,
			"primary index %d out of range for %d fields", primaryIndex, len(fields))
	}
	if fields[primaryIndex].Nullable {
		return nil, vireoerrors.Newf(vireoerrors.ErrorTypeValidation,
			"primary key field %q must not be nullable", fields[primaryIndex].Name)
	}
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !f.Datatype.Valid() {
			return nil, vireoerrors.Newf(vireoerrors.ErrorTypeValidation,
				"field %q has invalid data type tag %d", f.Name, uint8(f.Datatype))
		}
		if _, ok := seen[f.Name]; ok {
			return nil, vireoerrors.Newf(vireoerrors.ErrorTypeValidation,
				"duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	arrowFields := make([]arrow.Field, 0, userColumnOffset+len(fields))
	arrowFields = append(arrowFields,
		arrow.Field{Name: "_null", Type: arrow.FixedWidthTypes.Boolean},
		arrow.Field{Name: "ts", Type: arrow.PrimitiveTypes.Uint32},
	)
	for _, f := range fields {
		arrowFields = append(arrowFields, arrow.Field{
			Name:     f.Name,
			Type:     f.Datatype.ArrowType(),
			Nullable: f.Nullable,
		})
	}
	metadata := arrow.NewMetadata(
		[]string{primaryKeyIndexKey},
		[]string{strconv.Itoa(primaryIndex)},
	)

	return &Schema{
		fields:       fields,
		primaryIndex: primaryIndex,
		arrowSchema:  arrow.NewSchema(arrowFields, &metadata),
	}, nil
}

// Fields returns the user column definitions.
func (s *Schema) Fields() []Field { return s.fields }

// PrimaryIndex returns the primary-key index, counted over user columns.
func (s *Schema) PrimaryIndex() int { return s.primaryIndex }

// ArrowSchema returns the full Arrow schema: the two system columns followed
// by the user columns, with primary_key_index metadata attached.
func (s *Schema) ArrowSchema() *arrow.Schema { return s.arrowSchema }

type schemaJSON struct {
	Fields          []fieldJSON `json:"fields"`
	PrimaryKeyIndex int         `json:"primary_key_index"`
}

type fieldJSON struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable,omitempty"`
}

// MarshalJSON serializes the schema so the engine manifest can rebuild
// dynamic table schemas after a restart.
func (s *Schema) MarshalJSON() ([]byte, error) {
	out := schemaJSON{
		Fields:          make([]fieldJSON, 0, len(s.fields)),
		PrimaryKeyIndex: s.primaryIndex,
	}
	for _, f := range s.fields {
		out.Fields = append(out.Fields, fieldJSON{
			Name:     f.Name,
			Type:     f.Datatype.String(),
			Nullable: f.Nullable,
		})
	}
	return gojson.Marshal(out)
}

// SchemaFromJSON rebuilds a runtime schema from its manifest form.
func SchemaFromJSON(data []byte) (*Schema, error) {
	var in schemaJSON
	if err := gojson.Unmarshal(data, &in); err != nil {
		return nil, vireoerrors.Wrap(err, vireoerrors.ErrorTypeDecode, "unmarshal schema")
	}
	fields := make([]Field, 0, len(in.Fields))
	for _, f := range in.Fields {
		dt, ok := dataTypeByName(f.Type)
		if !ok {
			return nil, vireoerrors.Newf(vireoerrors.ErrorTypeCorruption,
				"unknown data type %q for field %q", f.Type, f.Name)
		}
		fields = append(fields, Field{Name: f.Name, Datatype: dt, Nullable: f.Nullable})
	}
	return NewSchema(fields, in.PrimaryKeyIndex)
}

func dataTypeByName(name string) (DataType, bool) {
	for i, n := range dataTypeNames {
		if n == name {
			return DataType(i), true
		}
	}
	return 0, false
}

// primaryKeyIndex reads the primary-key index from the full schema's
// metadata. A missing or unparsable entry indicates a corrupt or mismatched
// schema and is never expected in correct operation.
func primaryKeyIndex(schema *arrow.Schema) int {
	md := schema.Metadata()
	i := md.FindKey(primaryKeyIndexKey)
	if i < 0 {
		fatalf("schema metadata missing %q", primaryKeyIndexKey)
	}
	n, err := strconv.ParseUint(md.Values()[i], 10, 32)
	if err != nil {
		fatalf("schema metadata %q=%q is not an unsigned integer", primaryKeyIndexKey, md.Values()[i])
	}
	return int(n)
}

// flattenFields expands nested struct fields into the schema's stable leaf
// ordering, the numbering projection masks address.
func flattenFields(schema *arrow.Schema) []arrow.Field {
	out := make([]arrow.Field, 0, schema.NumFields())
	for _, f := range schema.Fields() {
		out = appendLeaves(out, f)
	}
	return out
}

func appendLeaves(out []arrow.Field, f arrow.Field) []arrow.Field {
	if st, ok := f.Type.(*arrow.StructType); ok {
		for i := 0; i < st.NumFields(); i++ {
			out = appendLeaves(out, st.Field(i))
		}
		return out
	}
	return append(out, f)
}

// leafCount returns the number of leaves a root field expands to.
func leafCount(f arrow.Field) int {
	st, ok := f.Type.(*arrow.StructType)
	if !ok {
		return 1
	}
	n := 0
	for i := 0; i < st.NumFields(); i++ {
		n += leafCount(st.Field(i))
	}
	return n
}

// fieldContains reports whether full denotes the same logical column as
// batchField, accounting for the batch schema being a pruned subset whose
// nullability may be tightened but never widened.
func fieldContains(full, batchField arrow.Field) bool {
	return full.Name == batchField.Name &&
		arrow.TypeEqual(full.Type, batchField.Type) &&
		(full.Nullable || !batchField.Nullable)
}
