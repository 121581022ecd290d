package record

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireodb/vireo/pkg/vireoerrors"
)

func TestNewSchemaArrowShape(t *testing.T) {
	s, err := NewSchema([]Field{
		{Name: "id", Datatype: UInt64},
		{Name: "name", Datatype: String, Nullable: true},
	}, 0)
	require.NoError(t, err)

	as := s.ArrowSchema()
	require.Equal(t, 4, as.NumFields())
	assert.Equal(t, "_null", as.Field(0).Name)
	assert.Equal(t, arrow.BOOL, as.Field(0).Type.ID())
	assert.Equal(t, "ts", as.Field(1).Name)
	assert.Equal(t, arrow.UINT32, as.Field(1).Type.ID())
	assert.Equal(t, "id", as.Field(2).Name)
	assert.Equal(t, arrow.UINT64, as.Field(2).Type.ID())
	assert.False(t, as.Field(2).Nullable)
	assert.Equal(t, "name", as.Field(3).Name)
	assert.True(t, as.Field(3).Nullable)

	md := as.Metadata()
	i := md.FindKey("primary_key_index")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, "0", md.Values()[i])
}

func TestNewSchemaValidation(t *testing.T) {
	tests := []struct {
		name    string
		fields  []Field
		primary int
	}{
		{
			name:    "primary index out of range",
			fields:  []Field{{Name: "id", Datatype: UInt64}},
			primary: 3,
		},
		{
			name:    "negative primary index",
			fields:  []Field{{Name: "id", Datatype: UInt64}},
			primary: -1,
		},
		{
			name: "nullable primary key",
			fields: []Field{
				{Name: "id", Datatype: UInt64, Nullable: true},
			},
			primary: 0,
		},
		{
			name: "duplicate field name",
			fields: []Field{
				{Name: "id", Datatype: UInt64},
				{Name: "id", Datatype: String, Nullable: true},
			},
			primary: 0,
		},
		{
			name: "invalid data type",
			fields: []Field{
				{Name: "id", Datatype: DataType(200)},
			},
			primary: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.fields, tt.primary)
			require.Error(t, err)
			assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeValidation))
		})
	}
}

func TestSchemaJSONRoundTrip(t *testing.T) {
	fields := []Field{
		{Name: "id", Datatype: String},
		{Name: "score", Datatype: Float64, Nullable: true},
		{Name: "blob", Datatype: Bytes, Nullable: true},
	}
	s, err := NewSchema(fields, 0)
	require.NoError(t, err)

	data, err := gojson.Marshal(s)
	require.NoError(t, err)

	restored, err := SchemaFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, fields, restored.Fields())
	assert.Equal(t, 0, restored.PrimaryIndex())
	assert.True(t, s.ArrowSchema().Equal(restored.ArrowSchema()))
}

func TestSchemaFromJSONUnknownType(t *testing.T) {
	_, err := SchemaFromJSON([]byte(`{"fields":[{"name":"id","type":"decimal"}],"primary_key_index":0}`))
	require.Error(t, err)
	assert.True(t, vireoerrors.IsType(err, vireoerrors.ErrorTypeCorruption))
}

func TestFlattenFieldsExpandsStructs(t *testing.T) {
	nested := arrow.StructOf(
		arrow.Field{Name: "lat", Type: arrow.PrimitiveTypes.Float64},
		arrow.Field{Name: "lon", Type: arrow.PrimitiveTypes.Float64},
	)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Uint64},
		{Name: "loc", Type: nested},
		{Name: "name", Type: arrow.BinaryTypes.String},
	}, nil)

	leaves := flattenFields(schema)
	require.Len(t, leaves, 4)
	assert.Equal(t, "id", leaves[0].Name)
	assert.Equal(t, "lat", leaves[1].Name)
	assert.Equal(t, "lon", leaves[2].Name)
	assert.Equal(t, "name", leaves[3].Name)

	// A root pick over a struct includes all of its leaves.
	mask := ProjectRoots(schema, 1)
	assert.False(t, mask.LeafIncluded(0))
	assert.True(t, mask.LeafIncluded(1))
	assert.True(t, mask.LeafIncluded(2))
	assert.False(t, mask.LeafIncluded(3))
}

func TestFieldContains(t *testing.T) {
	full := arrow.Field{Name: "email", Type: arrow.BinaryTypes.String, Nullable: true}

	assert.True(t, fieldContains(full, full))
	assert.True(t, fieldContains(full,
		arrow.Field{Name: "email", Type: arrow.BinaryTypes.String}))
	assert.False(t, fieldContains(full,
		arrow.Field{Name: "mail", Type: arrow.BinaryTypes.String, Nullable: true}))
	assert.False(t, fieldContains(full,
		arrow.Field{Name: "email", Type: arrow.BinaryTypes.Binary, Nullable: true}))

	strict := arrow.Field{Name: "id", Type: arrow.PrimitiveTypes.Uint64}
	assert.False(t, fieldContains(strict,
		arrow.Field{Name: "id", Type: arrow.PrimitiveTypes.Uint64, Nullable: true}))
}
