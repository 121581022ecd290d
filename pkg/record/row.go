package record

// Row is a dynamic database row: an ordered sequence of column values plus
// the index of the primary-key column. Rows are passive values; the only
// sanctioned mutation is Project, which nulls excluded payloads in place.
type Row struct {
	columns      []Value
	primaryIndex int
}

// NewRow assembles a row from columns and the primary-key index. The index
// must be in range and the referenced column must hold a non-null payload;
// a violation is a fatal internal-consistency fault.
func NewRow(columns []Value, primaryIndex int) *Row {
	if primaryIndex < 0 || primaryIndex >= len(columns) {
		fatalf("primary index %d out of range for %d columns", primaryIndex, len(columns))
	}
	if columns[primaryIndex].IsNull() {
		fatalf("primary key column %q is null", columns[primaryIndex].Name())
	}
	return &Row{columns: columns, primaryIndex: primaryIndex}
}

// Columns returns the row's columns in declaration order. The slice is a
// view into the row, not a copy.
func (r *Row) Columns() []Value { return r.columns }

// NumColumns returns the number of columns.
func (r *Row) NumColumns() int { return len(r.columns) }

// Column returns the column at index i.
func (r *Row) Column(i int) Value { return r.columns[i] }

// PrimaryIndex returns the index of the primary-key column.
func (r *Row) PrimaryIndex() int { return r.primaryIndex }

// Key returns the primary-key column. Row identity and ordering depend on
// it; it is never null.
func (r *Row) Key() Value {
	return r.columns[r.primaryIndex]
}

// Clone returns a copy of the row. Column payloads are shared handles, so
// the copy is cheap and projecting the clone leaves the original intact.
func (r *Row) Clone() *Row {
	columns := make([]Value, len(r.columns))
	copy(columns, r.columns)
	return &Row{columns: columns, primaryIndex: r.primaryIndex}
}
