package record

import (
	"github.com/apache/arrow-go/v18/arrow"
)

// ProjectionMask describes which leaf columns of the full schema a query
// wants materialized. Leaf numbering follows the full schema's flattened
// field list, including the two leading system columns, so the first user
// column is leaf 2. A mask is immutable and safe for concurrent use.
type ProjectionMask struct {
	// nil leaves means every leaf is included.
	leaves map[int]struct{}
}

// ProjectAll returns the mask that includes every leaf.
func ProjectAll() *ProjectionMask {
	return &ProjectionMask{}
}

// ProjectLeaves returns a mask including exactly the given leaf indices.
func ProjectLeaves(leaves ...int) *ProjectionMask {
	m := &ProjectionMask{leaves: make(map[int]struct{}, len(leaves))}
	for _, leaf := range leaves {
		m.leaves[leaf] = struct{}{}
	}
	return m
}

// ProjectRoots returns a mask including every leaf under the given root
// columns of the full schema. This is how the query layer turns a column
// pick into a leaf mask.
func ProjectRoots(schema *arrow.Schema, roots ...int) *ProjectionMask {
	rootSet := make(map[int]struct{}, len(roots))
	for _, root := range roots {
		rootSet[root] = struct{}{}
	}
	m := &ProjectionMask{leaves: make(map[int]struct{})}
	leaf := 0
	for rootIdx, f := range schema.Fields() {
		n := leafCount(f)
		if _, ok := rootSet[rootIdx]; ok {
			for i := leaf; i < leaf+n; i++ {
				m.leaves[i] = struct{}{}
			}
		}
		leaf += n
	}
	return m
}

// LeafIncluded reports whether the leaf at the given index is included.
func (m *ProjectionMask) LeafIncluded(leaf int) bool {
	if m == nil || m.leaves == nil {
		return true
	}
	_, ok := m.leaves[leaf]
	return ok
}

// Project nulls out every non-primary column whose leaf is excluded by the
// mask, replacing its payload with the null sentinel of its declared tag.
// The primary-key column is never touched, regardless of the mask.
//
// This re-applies a (possibly narrower) mask to an already-built row without
// re-reading storage; inclusion while reading is FromRecordBatch's job.
// Idempotent: applying the same mask twice equals applying it once.
func (r *Row) Project(mask *ProjectionMask) {
	for idx := range r.columns {
		if idx == r.primaryIndex {
			continue
		}
		if !mask.LeafIncluded(idx + userColumnOffset) {
			r.columns[idx].setNull()
		}
	}
}
