// Package record implements Vireo's dynamic record core: a database row
// whose column set and types are determined at runtime rather than at
// compile time.
//
// A row exists in three representations and must move losslessly between
// them:
//
//   - In memory, as a Row: an ordered sequence of typed, nullable column
//     Values plus the index of the primary-key column.
//   - On the write-ahead log, as the deterministic byte stream produced by
//     Row.Encode and read back by DecodeRow.
//   - In columnar storage, as one row of an Arrow record batch, extracted by
//     FromRecordBatch under a ProjectionMask.
//
// The primary-key column is special throughout: its payload is bare (never
// null), it is materialized regardless of projection, and the projection
// applier never touches it. Row identity and ordering depend on it.
//
// Batches produced by the storage layer carry two leading system columns:
// column 0 is the deletion tombstone flag and column 1 the version
// timestamp. User columns start at leaf index 2; the same offset is used by
// the materializer and by Row.Project so projection numbering cannot drift
// between them.
//
// Failures split into two classes. Byte sink/source failures during
// encoding or decoding are reported as vireoerrors values. Schema/batch
// invariant violations (missing primary-key metadata, a type tag that does
// not match the physical column, an out-of-range index) indicate a corrupted
// pairing produced by a bug elsewhere in the engine; those paths log through
// the package logger and panic rather than return wrong data.
package record
