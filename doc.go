// Package vireo is an embedded LSM-tree storage engine with runtime-defined
// schemas. This module contains its dynamic record core: the per-row data
// model that moves a row losslessly between three representations:
//
//  1. An in-memory sequence of typed column values (record.Row).
//  2. A compact binary form appended to the write-ahead log
//     (record.Row Encode/Size and DecodeRow).
//  3. A row materialized from an Arrow columnar batch produced by scanning
//     on-disk storage, under column projection (record.FromRecordBatch).
//
// # Packages
//
// pkg/record holds the row model itself: the closed set of primitive column
// types, the nullable type-tagged column value, the dynamic row and its
// primary-key invariant, the log codec, the Arrow batch materializer, and
// the projection applier.
//
// pkg/vireoerrors provides the structured error type used across the engine,
// with error categories, cause chains, and captured stacks.
//
// pkg/observability provides the zap logging bootstrap shared by the engine's
// components.
//
// The durability layer (fsync, framing, checksums), the SSTable format,
// compaction, and the query planner live in sibling modules and consume this
// core through the contracts documented in pkg/record.
package vireo
