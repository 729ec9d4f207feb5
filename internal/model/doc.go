// Package model defines the normalized records persisted by the sync tool.
//
// Conventions:
//   - Nullable fields are pointers; nil means the upstream payload did not
//     carry a usable value.
//   - Prices are decimal.NullDecimal (dollars).
//   - Records are built once per API response item, never mutated, and
//     consumed once by a repository.
//
// Records are produced by two adapters per type: the typed-response adapters
// in internal/api (ToRecord methods) and the map adapters here (FromMap
// functions) used on the raw-JSON fallback path. Both are total: malformed
// fields degrade to nil instead of failing the batch.
package model
