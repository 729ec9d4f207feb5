// Package store persists normalized catalog records into PostgreSQL.
//
// Each repository converts records into fixed-order parameter rows and
// submits them as one pgx.Batch inside a single transaction: every row is an
// INSERT ... ON CONFLICT DO UPDATE keyed on the natural ticker, so re-saving
// the same entity updates it in place. A batch either commits fully or not
// at all; partial success is not reported.
//
// add_time/update_time are backfilled with now() when a record lacks them.
// On conflict only update_time (and the data columns) change; add_time keeps
// the value from the original insert.
package store
