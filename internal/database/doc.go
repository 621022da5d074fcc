// Package database archives synced progress in PostgreSQL.
//
// The JSON caches only keep the latest snapshot. The archive keeps every
// solved problem with the time it was first seen and the full rating history
// per handle, so progress can be queried over time:
//   - solved_problems: (handle, problem_key) first_seen_at, rating
//   - rating_changes: (handle, contest_id) old/new rating, rank, updated_at
package database
