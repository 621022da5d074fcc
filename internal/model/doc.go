// Package model defines the Codeforces records shared across cfkit.
//
// JSON field names follow the Codeforces API (camelCase) so the same
// structs serve the local caches and the dashboard responses.
//
// Conventions:
//   - Timestamps: int64 unix seconds, as returned by the API
//   - Problem keys: contest id followed by index, e.g. "1850A"
package model
