// Package progress syncs a user's submissions and rating history into the
// local caches, appends newly solved problems to the practice log and hands
// the result to optional exporters (Google Sheets, PostgreSQL).
package progress
