// Package feed keeps a fresh list of upcoming contests for the dashboard.
//
// The Feed:
//   - Refreshes contest.list on a fixed interval, immediately on start
//   - Keeps the latest filtered snapshot for readers
//   - Pushes every new snapshot to subscribers without blocking
package feed
