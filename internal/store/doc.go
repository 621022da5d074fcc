// Package store keeps cfkit's local state as indented JSON documents.
//
// Reads are forgiving: a missing or corrupt file is a *CacheReadError that
// callers normally turn into an empty default with LoadOrDefault. Writes are
// strict: they go through a temp file and rename, and any failure is a
// *PersistenceError.
//
// Files under the data directory:
//
//	solved_problems.json   SolvedDoc
//	rating_history.json    RatingDoc
//	reminders_sent.json    Ledger
//	api_cache.json         APICache
package store
