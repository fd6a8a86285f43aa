// Package state manages the persisted hash database.
//
// The database maps a normalized file path to the digest recorded when the
// file was last added. It is persisted as a single JSON document, by default
// ~/.hashguard/integrity_hashes.json, and is rewritten atomically on every
// save.
//
// Key concepts:
//   - Database: ordered path -> digest mapping, listing order is insertion order
//   - Entry: one tracked file and its baseline digest
//   - NormalizePath: the single canonicalization rule applied to every key
//   - Store: interface for loading and saving the database
package state
