// Package ledger persists the generation records of an install.
//
// The ledger is a single JSON document:
//
//	{"generations": [{"id": 1, "date": "2025-01-02 10:00:00",
//	  "commit_hash": "…", "description": "Update to abc1234",
//	  "archived": false}, …]}
//
// Ids are allocated as max(existing)+1 and never reused; records are only
// ever archived, never removed. Unknown record fields and unknown top-level
// keys survive a load/save cycle. Every mutation is written to a temporary
// file in the same directory, synced and renamed over the document, so a
// crash leaves either the old or the new ledger on disk. A document that
// cannot be parsed is reported as CORRUPT_LEDGER and left untouched.
package ledger
