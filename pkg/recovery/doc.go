// Package recovery manages batches of single-use recovery codes.
//
// A user holds at most one recovery code set. Each code in the set is
// encrypted independently at rest and can be consumed exactly once;
// used entries stay in the set as tombstones so a replayed code never
// matches again.
//
// Setup is two-phase, mirroring a generate-then-confirm flow:
// PreviewBatch generates codes for display without persisting anything,
// and CommitBatch stores them only once the user confirms. An abandoned
// preview therefore leaves any previously stored set intact, while a
// commit replaces the whole set, discarding old codes whether used or
// not.
//
// # Usage
//
//	bank := recovery.NewBank(store, c, codec.DefaultProfile)
//
//	codes, err := bank.PreviewBatch(ctx)        // show to the user
//	err = bank.CommitBatch(ctx, userID, codes)  // on confirmation
//
//	ok, err := bank.Consume(ctx, userID, "abc 123 xyz")
//
// Consume normalizes the submitted code (whitespace-insensitive) and
// compares in constant time against each unused entry.
package recovery
