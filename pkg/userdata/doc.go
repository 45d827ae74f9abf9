// Package userdata persists per-user structured records under a
// (userID, namespace, key) triple.
//
// The package is the storage contract shared by the tfakit code
// lifecycle packages: pending one-time codes, recovery code sets and
// per-user method settings are all serialized records living here. Four
// backends ship with the package:
//
//   - MemoryStore    – in-process map, used in tests and single-node setups.
//   - RedisStore     – go-redis v9 backend with optimistic WATCH transactions.
//   - PostgresStore  – pgx/v5 backend with SELECT ... FOR UPDATE row locking
//     and an embedded goose migration (Migrate).
//   - MongoStore     – mongo-driver v2 backend with revision-checked replace.
//
// # Atomicity
//
// Update runs a read-modify-write cycle that each backend serializes
// per (userID, namespace, key). This is the primitive that makes
// "fetch pending code, compare, purge" race-free: two concurrent
// submissions of the same one-time code can never both observe the
// record and both consume it.
//
// # Usage
//
//	store := userdata.NewMemoryStore()
//
//	err := store.Set(ctx, userID, "tfa", "login_email_code", payload)
//
//	err = store.Update(ctx, userID, "tfa", "login_email_code",
//		func(current []byte, found bool) ([]byte, error) {
//			if !found {
//				return nil, userdata.ErrNotFound
//			}
//			return nil, nil // nil next value deletes the record
//		})
//
// Get returns ErrNotFound for absent records; callers treat that as a
// normal negative result, not an infrastructure failure.
package userdata
