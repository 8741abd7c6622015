// Package ledger implements a single-node proof-of-work ledger: an append-only
// chain of blocks holding transfers between named participants.
//
// # Core Components
//
// Ledger: Owns the chain, the pool of pending transactions and the set of
// known participants. New blocks are appended only through Mine.
//
// Block: An ordered batch of transactions linked to its predecessor by the
// SHA-256 digest of that predecessor (see HashBlock).
//
// Proof of work: Solve searches for a nonce whose digest, computed over the
// block's regular transactions, the previous block hash and the nonce itself,
// starts with DifficultyPrefix. Satisfies checks a nonce in a single hash.
//
// # Balances
//
// A participant's balance is what it received in confirmed blocks minus what
// it sent in confirmed blocks and in the pending pool. Pending sends count at
// once so queued transactions cannot spend the same funds twice; pending
// receives only count after they are mined.
//
// # Security Properties
//
//   - Tamper detection: VerifyChain recomputes every link and every proof
//   - Immutability: accessors return deep copies, stored blocks are never mutated
//
// Senders are not authenticated. Any string is accepted as a sender name, so
// the balance check only guards against overspending, not impersonation.
package ledger
