package ledger

import "fmt"

// VerifyChain checks that blocks form a valid chain: the first block is the
// genesis block and every later block has the right index, exactly one reward
// transaction, the hash of its predecessor and a valid proof of work for its
// regular transactions. It stops at the first invalid block.
func VerifyChain(blocks []Block) error {
	if len(blocks) == 0 {
		return ErrEmptyChain
	}

	if HashBlock(blocks[0]) != HashBlock(Genesis()) {
		return ErrInvalidGenesis
	}

	for i := 1; i < len(blocks); i++ {
		if err := validateBlock(blocks[i], blocks[i-1]); err != nil {
			return fmt.Errorf("block %d invalid: %w", i, err)
		}
	}
	return nil
}

// Verify reports whether blocks form a valid chain.
func Verify(blocks []Block) bool {
	return VerifyChain(blocks) == nil
}

// validateBlock verifies that a block is valid relative to the previous block.
func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("%w: expected index %d, got %d", ErrBadIndex, previous.Index+1, current.Index)
	}

	rewards := 0
	for _, tx := range current.Transactions {
		if tx.Reward {
			rewards++
		}
	}
	if rewards != 1 {
		return fmt.Errorf("%w: found %d", ErrMissingReward, rewards)
	}

	expected := HashBlock(previous)
	if current.PreviousHash != expected {
		return fmt.Errorf("%w: expected %s, got %s", ErrBrokenLink, expected, current.PreviousHash)
	}

	if !Satisfies(regular(current.Transactions), current.PreviousHash, current.Proof) {
		return fmt.Errorf("%w: proof %d", ErrInvalidProof, current.Proof)
	}

	return nil
}

// Verify validates the integrity of the ledger's own chain.
func (l *Ledger) Verify() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return VerifyChain(l.blocks)
}

// VerifyPending reports whether every pending transaction is still covered by
// its sender's confirmed balance. Each transaction is checked on its own; the
// other pending entries are ignored.
func (l *Ledger) VerifyPending() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, tx := range l.pending {
		if l.confirmedBalance(tx.Sender) < tx.Amount {
			return false
		}
	}
	return true
}
