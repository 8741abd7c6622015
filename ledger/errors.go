package ledger

import "errors"

var (
	// ErrEmptyChain is returned when a chain holds no block at all.
	ErrEmptyChain = errors.New("blockchain is empty")
	// ErrInvalidGenesis reports a first block that differs from Genesis.
	ErrInvalidGenesis = errors.New("invalid genesis block")
	// ErrBadIndex reports a block index that is out of range or out of order.
	ErrBadIndex = errors.New("index out of range")
	// ErrInsufficientBalance is returned by Admit when the sender cannot
	// afford the transfer.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAmount rejects negative, NaN and infinite amounts.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrBrokenLink reports a block whose previous hash does not match its
	// predecessor.
	ErrBrokenLink = errors.New("previous hash does not match")
	// ErrInvalidProof reports a proof that does not satisfy the proof of work.
	ErrInvalidProof = errors.New("invalid proof of work")
	// ErrMissingReward reports a mined block without exactly one reward.
	ErrMissingReward = errors.New("block must hold exactly one reward transaction")
)
