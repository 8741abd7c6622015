package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

type options struct {
	logger *slog.Logger
}

type Option func(options) options

// WithLogger sets the logger used to report mined blocks and rejected
// transactions. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// Ledger holds the chain, the pending pool and the participant set of a
// single authoring node. It is safe for concurrent use. The zero value is an
// empty chain: reads work and Mine reports ErrEmptyChain.
type Ledger struct {
	mu           sync.RWMutex
	owner        string
	blocks       []Block
	pending      []Transaction
	participants map[string]struct{}
	logger       *slog.Logger
}

// New creates a ledger whose chain holds only the genesis block. Mining
// rewards are credited to owner.
func New(owner string, opts ...Option) *Ledger {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		o = opt(o)
	}
	return &Ledger{
		owner:        owner,
		blocks:       []Block{Genesis()},
		pending:      []Transaction{},
		participants: make(map[string]struct{}),
		logger:       o.logger,
	}
}

// init fills in what the zero value lacks. Callers hold the write lock.
func (l *Ledger) init() {
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.participants == nil {
		l.participants = make(map[string]struct{})
	}
}

// Owner returns the participant credited with mining rewards.
func (l *Ledger) Owner() string {
	return l.owner
}

// LastBlock returns the most recently appended block.
func (l *Ledger) LastBlock() (Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.lastBlock()
}

func (l *Ledger) lastBlock() (Block, error) {
	if len(l.blocks) == 0 {
		return Block{}, ErrEmptyChain
	}
	return l.blocks[len(l.blocks)-1].clone(), nil
}

// BlockAt returns the block at the given index.
func (l *Ledger) BlockAt(index int) (Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.blocks) {
		return Block{}, fmt.Errorf("block %d: %w", index, ErrBadIndex)
	}
	return l.blocks[index].clone(), nil
}

// Len returns the number of blocks in the chain, genesis included.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.blocks)
}

// Blocks returns a copy of the chain.
func (l *Ledger) Blocks() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Block, len(l.blocks))
	for i, b := range l.blocks {
		out[i] = b.clone()
	}
	return out
}

// Pending returns a copy of the pending pool.
func (l *Ledger) Pending() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Transaction, len(l.pending))
	copy(out, l.pending)
	return out
}

// Participants returns every sender and recipient of an admitted transaction,
// sorted by name.
func (l *Ledger) Participants() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]string, 0, len(l.participants))
	for p := range l.participants {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Mine solves the proof of work for the pending pool, appends a new block with
// the pending transactions followed by a reward for the owner, and returns it.
// The pending pool is left untouched; callers drop the mined transactions with
// ClearMined. No admission or other mining can interleave with the search,
// but transactions admitted after Mine returns stay in the pool.
func (l *Ledger) Mine(ctx context.Context) (Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	last, err := l.lastBlock()
	if err != nil {
		return Block{}, err
	}
	referenceHash := HashBlock(last)

	proof, err := Solve(ctx, l.pending, referenceHash)
	if err != nil {
		return Block{}, err
	}

	txs := make([]Transaction, len(l.pending), len(l.pending)+1)
	copy(txs, l.pending)
	txs = append(txs, Transaction{
		Sender:    MiningSender,
		Recipient: l.owner,
		Amount:    MiningReward,
		Reward:    true,
	})

	block := Block{
		PreviousHash: referenceHash,
		Index:        len(l.blocks),
		Transactions: txs,
		Proof:        proof,
	}
	l.blocks = append(l.blocks, block)

	l.logger.Info("block mined",
		"index", block.Index,
		"proof", block.Proof,
		"transactions", len(block.Transactions),
		"previous_hash", block.PreviousHash)

	return block.clone(), nil
}

// ClearMined removes the transactions confirmed by b from the front of the
// pending pool. Transactions admitted after b was mined are kept. If the pool
// does not start with b's transactions, for instance because it was already
// cleared, nothing is removed.
func (l *Ledger) ClearMined(b Block) {
	l.mu.Lock()
	defer l.mu.Unlock()

	mined := regular(b.Transactions)
	if len(mined) > len(l.pending) {
		return
	}
	for i, tx := range mined {
		if l.pending[i] != tx {
			return
		}
	}
	l.pending = append([]Transaction{}, l.pending[len(mined):]...)
}

// ClearPending drops every transaction from the pending pool.
func (l *Ledger) ClearPending() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = []Transaction{}
}
