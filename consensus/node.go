package consensus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/luca-patrignani/pow-ledger/ledger"
)

// ErrHalted is returned by every mutating command once an audit has found
// the chain invalid.
var ErrHalted = errors.New("node halted: chain failed verification")

type options struct {
	logger *slog.Logger
}

type Option func(options) options

// WithLogger sets the logger the node reports its commands to.
func WithLogger(logger *slog.Logger) Option {
	return func(o options) options {
		o.logger = logger
		return o
	}
}

// Node is the single authoring node of a ledger. Submissions and mining are
// serialized, so a block is always mined and its pool cleared before the
// next transaction is admitted.
type Node struct {
	mu     sync.Mutex
	ledger Ledger
	logger *slog.Logger

	halted error
}

// NewNode creates a node that drives l on behalf of l.Owner().
func NewNode(l Ledger, opts ...Option) *Node {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		o = opt(o)
	}
	return &Node{
		ledger: l,
		logger: o.logger,
	}
}

// Owner returns the participant this node sends and mines for.
func (n *Node) Owner() string {
	return n.ledger.Owner()
}

// SubmitTransaction queues a transfer from the owner to recipient. A nil
// error means the transaction was admitted; ledger.ErrInsufficientBalance and
// ledger.ErrInvalidAmount report a rejection.
func (n *Node) SubmitTransaction(recipient string, amount float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.halted != nil {
		return n.halted
	}
	if err := n.ledger.Admit(n.ledger.Owner(), recipient, amount); err != nil {
		return err
	}
	n.logger.Info("transaction added", "recipient", recipient, "amount", amount)
	return nil
}

// Mine mines a block from the pending pool and removes the mined
// transactions from the pool once the block is appended. Cancelling ctx stops the proof of work search and leaves
// both the chain and the pool unchanged.
func (n *Node) Mine(ctx context.Context) (ledger.Block, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.halted != nil {
		return ledger.Block{}, n.halted
	}
	block, err := n.ledger.Mine(ctx)
	if err != nil {
		return ledger.Block{}, fmt.Errorf("mining failed: %w", err)
	}
	n.ledger.ClearMined(block)
	return block, nil
}

// DumpChain returns every block of the chain, genesis first.
func (n *Node) DumpChain() []ledger.Block {
	return n.ledger.Blocks()
}

// DumpParticipants returns every participant seen in an admitted transaction.
func (n *Node) DumpParticipants() []string {
	return n.ledger.Participants()
}

// PendingTransactions returns the transactions waiting to be mined.
func (n *Node) PendingTransactions() []ledger.Transaction {
	return n.ledger.Pending()
}

// CheckPendingValidity reports whether every pending transaction is still
// covered by its sender's confirmed balance.
func (n *Node) CheckPendingValidity() bool {
	valid := n.ledger.VerifyPending()
	if !valid {
		n.logger.Warn("pending pool holds invalid transactions")
	}
	return valid
}

// Balance returns the owner's spendable balance.
func (n *Node) Balance() float64 {
	return n.ledger.Balance(n.ledger.Owner())
}

// BalanceOf returns the spendable balance of any participant.
func (n *Node) BalanceOf(participant string) float64 {
	return n.ledger.Balance(participant)
}

// Audit verifies the whole chain. The first failure halts the node: the
// error is returned by this and every later Audit, SubmitTransaction and Mine.
func (n *Node) Audit() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.halted != nil {
		return n.halted
	}
	if err := n.ledger.Verify(); err != nil {
		n.halted = fmt.Errorf("%w: %w", ErrHalted, err)
		n.logger.Error("invalid blockchain", "error", err)
		return n.halted
	}
	return nil
}

// Halted reports whether an audit has failed.
func (n *Node) Halted() bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	return n.halted != nil
}
