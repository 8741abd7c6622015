package consensus

import (
	"context"

	"github.com/luca-patrignani/pow-ledger/ledger"
)

// Ledger defines the chain and pending pool a node drives.
// Implementations must be safe for concurrent use.
type Ledger interface {
	// Owner returns the participant credited with mining rewards. The node
	// sends every submitted transaction on its behalf.
	Owner() string

	// Admit validates a transfer against the sender's balance and queues it
	// in the pending pool.
	Admit(sender, recipient string, amount float64) error

	// Mine appends a block built from the pending pool plus a reward. It
	// does not clear the pool.
	Mine(ctx context.Context) (ledger.Block, error)

	// ClearMined drops the transactions confirmed by a mined block from the
	// pending pool.
	ClearMined(b ledger.Block)

	// Blocks returns a copy of the chain.
	Blocks() []ledger.Block

	// Pending returns a copy of the pending pool.
	Pending() []ledger.Transaction

	// Participants returns every known sender and recipient.
	Participants() []string

	// Balance returns the spendable balance of a participant.
	Balance(participant string) float64

	// Verify checks the integrity of the entire chain.
	Verify() error

	// VerifyPending re-checks every pending transaction against confirmed
	// balances.
	VerifyPending() bool
}
