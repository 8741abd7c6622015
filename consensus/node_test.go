package consensus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/luca-patrignani/pow-ledger/ledger"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestNode(owner string) (*Node, *ledger.Ledger) {
	l := ledger.New(owner, ledger.WithLogger(discardLogger()))
	return NewNode(l, WithLogger(discardLogger())), l
}

// tamperedLedger serves a modified copy of the chain, as if the stored
// blocks had been edited behind the node's back.
type tamperedLedger struct {
	*ledger.Ledger
	mutate func([]ledger.Block)
}

func (t tamperedLedger) Blocks() []ledger.Block {
	b := t.Ledger.Blocks()
	t.mutate(b)
	return b
}

func (t tamperedLedger) Verify() error {
	return ledger.VerifyChain(t.Blocks())
}

func mustMine(t *testing.T, n *Node) ledger.Block {
	t.Helper()
	b, err := n.Mine(context.Background())
	if err != nil {
		t.Fatalf("failed to mine: %v", err)
	}
	return b
}

// TestNodeMinesAndPays runs the usual session: mine a reward, pay Bob, mine
// the payment and audit the chain.
func TestNodeMinesAndPays(t *testing.T) {
	node, _ := newTestNode("Max")

	mustMine(t, node)
	if err := node.SubmitTransaction("Bob", 1); err != nil {
		t.Fatalf("expected transaction to be admitted: %v", err)
	}
	if len(node.PendingTransactions()) != 1 {
		t.Fatalf("expected 1 pending transaction, got %d", len(node.PendingTransactions()))
	}
	if !node.CheckPendingValidity() {
		t.Fatal("expected pending pool to be valid")
	}

	block := mustMine(t, node)
	if block.Index != 2 {
		t.Fatalf("expected block 2, got %d", block.Index)
	}
	if len(node.PendingTransactions()) != 0 {
		t.Fatal("Mine must clear the pending pool")
	}

	chain := node.DumpChain()
	if len(chain) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(chain))
	}
	if err := node.Audit(); err != nil {
		t.Fatalf("expected valid chain: %v", err)
	}
	if got := node.BalanceOf("Bob"); got != 1 {
		t.Fatalf("expected Bob to have 1, got %v", got)
	}
	if got := node.Balance(); got != 2*ledger.MiningReward-1 {
		t.Fatalf("expected Max to have %v, got %v", 2*ledger.MiningReward-1, got)
	}

	participants := node.DumpParticipants()
	if len(participants) != 2 || participants[0] != "Bob" || participants[1] != "Max" {
		t.Fatalf("expected [Bob Max], got %v", participants)
	}
}

func TestSubmitTransactionRejected(t *testing.T) {
	node, _ := newTestNode("Max")

	err := node.SubmitTransaction("Bob", 1)
	if !errors.Is(err, ledger.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	if len(node.PendingTransactions()) != 0 {
		t.Fatal("rejected transaction reached the pool")
	}
}

// TestMineCancelledKeepsPool verifies that an interrupted mining run leaves
// the pending transactions in place for the next attempt.
func TestMineCancelledKeepsPool(t *testing.T) {
	node, l := newTestNode("Max")
	mustMine(t, node)
	if err := node.SubmitTransaction("Bob", 3); err != nil {
		t.Fatalf("expected transaction to be admitted: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := node.Mine(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(node.PendingTransactions()) != 1 {
		t.Fatalf("expected pool to be kept, got %d transactions", len(node.PendingTransactions()))
	}
	if l.Len() != 2 {
		t.Fatalf("expected 2 blocks, got %d", l.Len())
	}

	mustMine(t, node)
	if got := node.BalanceOf("Bob"); got != 3 {
		t.Fatalf("expected Bob to have 3, got %v", got)
	}
}

// TestAuditHaltsNode verifies that a failed audit is terminal: the node
// refuses every later mutating command.
func TestAuditHaltsNode(t *testing.T) {
	l := ledger.New("Max", ledger.WithLogger(discardLogger()))
	honest := NewNode(l, WithLogger(discardLogger()))
	mustMine(t, honest)
	mustMine(t, honest)

	node := NewNode(tamperedLedger{
		Ledger: l,
		mutate: func(b []ledger.Block) { b[1].Transactions[0].Recipient = "Eve" },
	}, WithLogger(discardLogger()))

	err := node.Audit()
	if !errors.Is(err, ErrHalted) {
		t.Fatalf("expected ErrHalted, got %v", err)
	}
	if !errors.Is(err, ledger.ErrBrokenLink) {
		t.Fatalf("expected the cause to be ErrBrokenLink, got %v", err)
	}
	if !node.Halted() {
		t.Fatal("expected node to be halted")
	}

	if err := node.SubmitTransaction("Bob", 1); !errors.Is(err, ErrHalted) {
		t.Fatalf("expected ErrHalted from SubmitTransaction, got %v", err)
	}
	if _, err := node.Mine(context.Background()); !errors.Is(err, ErrHalted) {
		t.Fatalf("expected ErrHalted from Mine, got %v", err)
	}
	if err := node.Audit(); !errors.Is(err, ErrHalted) {
		t.Fatalf("expected audit to stay failed, got %v", err)
	}
	if l.Len() != 3 {
		t.Fatalf("halted node must not mine, chain has %d blocks", l.Len())
	}

	// The untampered view of the same ledger is still fine.
	if err := honest.Audit(); err != nil {
		t.Fatalf("expected honest node to pass: %v", err)
	}
}

// TestNodeConcurrentCommands fires submissions and mining from several
// goroutines and checks that the result is still a valid chain in which no
// funds were created or lost.
func TestNodeConcurrentCommands(t *testing.T) {
	node, l := newTestNode("Max")
	mustMine(t, node)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Rejections are fine, only mining must succeed.
			_ = node.SubmitTransaction("Bob", 1)
			if _, err := node.Mine(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent mining failed: %v", err)
	}

	if err := node.Audit(); err != nil {
		t.Fatalf("expected valid chain: %v", err)
	}
	if l.Len() != workers+2 {
		t.Fatalf("expected %d blocks, got %d", workers+2, l.Len())
	}
	total := node.Balance() + node.BalanceOf("Bob")
	if total != float64(workers+1)*ledger.MiningReward {
		t.Fatalf("expected total supply %v, got %v", float64(workers+1)*ledger.MiningReward, total)
	}
	for i, b := range node.DumpChain() {
		if b.Index != i {
			t.Fatalf("block at position %d has index %d", i, b.Index)
		}
	}
}
