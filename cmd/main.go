package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/luca-patrignani/pow-ledger/consensus"
	"github.com/luca-patrignani/pow-ledger/ledger"
	"github.com/luca-patrignani/pow-ledger/wallet"
)

const defaultWalletFile = "wallet.txt"

const (
	optTransaction  = "Add a new transaction value"
	optMine         = "Mine a new block"
	optChain        = "Output the blockchain blocks"
	optParticipants = "Output participants"
	optValidity     = "Check transaction validity"
	optCreateWallet = "Create wallet"
	optLoadWallet   = "Load wallet"
	optSaveWallet   = "Save wallet"
	optQuit         = "Quit"
)

var menu = []string{
	optTransaction,
	optMine,
	optChain,
	optParticipants,
	optValidity,
	optCreateWallet,
	optLoadWallet,
	optSaveWallet,
	optQuit,
}

// session bundles what one run of the menu works on.
type session struct {
	node       *consensus.Node
	wallet     *wallet.Wallet
	walletPath string
	logger     *slog.Logger
}

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [wallet file]\n", os.Args[0])
		os.Exit(1)
	}
	walletPath := defaultWalletFile
	if len(os.Args) == 2 {
		walletPath = os.Args[1]
	}

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("P", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("o", pterm.FgDarkGray.ToStyle()),
		putils.LettersFromStringWithStyle("W ", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Ledger", pterm.FgDarkGray.ToStyle()),
	).Render()

	owner, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter your username").Show()
	owner = strings.TrimSpace(owner)
	if owner == "" {
		logger.Error("username must not be empty")
		os.Exit(1)
	}
	pterm.Println()
	pterm.Info.Printfln("Mining rewards go to %s", pterm.LightCyan(owner))

	s := &session{
		node: consensus.NewNode(
			ledger.New(owner, ledger.WithLogger(logger)),
			consensus.WithLogger(logger),
		),
		wallet:     wallet.New(wallet.WithLogger(logger)),
		walletPath: walletPath,
		logger:     logger,
	}

	for {
		choice, err := pterm.DefaultInteractiveSelect.WithDefaultText("Please choose").WithOptions(menu).Show()
		if err != nil {
			logger.Error("failed to read choice", "error", err)
			break
		}
		if choice == optQuit {
			break
		}
		if err := s.run(choice); err != nil {
			pterm.Error.Println(err.Error())
		}
		if err := s.node.Audit(); err != nil {
			pterm.Error.Println("Invalid blockchain!")
			os.Exit(1)
		}
		pterm.Info.Printfln("Balance of %s: %s", owner, formatAmount(s.node.Balance()))
	}
	pterm.Success.Println("Done!")
}

// run executes one menu command. Interactive input is only read here, the
// actual work happens in the helpers below so it can be tested.
func (s *session) run(choice string) error {
	switch choice {
	case optTransaction:
		recipient, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Enter the recipient of the transaction").Show()
		amount, _ := pterm.DefaultInteractiveTextInput.WithDefaultText("Your transaction amount please").Show()
		return s.submit(recipient, amount)
	case optMine:
		return s.mine()
	case optChain:
		printChain(s.node.DumpChain())
		return nil
	case optParticipants:
		return printParticipants(s.node)
	case optValidity:
		s.checkValidity()
		return nil
	case optCreateWallet:
		return s.createWallet()
	case optLoadWallet:
		return s.loadWallet()
	case optSaveWallet:
		return s.saveWallet()
	default:
		return fmt.Errorf("unknown command %q", choice)
	}
}

func (s *session) submit(recipient, rawAmount string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return errors.New("recipient must not be empty")
	}
	amount, err := parseAmount(rawAmount)
	if err != nil {
		return err
	}
	if err := s.node.SubmitTransaction(recipient, amount); err != nil {
		if errors.Is(err, ledger.ErrInsufficientBalance) {
			return fmt.Errorf("transaction failed: %w", err)
		}
		return err
	}
	pterm.Success.Printfln("Added transaction of %s to %s", formatAmount(amount), recipient)
	return nil
}

// mine runs the proof of work until it succeeds or the user presses Ctrl-C.
func (s *session) mine() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.mineWithContext(ctx)
}

func (s *session) mineWithContext(ctx context.Context) error {
	spinner, _ := pterm.DefaultSpinner.Start("Mining a new block (Ctrl-C to stop) ...")
	block, err := s.node.Mine(ctx)
	if err != nil {
		spinner.Fail("Mining stopped")
		return err
	}
	spinner.Success(fmt.Sprintf("Mined block %d with proof %d", block.Index, block.Proof))
	return nil
}

func (s *session) checkValidity() bool {
	if s.node.CheckPendingValidity() {
		pterm.Success.Println("All transactions are valid")
		return true
	}
	pterm.Warning.Println("There are invalid transactions")
	return false
}

func (s *session) createWallet() error {
	if err := s.wallet.CreateKeys(); err != nil {
		return err
	}
	pterm.Success.Printfln("Created %s keys", s.wallet.Scheme())
	printWallet(s.wallet)
	return nil
}

func (s *session) loadWallet() error {
	if err := s.wallet.LoadKeys(s.walletPath); err != nil {
		return err
	}
	pterm.Success.Printfln("Loaded keys from %s", s.walletPath)
	printWallet(s.wallet)
	return nil
}

func (s *session) saveWallet() error {
	if err := s.wallet.SaveKeys(s.walletPath); err != nil {
		return err
	}
	pterm.Success.Printfln("Saved keys to %s", s.walletPath)
	return nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return amount, nil
}
