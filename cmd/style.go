package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/luca-patrignani/pow-ledger/consensus"
	"github.com/luca-patrignani/pow-ledger/ledger"
	"github.com/luca-patrignani/pow-ledger/wallet"
)

func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

// describeTransaction renders a transaction on a single line.
func describeTransaction(tx ledger.Transaction) string {
	line := pterm.Sprintf("%s -> %s: %s", tx.Sender, pterm.LightCyan(tx.Recipient), formatAmount(tx.Amount))
	if tx.Reward {
		line += " " + pterm.LightYellow("(reward)")
	}
	return line
}

func blockBox(b ledger.Block) string {
	pbox := pterm.DefaultBox.WithLeftPadding(4).WithRightPadding(4).WithTopPadding(1).WithBottomPadding(1)
	prev := b.PreviousHash
	if prev == "" {
		prev = "-"
	}
	var txs strings.Builder
	if len(b.Transactions) == 0 {
		txs.WriteString("no transactions")
	}
	for i, tx := range b.Transactions {
		if i > 0 {
			txs.WriteByte('\n')
		}
		txs.WriteString(describeTransaction(tx))
	}
	title := pterm.LightGreen("|BLOCK " + strconv.Itoa(b.Index) + "|")
	return pbox.WithTitle(title).WithTitleTopLeft().Sprintf(
		"Hash: %s\nPrevious: %s\nProof: %d\n\n%s",
		ledger.HashBlock(b), prev, b.Proof, txs.String())
}

func printChain(blocks []ledger.Block) {
	pterm.DefaultSection.Printfln("Blockchain (%d blocks)", len(blocks))
	for _, b := range blocks {
		pterm.Println(blockBox(b))
	}
}

func participantsTable(node *consensus.Node) pterm.TableData {
	data := pterm.TableData{{"Participant", "Balance"}}
	for _, p := range node.DumpParticipants() {
		data = append(data, []string{p, formatAmount(node.BalanceOf(p))})
	}
	return data
}

func printParticipants(node *consensus.Node) error {
	data := participantsTable(node)
	if len(data) == 1 {
		pterm.Info.Println("No participants yet")
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printWallet(w *wallet.Wallet) {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	pterm.Println(pbox.WithTitle(pterm.LightYellow("|WALLET|")).WithTitleTopCenter().Sprintf(
		"Public key: %s\nPrivate key: %s", shorten(w.PublicKey), shorten(w.PrivateKey)))
}

// shorten keeps long keys readable on a terminal.
func shorten(key string) string {
	if len(key) <= 32 {
		return key
	}
	return key[:16] + "..." + key[len(key)-16:]
}
