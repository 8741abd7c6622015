package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// hashString returns the hex encoded SHA-256 digest of s.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// HashBlock computes the SHA-256 digest of the canonical form of a block.
// The form is JSON-like text with strings quoted by strconv.Quote, so it is
// not guaranteed to be valid JSON. Every field is encoded in declaration order, so any change to the block,
// including the order of its transactions, produces a different digest.
func HashBlock(block Block) string {
	var sb strings.Builder
	sb.WriteString(`{"previous_hash":`)
	sb.WriteString(strconv.Quote(block.PreviousHash))
	sb.WriteString(`,"index":`)
	sb.WriteString(strconv.Itoa(block.Index))
	sb.WriteString(`,"transactions":`)
	writeTransactions(&sb, block.Transactions)
	sb.WriteString(`,"proof":`)
	sb.WriteString(strconv.FormatUint(block.Proof, 10))
	sb.WriteByte('}')
	return hashString(sb.String())
}

// writeTransactions appends the canonical encoding of txs to sb. A nil slice
// and an empty slice encode the same way.
func writeTransactions(sb *strings.Builder, txs []Transaction) {
	sb.WriteByte('[')
	for i, tx := range txs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(`{"sender":`)
		sb.WriteString(strconv.Quote(tx.Sender))
		sb.WriteString(`,"recipient":`)
		sb.WriteString(strconv.Quote(tx.Recipient))
		sb.WriteString(`,"amount":`)
		sb.WriteString(strconv.FormatFloat(tx.Amount, 'g', -1, 64))
		sb.WriteString(`,"reward":`)
		sb.WriteString(strconv.FormatBool(tx.Reward))
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
}
