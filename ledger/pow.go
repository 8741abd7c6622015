package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// DifficultyPrefix is the prefix a proof digest must start with. Two hex
// zeros give an 8 bit target, on average one hit every 256 nonces.
const DifficultyPrefix = "00"

// Satisfies reports whether nonce is a valid proof for txs on top of the block
// whose hash is referenceHash.
func Satisfies(txs []Transaction, referenceHash string, nonce uint64) bool {
	var sb strings.Builder
	writeTransactions(&sb, txs)
	sb.WriteString(referenceHash)
	sb.WriteString(strconv.FormatUint(nonce, 10))
	return strings.HasPrefix(hashString(sb.String()), DifficultyPrefix)
}

// Solve returns the smallest nonce that satisfies the proof of work for txs and
// referenceHash. The search has no upper bound; it stops early only when ctx
// is done, in which case the context error is returned.
func Solve(ctx context.Context, txs []Transaction, referenceHash string) (uint64, error) {
	var nonce uint64
	for {
		if err := ctx.Err(); err != nil {
			return 0, fmt.Errorf("proof of work interrupted at nonce %d: %w", nonce, err)
		}
		if Satisfies(txs, referenceHash, nonce) {
			return nonce, nil
		}
		nonce++
	}
}
