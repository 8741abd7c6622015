package ledger

const (
	// MiningSender is the sender name of every reward transaction.
	MiningSender = "MINING"
	// MiningReward is the amount credited to the owner for each mined block.
	MiningReward = 10.0
	// GenesisProof is the hard-coded proof of the genesis block.
	GenesisProof = 100
)

// Transaction moves Amount from Sender to Recipient. Reward marks the
// synthetic transaction that credits the miner of a block.
type Transaction struct {
	Sender    string  `json:"sender"`
	Recipient string  `json:"recipient"`
	Amount    float64 `json:"amount"`
	Reward    bool    `json:"reward"`
}

// Block is a batch of transactions linked to the previous block by its hash.
// The field order is part of the hash and must not change.
type Block struct {
	PreviousHash string        `json:"previous_hash"`
	Index        int           `json:"index"`
	Transactions []Transaction `json:"transactions"`
	Proof        uint64        `json:"proof"`
}

// Genesis returns the fixed first block of every chain.
func Genesis() Block {
	return Block{
		PreviousHash: "",
		Index:        0,
		Transactions: []Transaction{},
		Proof:        GenesisProof,
	}
}

// regular returns the transactions of txs that are not mining rewards, in order.
func regular(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Reward {
			out = append(out, tx)
		}
	}
	return out
}

func (b Block) clone() Block {
	c := b
	c.Transactions = make([]Transaction, len(b.Transactions))
	copy(c.Transactions, b.Transactions)
	return c
}
