package ledger

import (
	"fmt"
	"math"
)

// Balance returns what participant received in confirmed blocks minus what it
// sent in confirmed blocks and in the pending pool. Unknown participants have
// a zero balance.
func (l *Ledger) Balance(participant string) float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balance(participant)
}

func (l *Ledger) balance(participant string) float64 {
	balance := l.confirmedBalance(participant)
	for _, tx := range l.pending {
		if tx.Sender == participant {
			balance -= tx.Amount
		}
	}
	return balance
}

// confirmedBalance ignores the pending pool entirely.
func (l *Ledger) confirmedBalance(participant string) float64 {
	var received, sent float64
	for _, b := range l.blocks {
		for _, tx := range b.Transactions {
			if tx.Recipient == participant {
				received += tx.Amount
			}
			if tx.Sender == participant {
				sent += tx.Amount
			}
		}
	}
	return received - sent
}

// Admit validates a transfer and, if the sender can afford it, appends it to
// the pending pool and records both participants. The sender is not
// authenticated: any name is accepted.
func (l *Ledger) Admit(sender, recipient string, amount float64) error {
	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.init()

	balance := l.balance(sender)
	if balance < amount {
		l.logger.Warn("transaction rejected",
			"sender", sender,
			"recipient", recipient,
			"amount", amount,
			"balance", balance)
		return fmt.Errorf("%w: %s has %v, needs %v", ErrInsufficientBalance, sender, balance, amount)
	}

	l.pending = append(l.pending, Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	})
	l.participants[sender] = struct{}{}
	l.participants[recipient] = struct{}{}

	l.logger.Debug("transaction admitted",
		"sender", sender,
		"recipient", recipient,
		"amount", amount)
	return nil
}

// Submit is Admit reduced to a success flag. Rejections are silent.
func (l *Ledger) Submit(sender, recipient string, amount float64) bool {
	return l.Admit(sender, recipient, amount) == nil
}
