// Package wallet generates and stores a key pair for a ledger participant.
// The keys are not used by the ledger: transactions carry plain names.
package wallet

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"go.dedis.ch/kyber/v4/suites"
)

// Scheme selects the signature scheme used to generate keys.
type Scheme string

const (
	SchemeEd25519    Scheme = "ed25519"
	SchemeDilithium3 Scheme = "dilithium3"
)

var (
	ErrNoKeys         = errors.New("wallet has no keys")
	ErrLoadFailed     = errors.New("loading wallet failed")
	ErrSaveFailed     = errors.New("saving wallet failed")
	ErrUnknownScheme  = errors.New("unknown key scheme")
	ErrKeysMismatched = errors.New("public key does not match private key")
)

var suite = suites.MustFind("Ed25519")

// Wallet holds a hex encoded key pair. Both keys are empty until CreateKeys
// or LoadKeys succeeds.
type Wallet struct {
	PublicKey  string
	PrivateKey string

	scheme Scheme
	logger *slog.Logger
}

// Option configures a Wallet built by New.
type Option func(Wallet) Wallet

// New returns a wallet without keys. The default scheme is Ed25519.
func New(opts ...Option) *Wallet {
	w := Wallet{
		scheme: SchemeEd25519,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		w = opt(w)
	}
	return &w
}

func WithScheme(scheme Scheme) Option {
	return func(w Wallet) Wallet {
		w.scheme = scheme
		return w
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w Wallet) Wallet {
		w.logger = logger
		return w
	}
}

// Scheme returns the scheme used by CreateKeys and Check.
func (w *Wallet) Scheme() Scheme {
	return w.scheme
}

// HasKeys reports whether both keys are set.
func (w *Wallet) HasKeys() bool {
	return w.PublicKey != "" && w.PrivateKey != ""
}

// CreateKeys replaces the wallet's keys with a freshly generated pair.
func (w *Wallet) CreateKeys() error {
	var pub, priv []byte
	var err error
	switch w.scheme {
	case SchemeEd25519:
		pub, priv, err = generateEd25519()
	case SchemeDilithium3:
		pub, priv, err = generateDilithium3()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScheme, w.scheme)
	}
	if err != nil {
		return fmt.Errorf("key generation failed: %w", err)
	}
	w.PublicKey = hex.EncodeToString(pub)
	w.PrivateKey = hex.EncodeToString(priv)
	return nil
}

func generateEd25519() ([]byte, []byte, error) {
	priv := suite.Scalar().Pick(suite.RandomStream())
	pub := suite.Point().Mul(priv, nil)

	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	privBytes, err := priv.MarshalBinary()
	if err != nil {
		return nil, nil, err
	}
	return pubBytes, privBytes, nil
}

func generateDilithium3() ([]byte, []byte, error) {
	pub, priv, err := mode3.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return pub.Bytes(), priv.Bytes(), nil
}

// Check verifies that the public key is the one derived from the private key.
func (w *Wallet) Check() error {
	if !w.HasKeys() {
		return ErrNoKeys
	}
	pub, err := hex.DecodeString(w.PublicKey)
	if err != nil {
		return fmt.Errorf("invalid public key: %w", err)
	}
	priv, err := hex.DecodeString(w.PrivateKey)
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	var derived []byte
	switch w.scheme {
	case SchemeEd25519:
		s := suite.Scalar()
		if err := s.UnmarshalBinary(priv); err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}
		derived, err = suite.Point().Mul(s, nil).MarshalBinary()
		if err != nil {
			return err
		}
	case SchemeDilithium3:
		var sk mode3.PrivateKey
		if err := sk.UnmarshalBinary(priv); err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}
		derived = sk.Public().(*mode3.PublicKey).Bytes()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScheme, w.scheme)
	}

	if !bytes.Equal(derived, pub) {
		return ErrKeysMismatched
	}
	return nil
}

// SaveKeys writes the public and the private key to path, one per line.
// Failures are logged and returned; the wallet itself is not changed.
func (w *Wallet) SaveKeys(path string) error {
	if !w.HasKeys() {
		return ErrNoKeys
	}
	data := w.PublicKey + "\n" + w.PrivateKey
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		w.logger.Error("saving wallet failed", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	return nil
}

// LoadKeys reads a key pair written by SaveKeys. On failure the error is
// logged and returned, and the keys held by the wallet are left unchanged.
func (w *Wallet) LoadKeys(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error("loading wallet failed", "path", path, "error", err)
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\n")
	if len(lines) < 2 {
		w.logger.Error("loading wallet failed", "path", path, "error", "missing private key")
		return fmt.Errorf("%w: expected 2 lines, got %d", ErrLoadFailed, len(lines))
	}
	pub := strings.TrimSpace(lines[0])
	priv := strings.TrimSpace(lines[1])
	if pub == "" || priv == "" {
		w.logger.Error("loading wallet failed", "path", path, "error", "empty key")
		return fmt.Errorf("%w: empty key", ErrLoadFailed)
	}
	w.PublicKey = pub
	w.PrivateKey = priv
	return nil
}
