package postgres

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fr76/bankledger/internal/domain"
)

// RandomNumberGenerator produces candidate account numbers in the
// FR76 + 12 digit format. Candidates are random, not sequential, so
// collisions are possible and the caller must check uniqueness.
type RandomNumberGenerator struct{}

// NewRandomNumberGenerator creates a new RandomNumberGenerator.
func NewRandomNumberGenerator() *RandomNumberGenerator {
	return &RandomNumberGenerator{}
}

var digitCeiling = new(big.Int).Exp(big.NewInt(10), big.NewInt(domain.AccountNumberDigits), nil)

// Generate returns a candidate account number, e.g. "FR76004521873940".
// It panics if the system's secure random source is unavailable, like
// ulid.Make does.
func (g *RandomNumberGenerator) Generate() string {
	n, err := rand.Int(rand.Reader, digitCeiling)
	if err != nil {
		panic(err)
	}

	return fmt.Sprintf("%s%0*d", domain.AccountNumberPrefix, domain.AccountNumberDigits, n)
}
