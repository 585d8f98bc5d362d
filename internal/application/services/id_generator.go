package services

import (
	"fmt"
	"strings"

	"github.com/queueaway/queueaway/internal/domain/providers"
)

const (
	queueIDPrefix       = "QA"
	queueIDAlphabet     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	queueIDSuffixLength = 6
)

// IDGenerator produces queue identifiers and member tokens from an
// injected random source.
type IDGenerator struct {
	rng providers.RandomSource
}

// NewIDGenerator creates a new ID generator
func NewIDGenerator(rng providers.RandomSource) *IDGenerator {
	return &IDGenerator{rng: rng}
}

// QueueID returns a fresh queue identifier: the "QA" prefix followed by
// six uppercase alphanumeric characters. Uniqueness is probabilistic,
// not checked against existing records.
func (g *IDGenerator) QueueID() string {
	var b strings.Builder
	b.WriteString(queueIDPrefix)
	for i := 0; i < queueIDSuffixLength; i++ {
		b.WriteByte(queueIDAlphabet[g.rng.Intn(len(queueIDAlphabet))])
	}
	return b.String()
}

// Token returns a member token: one uppercase letter followed by a
// three digit number in [100, 999].
func (g *IDGenerator) Token() string {
	letter := rune('A' + g.rng.Intn(26))
	number := 100 + g.rng.Intn(900)
	return fmt.Sprintf("%c%d", letter, number)
}
