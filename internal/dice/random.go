package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand"
)

// Roller draws one die face uniformly from [1, sides]. Implementations must
// be safe for concurrent use unless documented otherwise.
type Roller interface {
	Roll(sides int) int
}

// CryptoRoller draws faces from crypto/rand. This is the production source;
// it cannot be seeded and has no modulo bias.
type CryptoRoller struct{}

// Roll returns a uniform face in [1, sides].
func (CryptoRoller) Roll(sides int) int {
	n, err := crand.Int(crand.Reader, big.NewInt(int64(sides)))
	if err != nil {
		// crypto/rand only fails when the OS entropy source is broken.
		// A dice roll must never silently degrade to a predictable value.
		panic(fmt.Sprintf("dice: crypto rand failed: %v", err))
	}
	return int(n.Int64()) + 1
}

// SeededRoller draws faces from a seeded math/rand source. It exists for
// tests and replay only and is not safe for concurrent use.
type SeededRoller struct {
	rng *mrand.Rand
}

// NewSeededRoller returns a deterministic Roller for the given seed.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: mrand.New(mrand.NewSource(seed))}
}

// Roll returns the next face in [1, sides] from the seeded stream.
func (r *SeededRoller) Roll(sides int) int {
	return r.rng.Intn(sides) + 1
}

// NewSeed generates a random seed from crypto/rand, for callers that want a
// reproducible SeededRoller with an unpredictable starting point.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
