package domain

// RNG abstracts random number generation for deterministic testing.
type RNG interface {
	// Intn returns a non-negative random int in [0, n).
	Intn(n int) int
}

// Coin is a single toss outcome. Heads is yang-aligned, tails yin-aligned.
type Coin bool

const (
	Heads Coin = true
	Tails Coin = false
)

func (c Coin) String() string {
	if c == Heads {
		return "heads"
	}
	return "tails"
}

// points is the traditional count: 3 for heads, 2 for tails.
func (c Coin) points() int {
	if c == Heads {
		return 3
	}
	return 2
}

// CoinSource draws fair coins from an RNG. It keeps no state of its own
// between calls.
type CoinSource struct {
	rng RNG
}

func NewCoinSource(rng RNG) CoinSource {
	return CoinSource{rng: rng}
}

// Flip returns one fair coin.
func (s CoinSource) Flip() Coin {
	return s.rng.Intn(2) == 1
}

// Toss returns three independent coins, one line's worth.
func (s CoinSource) Toss() [3]Coin {
	return [3]Coin{s.Flip(), s.Flip(), s.Flip()}
}

// CastLine tosses three coins and resolves them into a line.
func (s CoinSource) CastLine() (Line, error) {
	return ResolveLine(s.Toss())
}

// CastLines casts n lines in casting order, bottom line first.
func (s CoinSource) CastLines(n int) ([]Line, error) {
	lines := make([]Line, 0, n)
	for range n {
		l, err := s.CastLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, nil
}
