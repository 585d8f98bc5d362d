package providers

// RandomSource supplies the randomness behind queue simulation: the
// initial position draw, the per-tick advance chance, and identifier
// generation. *math/rand.Rand satisfies it; tests inject seeded or
// deterministic sources to make simulator behavior reproducible.
type RandomSource interface {
	// Intn returns a uniform int in [0, n)
	Intn(n int) int

	// Float64 returns a uniform float64 in [0, 1)
	Float64() float64
}
