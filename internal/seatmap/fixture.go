package seatmap

import "math/rand/v2"

// DefaultOccupancy is the share of seats the demo fixture marks as sold.
const DefaultOccupancy = 0.2

// Randomize marks each seat occupied with the given probability and returns
// how many seats it flipped. It exists for seeding demo data only.
func Randomize(g Grid, rng *rand.Rand, probability float64) int {
	flipped := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c].Occupied {
				continue
			}
			if rng.Float64() < probability {
				g[r][c].Occupied = true
				flipped++
			}
		}
	}
	return flipped
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
