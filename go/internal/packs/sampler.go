package packs

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/mcdev12/leaguefc/go/internal/models"
)

// Positions is the vocabulary a pack slot draws its position from
var Positions = []string{"GK", "CB", "LB", "RB", "CDM", "CM", "CAM", "LM", "RM", "LW", "RW", "ST", "CF"}

// Sampler draws pack slots from a PCG stream seeded by the purchase seed, so a
// purchase replays exactly against an unchanged catalog.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler seeds a sampler from the two 64-bit halves of seed
func NewSampler(seed uuid.UUID) *Sampler {
	hi := binary.BigEndian.Uint64(seed[:8])
	lo := binary.BigEndian.Uint64(seed[8:])
	return &Sampler{rng: rand.New(rand.NewPCG(hi, lo))}
}

// DrawRating makes a weighted draw from an odds table whose probabilities
// need not sum to 1. Returns 0 for an empty table.
func (s *Sampler) DrawRating(odds []models.RatingOdds) int {
	if len(odds) == 0 {
		return 0
	}

	var total float64
	for _, o := range odds {
		if o.Probability > 0 {
			total += o.Probability
		}
	}
	if total <= 0 {
		return mostLikely(odds)
	}

	u := s.rng.Float64()
	var cumulative float64
	for _, o := range odds {
		if o.Probability <= 0 {
			continue
		}
		cumulative += o.Probability / total
		if cumulative >= u {
			return o.Rating
		}
	}
	return mostLikely(odds)
}

// DrawPosition picks a position uniformly
func (s *Sampler) DrawPosition() string {
	return Positions[s.rng.IntN(len(Positions))]
}

// Pick returns a uniform index in [0,n)
func (s *Sampler) Pick(n int) int {
	return s.rng.IntN(n)
}

func mostLikely(odds []models.RatingOdds) int {
	best := odds[0]
	for _, o := range odds[1:] {
		if o.Probability > best.Probability {
			best = o
		}
	}
	return best.Rating
}
