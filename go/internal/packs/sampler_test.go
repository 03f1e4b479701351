package packs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/leaguefc/go/internal/models"
)

func TestDrawRatingNormalisesOdds(t *testing.T) {
	s := NewSampler(uuid.MustParse("6f1c2a8e-3b0d-4c1e-9a57-2d8e4f6b1c03"))
	odds := []models.RatingOdds{{Rating: 90, Probability: 1}, {Rating: 70, Probability: 3}}

	const trials = 20000
	counts := map[int]int{}
	for range trials {
		counts[s.DrawRating(odds)]++
	}

	assert.Len(t, counts, 2)
	assert.InDelta(t, 0.25, float64(counts[90])/trials, 0.02)
	assert.InDelta(t, 0.75, float64(counts[70])/trials, 0.02)
}

func TestDrawRatingFallsBackToMostLikely(t *testing.T) {
	s := NewSampler(uuid.New())
	odds := []models.RatingOdds{{Rating: 60, Probability: 0}, {Rating: 85, Probability: 0}}
	assert.Equal(t, 60, s.DrawRating(odds))

	odds = []models.RatingOdds{{Rating: 60, Probability: -1}, {Rating: 85, Probability: 0}}
	assert.Equal(t, 85, s.DrawRating(odds))

	assert.Zero(t, s.DrawRating(nil))
}

func TestDrawRatingSkipsZeroWeights(t *testing.T) {
	s := NewSampler(uuid.New())
	odds := []models.RatingOdds{{Rating: 99, Probability: 0}, {Rating: 75, Probability: 2}}
	for range 500 {
		assert.Equal(t, 75, s.DrawRating(odds))
	}
}

func TestSamplerReplaysFromSeed(t *testing.T) {
	seed := uuid.New()
	a, b := NewSampler(seed), NewSampler(seed)
	odds := []models.RatingOdds{{Rating: 80, Probability: 1}, {Rating: 70, Probability: 1}, {Rating: 60, Probability: 1}}

	for range 100 {
		assert.Equal(t, a.DrawRating(odds), b.DrawRating(odds))
		assert.Equal(t, a.DrawPosition(), b.DrawPosition())
		assert.Equal(t, a.Pick(17), b.Pick(17))
	}
}

func TestDrawPositionCoversVocabulary(t *testing.T) {
	s := NewSampler(uuid.New())
	seen := map[string]bool{}
	for range 2000 {
		seen[s.DrawPosition()] = true
	}
	assert.Len(t, seen, len(Positions))
}
