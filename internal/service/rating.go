package service

import (
	"fmt"
	"math"
	"strings"

	"lexisnap/internal/model"
)

// Canonical rating buckets. Answer labels normalize into exactly one of
// these; anything unmapped is rejected at the boundary.
const (
	RatingFamiliar   = "familiar"
	RatingSimple     = "simple"
	RatingUnfamiliar = "unfamiliar"
)

const (
	initialIntervalMinutes = 10
	initialEasiness        = 2.5
	minEasiness            = 1.3
	maxEasiness            = 2.8
)

type ratingPolicy struct {
	easeDelta    float64
	multiplier   float64
	floorMinutes int
}

var ratingPolicies = map[string]ratingPolicy{
	RatingFamiliar:   {easeDelta: 0.15, multiplier: 2.2, floorMinutes: 1440},
	RatingSimple:     {easeDelta: 0.05, multiplier: 1.4, floorMinutes: 720},
	RatingUnfamiliar: {easeDelta: -0.30, multiplier: 0.5, floorMinutes: 10},
}

// ratingSynonyms maps accepted answer labels, including the Chinese UI
// labels, to their canonical bucket.
var ratingSynonyms = map[string]string{
	"easy":   RatingFamiliar,
	"good":   RatingSimple,
	"ok":     RatingSimple,
	"normal": RatingSimple,
	"again":  RatingUnfamiliar,
	"hard":   RatingUnfamiliar,
	"fail":   RatingUnfamiliar,
	"熟悉":     RatingFamiliar,
	"简单":     RatingSimple,
	"生词":     RatingUnfamiliar,
}

// normalizeRating resolves an answer label to its canonical bucket.
func normalizeRating(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("%w: empty rating", model.ErrUnsupportedRating)
	}
	if canonical, ok := ratingSynonyms[trimmed]; ok {
		return canonical, nil
	}
	lowered := strings.ToLower(trimmed)
	if _, ok := ratingPolicies[lowered]; ok {
		return lowered, nil
	}
	if canonical, ok := ratingSynonyms[lowered]; ok {
		return canonical, nil
	}
	return "", fmt.Errorf("%w: %s", model.ErrUnsupportedRating, raw)
}

func clampEasiness(value float64) float64 {
	return math.Min(maxEasiness, math.Max(minEasiness, value))
}

// nextSchedule computes the next interval and easiness after an answer.
// An unfamiliar answer always hard-resets the interval to its floor,
// ignoring prior progress; the other buckets grow the previous interval by
// their multiplier, bounded below by the bucket floor.
func nextSchedule(prevIntervalMinutes int, easiness float64, bucket string) (int, float64) {
	policy := ratingPolicies[bucket]

	if bucket == RatingUnfamiliar {
		return policy.floorMinutes, clampEasiness(easiness + policy.easeDelta)
	}

	base := prevIntervalMinutes
	if base <= 0 {
		base = policy.floorMinutes
	}
	interval := int(math.Round(float64(base) * policy.multiplier))
	if interval < policy.floorMinutes {
		interval = policy.floorMinutes
	}
	return interval, clampEasiness(easiness + policy.easeDelta)
}
