package analysis

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// MetricScorer supplies the scores no rule can derive. Implementations must
// be deterministic for a given seed.
type MetricScorer interface {
	// Metric returns a score in [40, 90) for the named metric.
	Metric(seed uint64, name string) int
	// SkinAge returns an apparent age in [20, 45).
	SkinAge(seed uint64) int
}

// HashScorer spreads the seed over the allowed ranges with xxhash. Equal
// inputs always produce equal scores.
type HashScorer struct{}

func (HashScorer) Metric(seed uint64, name string) int {
	return 40 + int(mix(seed, name)%50)
}

func (HashScorer) SkinAge(seed uint64) int {
	return 20 + int(mix(seed, "age")%25)
}

func mix(seed uint64, name string) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(name)
	return d.Sum64()
}

func scoreMetrics(s MetricScorer, seed uint64, hydration int) HealthMetrics {
	return HealthMetrics{
		Texture:      s.Metric(seed, "texture"),
		Pores:        s.Metric(seed, "pores"),
		Redness:      s.Metric(seed, "redness"),
		Pigmentation: s.Metric(seed, "pigmentation"),
		Wrinkles:     s.Metric(seed, "wrinkles"),
		Hydration:    hydration,
	}
}
