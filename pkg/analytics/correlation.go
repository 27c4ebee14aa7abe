package analytics

import (
	"math"
	"sort"

	"droscher.com/BrewJournal/pkg/model"
)

const (
	minBucketSamples  = 2
	temperatureBucket = 5.0
	brewTimeBucket    = 30
)

type RatingBucket struct {
	Key           float64 `json:"key"`
	AverageRating float64 `json:"averageRating"`
	SampleCount   int     `json:"sampleCount"`
}

type CorrelationReport struct {
	GrindSize        []RatingBucket `json:"grindSize"`
	WaterTemperature []RatingBucket `json:"waterTemperature"`
	BrewTime         []RatingBucket `json:"brewTime"`

	// OverallCorrelationStrength is the unweighted mean of the population
	// variance of each grouping's bucket averages. It is a house heuristic,
	// not a correlation coefficient, and its exact formula is part of the
	// API contract.
	OverallCorrelationStrength float64 `json:"overallCorrelationStrength"`
}

// BuildCorrelations groups rated sessions by grind size, temperature bucket
// (nearest lower multiple of 5) and brew-time bucket (nearest lower multiple
// of 30s). Buckets with fewer than 2 samples are dropped.
func BuildCorrelations(sessions []*model.BrewSession) *CorrelationReport {
	report := &CorrelationReport{
		GrindSize:        []RatingBucket{},
		WaterTemperature: []RatingBucket{},
		BrewTime:         []RatingBucket{},
	}

	rated := ratedSessions(sessions)
	if len(rated) == 0 {
		return report
	}

	report.GrindSize = bucketize(rated, func(session *model.BrewSession) float64 {
		return float64(session.GrindSetting.GrindSize)
	})
	report.WaterTemperature = bucketize(rated, func(session *model.BrewSession) float64 {
		return math.Floor(session.WaterTemperature/temperatureBucket) * temperatureBucket
	})
	report.BrewTime = bucketize(rated, func(session *model.BrewSession) float64 {
		return float64(session.BrewTimeSeconds / brewTimeBucket * brewTimeBucket)
	})

	report.OverallCorrelationStrength = overallStrength(
		report.GrindSize, report.WaterTemperature, report.BrewTime)

	return report
}

func ratedSessions(sessions []*model.BrewSession) []*model.BrewSession {
	rated := make([]*model.BrewSession, 0, len(sessions))

	for _, session := range sessions {
		if session.Rated() {
			rated = append(rated, session)
		}
	}

	return rated
}

func bucketize(sessions []*model.BrewSession, keyOf func(*model.BrewSession) float64) []RatingBucket {
	type acc struct {
		sum   float64
		count int
	}

	groups := map[float64]*acc{}

	for _, session := range sessions {
		key := keyOf(session)

		group, ok := groups[key]
		if !ok {
			group = &acc{}
			groups[key] = group
		}

		group.sum += float64(*session.Rating)
		group.count++
	}

	buckets := make([]RatingBucket, 0, len(groups))

	for key, group := range groups {
		if group.count < minBucketSamples {
			continue
		}

		buckets = append(buckets, RatingBucket{
			Key:           key,
			AverageRating: group.sum / float64(group.count),
			SampleCount:   group.count,
		})
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })

	return buckets
}

func overallStrength(groupings ...[]RatingBucket) float64 {
	varianceSum := 0.0
	contributors := 0

	for _, buckets := range groupings {
		if len(buckets) < 2 {
			continue
		}

		means := make([]float64, 0, len(buckets))
		for _, bucket := range buckets {
			means = append(means, bucket.AverageRating)
		}

		varianceSum += populationVariance(means)
		contributors++
	}

	if contributors == 0 {
		return 0
	}

	return varianceSum / float64(contributors)
}

func populationVariance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, value := range values {
		mean += value
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, value := range values {
		deviation := value - mean
		variance += deviation * deviation
	}

	return variance / float64(len(values))
}
