package analytics

import (
	"math"
	"sort"

	"droscher.com/BrewJournal/pkg/model"
)

const (
	ratingWeight   = 0.5
	favoriteWeight = 0.3
	usageWeight    = 0.2

	favoriteSaturation = 10.0
	usageSaturation    = 20.0
	maxRating          = 10.0
)

type EquipmentPerformance struct {
	EquipmentID      uint    `json:"equipmentId"`
	Name             string  `json:"name"`
	TotalUses        int     `json:"totalUses"`
	AverageRating    float64 `json:"averageRating"`
	FavoriteCount    int     `json:"favoriteCount"`
	PerformanceScore float64 `json:"performanceScore"`
}

type EquipmentPerformanceReport struct {
	Equipment      []EquipmentPerformance `json:"equipment"`
	BestPerforming *EquipmentPerformance  `json:"bestPerforming"`
	MostUsed       *EquipmentPerformance  `json:"mostUsed"`
}

// BuildEquipmentPerformance scores each piece of equipment over the sessions
// that reference it. The score saturates at 10 favorites and 20 uses so a
// well-rated newcomer is not drowned out by sheer volume.
func BuildEquipmentPerformance(sessions []*model.BrewSession) *EquipmentPerformanceReport {
	report := &EquipmentPerformanceReport{Equipment: []EquipmentPerformance{}}

	type acc struct {
		name                   string
		uses, favorites, rated int
		ratingSum              float64
	}

	groups := map[uint]*acc{}

	for _, session := range sessions {
		if session.BrewingEquipmentID == nil {
			continue
		}

		group, ok := groups[*session.BrewingEquipmentID]
		if !ok {
			group = &acc{}
			if session.BrewingEquipment != nil {
				group.name = session.BrewingEquipment.DisplayName()
			}
			groups[*session.BrewingEquipmentID] = group
		}

		group.uses++

		if session.Favorite {
			group.favorites++
		}

		if session.Rated() {
			group.rated++
			group.ratingSum += float64(*session.Rating)
		}
	}

	for equipmentID, group := range groups {
		entry := EquipmentPerformance{
			EquipmentID:   equipmentID,
			Name:          group.name,
			TotalUses:     group.uses,
			FavoriteCount: group.favorites,
		}

		if group.rated > 0 {
			entry.AverageRating = group.ratingSum / float64(group.rated)
		}

		entry.PerformanceScore = performanceScore(entry.AverageRating, entry.FavoriteCount, entry.TotalUses)

		report.Equipment = append(report.Equipment, entry)
	}

	sort.Slice(report.Equipment, func(i, j int) bool {
		if report.Equipment[i].PerformanceScore != report.Equipment[j].PerformanceScore {
			return report.Equipment[i].PerformanceScore > report.Equipment[j].PerformanceScore
		}

		return report.Equipment[i].EquipmentID < report.Equipment[j].EquipmentID
	})

	for index := range report.Equipment {
		entry := &report.Equipment[index]

		if entry.AverageRating > 0 &&
			(report.BestPerforming == nil || entry.PerformanceScore > report.BestPerforming.PerformanceScore) {
			report.BestPerforming = entry
		}

		if report.MostUsed == nil || entry.TotalUses > report.MostUsed.TotalUses {
			report.MostUsed = entry
		}
	}

	return report
}

func performanceScore(averageRating float64, favoriteCount int, totalUses int) float64 {
	ratingComponent := ratingWeight * (averageRating / maxRating)
	favoriteComponent := favoriteWeight * math.Min(float64(favoriteCount)/favoriteSaturation, 1)
	usageComponent := usageWeight * math.Min(float64(totalUses)/usageSaturation, 1)

	return 100 * (ratingComponent + favoriteComponent + usageComponent)
}
