package analytics

import (
	"sort"
	"time"

	"droscher.com/BrewJournal/pkg/model"
)

const recentSessionCount = 5

type EntityCounts struct {
	CoffeeBeans      int64 `json:"totalCoffeeBeans"`
	GrindSettings    int64 `json:"totalGrindSettings"`
	BrewingEquipment int64 `json:"totalBrewingEquipment"`
	BrewSessions     int64 `json:"totalBrewSessions"`
}

type BrewMethodStats struct {
	Method        model.BrewMethod `json:"method"`
	Count         int              `json:"count"`
	AverageRating float64          `json:"averageRating"`
	FavoriteCount int              `json:"favoriteCount"`
}

type EquipmentUsageStats struct {
	EquipmentID   uint    `json:"equipmentId"`
	Name          string  `json:"name"`
	UsageCount    int     `json:"usageCount"`
	AverageRating float64 `json:"averageRating"`
	FavoriteCount int     `json:"favoriteCount"`
}

type SessionSummary struct {
	ID        uint             `json:"id"`
	Method    model.BrewMethod `json:"method"`
	BeanName  string           `json:"beanName"`
	Rating    *int             `json:"rating"`
	Favorite  bool             `json:"favorite"`
	CreatedAt time.Time        `json:"createdAt"`
}

type Dashboard struct {
	EntityCounts
	FavoriteCount   int                   `json:"favoriteCount"`
	AverageRating   float64               `json:"averageRating"`
	BrewMethodStats []BrewMethodStats     `json:"brewMethodStats"`
	EquipmentStats  []EquipmentUsageStats `json:"equipmentStats"`
	RecentSessions  []SessionSummary      `json:"recentSessions"`
}

// BuildDashboard aggregates the whole session set in memory. Unrated sessions
// count towards totals but are excluded from every rating average.
func BuildDashboard(counts EntityCounts, sessions []*model.BrewSession) *Dashboard {
	dashboard := &Dashboard{
		EntityCounts:    counts,
		BrewMethodStats: []BrewMethodStats{},
		EquipmentStats:  []EquipmentUsageStats{},
		RecentSessions:  []SessionSummary{},
	}

	ratingSum := 0.0
	ratedCount := 0

	for _, session := range sessions {
		if session.Favorite {
			dashboard.FavoriteCount++
		}

		if session.Rated() {
			ratingSum += float64(*session.Rating)
			ratedCount++
		}
	}

	if ratedCount > 0 {
		dashboard.AverageRating = ratingSum / float64(ratedCount)
	}

	dashboard.BrewMethodStats = brewMethodStats(sessions)
	dashboard.EquipmentStats = equipmentUsageStats(sessions)
	dashboard.RecentSessions = recentSessions(sessions)

	return dashboard
}

func brewMethodStats(sessions []*model.BrewSession) []BrewMethodStats {
	type acc struct {
		count, favorites, rated int
		ratingSum               float64
	}

	groups := map[model.BrewMethod]*acc{}

	for _, session := range sessions {
		group, ok := groups[session.Method]
		if !ok {
			group = &acc{}
			groups[session.Method] = group
		}

		group.count++

		if session.Favorite {
			group.favorites++
		}

		if session.Rated() {
			group.rated++
			group.ratingSum += float64(*session.Rating)
		}
	}

	stats := make([]BrewMethodStats, 0, len(groups))

	for method, group := range groups {
		entry := BrewMethodStats{
			Method:        method,
			Count:         group.count,
			FavoriteCount: group.favorites,
		}

		if group.rated > 0 {
			entry.AverageRating = group.ratingSum / float64(group.rated)
		}

		stats = append(stats, entry)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}

		return stats[i].Method < stats[j].Method
	})

	return stats
}

func equipmentUsageStats(sessions []*model.BrewSession) []EquipmentUsageStats {
	type acc struct {
		name                    string
		count, favorites, rated int
		ratingSum               float64
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

		group.count++

		if session.Favorite {
			group.favorites++
		}

		if session.Rated() {
			group.rated++
			group.ratingSum += float64(*session.Rating)
		}
	}

	stats := make([]EquipmentUsageStats, 0, len(groups))

	for equipmentID, group := range groups {
		entry := EquipmentUsageStats{
			EquipmentID:   equipmentID,
			Name:          group.name,
			UsageCount:    group.count,
			FavoriteCount: group.favorites,
		}

		if group.rated > 0 {
			entry.AverageRating = group.ratingSum / float64(group.rated)
		}

		stats = append(stats, entry)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].UsageCount != stats[j].UsageCount {
			return stats[i].UsageCount > stats[j].UsageCount
		}

		return stats[i].EquipmentID < stats[j].EquipmentID
	})

	return stats
}

func recentSessions(sessions []*model.BrewSession) []SessionSummary {
	ordered := make([]*model.BrewSession, len(sessions))
	copy(ordered, sessions)

	sort.Slice(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
		}

		return ordered[i].ID > ordered[j].ID
	})

	if len(ordered) > recentSessionCount {
		ordered = ordered[:recentSessionCount]
	}

	summaries := make([]SessionSummary, 0, len(ordered))

	for _, session := range ordered {
		summaries = append(summaries, SessionSummary{
			ID:        session.ID,
			Method:    session.Method,
			BeanName:  session.CoffeeBean.DisplayName(),
			Rating:    session.Rating,
			Favorite:  session.Favorite,
			CreatedAt: session.CreatedAt,
		})
	}

	return summaries
}
