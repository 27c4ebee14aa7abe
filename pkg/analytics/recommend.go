package analytics

import (
	"fmt"
	"math"
	"sort"

	"droscher.com/BrewJournal/pkg/model"
)

const (
	minGroupSamples      = 2
	sampleShareWeight    = 0.3
	saturationWeight     = 0.7
	confidenceSaturation = 10.0
)

type Recommendation struct {
	Category    string            `json:"category"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Confidence  float64           `json:"confidence"`
	Parameters  map[string]string `json:"parameters"`
}

// BuildRecommendations derives up to four suggestions from rated sessions:
// best bean, optimal grind size, best equipment and the most frequent
// favorited combination. The result is sorted by confidence, ties keeping
// the order the categories are generated in.
func BuildRecommendations(sessions []*model.BrewSession) []Recommendation {
	recommendations := []Recommendation{}

	rated := ratedSessions(sessions)
	if len(rated) == 0 {
		return recommendations
	}

	if rec := bestBean(rated); rec != nil {
		recommendations = append(recommendations, *rec)
	}

	if rec := optimalGrindSize(rated); rec != nil {
		recommendations = append(recommendations, *rec)
	}

	if rec := bestEquipment(rated); rec != nil {
		recommendations = append(recommendations, *rec)
	}

	if rec := favoriteCombination(rated); rec != nil {
		recommendations = append(recommendations, *rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Confidence > recommendations[j].Confidence
	})

	return recommendations
}

type ratingGroup struct {
	name    string
	sum     float64
	count   int
	ordinal int
}

func (g ratingGroup) average() float64 {
	return g.sum / float64(g.count)
}

// bestRatedGroup picks the highest-average group with enough samples. Ties go
// to the group first seen, which keeps the choice stable across runs.
func bestRatedGroup(groups map[uint]*ratingGroup) *ratingGroup {
	var best *ratingGroup

	ordered := make([]*ratingGroup, 0, len(groups))
	for _, group := range groups {
		ordered = append(ordered, group)
	}

	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ordinal < ordered[j].ordinal })

	for _, group := range ordered {
		if group.count < minGroupSamples {
			continue
		}

		if best == nil || group.average() > best.average() {
			best = group
		}
	}

	return best
}

func confidence(groupSize int, totalSamples int) float64 {
	share := sampleShareWeight * float64(groupSize) / float64(totalSamples)
	saturation := saturationWeight * math.Min(float64(groupSize)/confidenceSaturation, 1)

	return 100 * (share + saturation)
}

func bestBean(rated []*model.BrewSession) *Recommendation {
	groups := map[uint]*ratingGroup{}

	for _, session := range rated {
		group, ok := groups[session.CoffeeBeanID]
		if !ok {
			group = &ratingGroup{name: session.CoffeeBean.DisplayName(), ordinal: len(groups)}
			groups[session.CoffeeBeanID] = group
		}

		group.sum += float64(*session.Rating)
		group.count++
	}

	best := bestRatedGroup(groups)
	if best == nil {
		return nil
	}

	return &Recommendation{
		Category:    "CoffeeBean",
		Title:       "Best coffee bean",
		Description: fmt.Sprintf("Your best-rated coffee bean is %s with an average rating of %.1f.", best.name, best.average()),
		Confidence:  confidence(best.count, len(rated)),
		Parameters: map[string]string{
			"coffeeBean":    best.name,
			"averageRating": fmt.Sprintf("%.1f", best.average()),
		},
	}
}

func optimalGrindSize(rated []*model.BrewSession) *Recommendation {
	groups := map[uint]*ratingGroup{}

	for _, session := range rated {
		size := session.GrindSetting.GrindSize

		group, ok := groups[uint(size)] //nolint:gosec // grind sizes are 1-30
		if !ok {
			group = &ratingGroup{name: fmt.Sprintf("%d", size), ordinal: len(groups)}
			groups[uint(size)] = group
		}

		group.sum += float64(*session.Rating)
		group.count++
	}

	best := bestRatedGroup(groups)
	if best == nil {
		return nil
	}

	return &Recommendation{
		Category:    "GrindSize",
		Title:       "Optimal grind size",
		Description: fmt.Sprintf("Sessions ground at size %s average a rating of %.1f.", best.name, best.average()),
		Confidence:  confidence(best.count, len(rated)),
		Parameters: map[string]string{
			"grindSize":     best.name,
			"averageRating": fmt.Sprintf("%.1f", best.average()),
		},
	}
}

func bestEquipment(rated []*model.BrewSession) *Recommendation {
	groups := map[uint]*ratingGroup{}

	for _, session := range rated {
		if session.BrewingEquipmentID == nil {
			continue
		}

		group, ok := groups[*session.BrewingEquipmentID]
		if !ok {
			group = &ratingGroup{ordinal: len(groups)}
			if session.BrewingEquipment != nil {
				group.name = session.BrewingEquipment.DisplayName()
			}
			groups[*session.BrewingEquipmentID] = group
		}

		group.sum += float64(*session.Rating)
		group.count++
	}

	best := bestRatedGroup(groups)
	if best == nil {
		return nil
	}

	return &Recommendation{
		Category:    "Equipment",
		Title:       "Best equipment",
		Description: fmt.Sprintf("Your best-rated equipment is %s with an average rating of %.1f.", best.name, best.average()),
		Confidence:  confidence(best.count, len(rated)),
		Parameters: map[string]string{
			"equipment":     best.name,
			"averageRating": fmt.Sprintf("%.1f", best.average()),
		},
	}
}

type comboKey struct {
	method    model.BrewMethod
	beanID    uint
	grindSize int
}

func favoriteCombination(rated []*model.BrewSession) *Recommendation {
	type combo struct {
		beanName string
		sum      float64
		count    int
		ordinal  int
	}

	groups := map[comboKey]*combo{}
	favoritedRated := 0

	for _, session := range rated {
		if !session.Favorite {
			continue
		}

		favoritedRated++

		key := comboKey{method: session.Method, beanID: session.CoffeeBeanID, grindSize: session.GrindSetting.GrindSize}

		group, ok := groups[key]
		if !ok {
			group = &combo{beanName: session.CoffeeBean.DisplayName(), ordinal: len(groups)}
			groups[key] = group
		}

		group.sum += float64(*session.Rating)
		group.count++
	}

	var (
		best    *combo
		bestKey comboKey
	)

	keys := make([]comboKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}

	sort.Slice(keys, func(i, j int) bool { return groups[keys[i]].ordinal < groups[keys[j]].ordinal })

	for _, key := range keys {
		group := groups[key]
		if best == nil || group.count > best.count {
			best = group
			bestKey = key
		}
	}

	if best == nil || best.count < minGroupSamples {
		return nil
	}

	average := best.sum / float64(best.count)

	return &Recommendation{
		Category:    "FavoriteCombination",
		Title:       "Favorite combination",
		Description: fmt.Sprintf("Your go-to brew is %s with %s at grind size %d, averaging a rating of %.1f.", bestKey.method, best.beanName, bestKey.grindSize, average),
		Confidence:  confidence(best.count, favoritedRated),
		Parameters: map[string]string{
			"method":        bestKey.method.String(),
			"coffeeBean":    best.beanName,
			"grindSize":     fmt.Sprintf("%d", bestKey.grindSize),
			"averageRating": fmt.Sprintf("%.1f", average),
		},
	}
}
