package agg

import (
	"sort"

	"github.com/eswan18/fitness-api-sub000/internal/runs"
	"github.com/eswan18/fitness-api-sub000/internal/shoes"
)

type ShoeMileage struct {
	Shoe    shoes.Shoe `json:"shoe"`
	Mileage float64    `json:"mileage"`
}

// MileageByShoes totals distance per shoe, ordered by shoe name. Runs without a shoe, or with
// a shoe not in the list, are ignored, as are retired shoes unless includeRetired is set.
func MileageByShoes(rs []runs.Run, allShoes []shoes.Shoe, includeRetired bool) []ShoeMileage {
	byID := make(map[string]shoes.Shoe, len(allShoes))
	for _, s := range allShoes {
		byID[s.ID] = s
	}

	mileage := make(map[string]float64)
	for _, r := range rs {
		if r.ShoeID == nil {
			continue
		}
		shoe, ok := byID[*r.ShoeID]
		if !ok {
			continue
		}
		if shoe.IsRetired() && !includeRetired {
			continue
		}
		mileage[shoe.ID] += r.Distance
	}

	result := make([]ShoeMileage, 0, len(mileage))
	for id, miles := range mileage {
		result = append(result, ShoeMileage{Shoe: byID[id], Mileage: miles})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Shoe.Name != result[j].Shoe.Name {
			return result[i].Shoe.Name < result[j].Shoe.Name
		}
		return result[i].Shoe.ID < result[j].Shoe.ID
	})
	return result
}
