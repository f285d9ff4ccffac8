package engine

import (
	"slices"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// Category labels an assignment source for conflict reporting.
type Category string

const (
	CategoryArtsAndCrafts Category = "arts_and_crafts"
	CategoryCardTrading   Category = "card_trading"
	CategoryCustom        Category = "custom"
	CategoryTieDye        Category = "tie_dye"
	CategoryExcluded      Category = "excluded"
)

// categoryOrder fixes the reporting order of labels within a conflict.
var categoryOrder = []Category{
	CategoryArtsAndCrafts,
	CategoryCardTrading,
	CategoryCustom,
	CategoryTieDye,
	CategoryExcluded,
}

type Conflict struct {
	StaffID    int64      `json:"staffId"`
	Categories []Category `json:"categories"`
}

// DetectConflicts reports staff appearing in more than one assignment
// category for a week, plus staff that are both assigned and excluded.
// The pairing {arts & crafts, tie dye} is an explicitly allowed
// co-assignment on the lunchtime flow and is not flagged; the
// assigned-and-excluded case is always a conflict regardless of pairing.
// Pure and stateless: the caller diffs successive outputs to avoid
// re-notifying on an unchanged conflict set.
func DetectConflicts(eff Effective, flow domain.Flow) []Conflict {
	categories := make(map[int64]map[Category]bool)
	record := func(staffID int64, c Category) {
		if categories[staffID] == nil {
			categories[staffID] = make(map[Category]bool)
		}
		categories[staffID][c] = true
	}

	for _, id := range eff.Pools[domain.PoolArtsAndCrafts] {
		record(id, CategoryArtsAndCrafts)
	}
	for _, id := range eff.Pools[domain.PoolCardTrading] {
		record(id, CategoryCardTrading)
	}
	for _, a := range eff.AllDays {
		record(a.StaffID, CategoryCustom)
	}
	for _, a := range eff.SpecificDays {
		record(a.StaffID, CategoryCustom)
	}
	for _, id := range eff.TieDyeStaff {
		record(id, CategoryTieDye)
	}
	for _, id := range eff.Exclusions {
		record(id, CategoryExcluded)
	}

	conflicts := make([]Conflict, 0)
	for staffID, set := range categories {
		labels := make([]Category, 0, len(set))
		for _, c := range categoryOrder {
			if set[c] {
				labels = append(labels, c)
			}
		}

		if set[CategoryExcluded] {
			if len(labels) < 2 {
				continue // excluded only, nothing assigned
			}
			conflicts = append(conflicts, Conflict{StaffID: staffID, Categories: labels})
			continue
		}

		if len(labels) < 2 {
			continue
		}
		if flow == domain.FlowLunch && len(labels) == 2 && set[CategoryArtsAndCrafts] && set[CategoryTieDye] {
			continue
		}
		conflicts = append(conflicts, Conflict{StaffID: staffID, Categories: labels})
	}

	slices.SortFunc(conflicts, func(a, b Conflict) int {
		return int(a.StaffID - b.StaffID)
	})
	return conflicts
}
