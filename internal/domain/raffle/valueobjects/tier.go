package valueobjects

import (
	"sort"
	"strings"
)

// PrizeTier names a prize level of a draw.
type PrizeTier string

const (
	TierFirst  PrizeTier = "first_place"
	TierSecond PrizeTier = "second_place"
	TierThird  PrizeTier = "third_place"
	TierFourth PrizeTier = "fourth_place"
	TierFifth  PrizeTier = "fifth_place"
)

var tierRank = map[PrizeTier]int{
	TierFirst:  1,
	TierSecond: 2,
	TierThird:  3,
	TierFourth: 4,
	TierFifth:  5,
}

func NewPrizeTier(s string) PrizeTier {
	return PrizeTier(strings.ToLower(strings.TrimSpace(s)))
}

func (t PrizeTier) IsKnown() bool {
	_, ok := tierRank[t]
	return ok
}

func (t PrizeTier) String() string {
	return string(t)
}

// SortTiers orders tiers by prize priority. Unknown tiers follow the known
// ones in lexical order.
func SortTiers(tiers []PrizeTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		ri, iKnown := tierRank[tiers[i]]
		rj, jKnown := tierRank[tiers[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return tiers[i] < tiers[j]
		}
	})
}
