package recommend

import "sort"

// topCategories is how many preferred categories the estimator keeps.
const topCategories = 3

// bonusSchedule maps affinity rank to the additive category bonus. The
// schedule is bounded well below the typical cosine distance range so the
// bonus pulls preferred categories upward without drowning similarity.
var bonusSchedule = [topCategories]float64{0.3, 0.2, 0.1}

// Affinity is a user's ranked preference over article categories, derived per
// request from engagement signals.
type Affinity struct {
	ranked []string
	bonus  map[string]float64
}

// BuildAffinity counts category occurrences over liked articles (vector
// presence is irrelevant here) and keeps the most frequent topCategories.
// When likes yield fewer distinct categories than that, recent views are
// counted in as a secondary signal. Frequency ties go to the category seen
// more recently.
func BuildAffinity(likes, views []Signal) Affinity {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	tally := func(signals []Signal) {
		for _, s := range signals {
			if s.Category == "" {
				continue
			}
			counts[s.Category]++
			if _, ok := firstSeen[s.Category]; !ok {
				firstSeen[s.Category] = order
			}
			order++
		}
	}

	tally(likes)
	if len(counts) < topCategories {
		tally(views)
	}

	ranked := make([]string, 0, len(counts))
	for c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return firstSeen[ranked[i]] < firstSeen[ranked[j]]
	})

	if len(ranked) > topCategories {
		ranked = ranked[:topCategories]
	}

	bonus := make(map[string]float64, len(ranked))
	for i, c := range ranked {
		bonus[c] = bonusSchedule[i]
	}

	return Affinity{ranked: ranked, bonus: bonus}
}

// Empty reports whether no category signal exists at all.
func (a Affinity) Empty() bool { return len(a.ranked) == 0 }

// Bonus returns the additive score bonus for a category (0 outside the
// top ranked set).
func (a Affinity) Bonus(category string) float64 { return a.bonus[category] }

// Rank returns the preference position of a category (0 = most preferred).
// Categories outside the ranked set all share rank len(ranked), keeping them
// behind every preferred category without ordering among themselves.
func (a Affinity) Rank(category string) int {
	for i, c := range a.ranked {
		if c == category {
			return i
		}
	}
	return len(a.ranked)
}

// Categories returns the ranked preferred categories, most preferred first.
func (a Affinity) Categories() []string {
	out := make([]string, len(a.ranked))
	copy(out, a.ranked)
	return out
}
