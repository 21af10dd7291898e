package recommend

import (
	"reflect"
	"testing"
)

func sigs(categories ...string) []Signal {
	out := make([]Signal, len(categories))
	for i, c := range categories {
		out[i] = Signal{ArticleID: int64(i + 1), Category: c}
	}
	return out
}

func TestBuildAffinity(t *testing.T) {
	tests := []struct {
		name       string
		likes      []Signal
		views      []Signal
		wantRanked []string
	}{
		{
			name:       "frequency ordering",
			likes:      sigs("경제", "정치", "경제", "경제", "정치", "스포츠"),
			wantRanked: []string{"경제", "정치", "스포츠"},
		},
		{
			name:       "top three only",
			likes:      sigs("경제", "경제", "정치", "정치", "스포츠", "스포츠", "문화"),
			wantRanked: []string{"경제", "정치", "스포츠"},
		},
		{
			name:       "frequency tie goes to the more recent category",
			likes:      sigs("정치", "경제"),
			wantRanked: []string{"정치", "경제"},
		},
		{
			name:       "views extend sparse likes",
			likes:      sigs("경제"),
			views:      sigs("스포츠", "스포츠", "문화"),
			wantRanked: []string{"스포츠", "경제", "문화"},
		},
		{
			name:       "views ignored when likes already cover three categories",
			likes:      sigs("경제", "정치", "스포츠"),
			views:      sigs("문화", "문화", "문화", "문화"),
			wantRanked: []string{"경제", "정치", "스포츠"},
		},
		{
			name:       "uncategorized signals are skipped",
			likes:      sigs("", "", "경제"),
			wantRanked: []string{"경제"},
		},
		{
			name:       "no signal",
			wantRanked: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := BuildAffinity(tt.likes, tt.views)
			if got := a.Categories(); !reflect.DeepEqual(got, tt.wantRanked) {
				t.Errorf("Categories() = %v, want %v", got, tt.wantRanked)
			}
			if a.Empty() != (len(tt.wantRanked) == 0) {
				t.Errorf("Empty() = %v with ranked %v", a.Empty(), tt.wantRanked)
			}
		})
	}
}

func TestAffinityBonusSchedule(t *testing.T) {
	a := BuildAffinity(sigs("경제", "경제", "경제", "정치", "정치", "스포츠"), nil)

	wantBonus := map[string]float64{
		"경제":  0.3,
		"정치":  0.2,
		"스포츠": 0.1,
		"문화":  0, // outside top-3
	}
	for cat, want := range wantBonus {
		if got := a.Bonus(cat); got != want {
			t.Errorf("Bonus(%q) = %v, want %v", cat, got, want)
		}
	}
}

func TestAffinityRank(t *testing.T) {
	a := BuildAffinity(sigs("경제", "경제", "정치"), nil)

	if got := a.Rank("경제"); got != 0 {
		t.Errorf("Rank(경제) = %d, want 0", got)
	}
	if got := a.Rank("정치"); got != 1 {
		t.Errorf("Rank(정치) = %d, want 1", got)
	}
	// Unranked categories all share the rank just past the ranked set.
	if got := a.Rank("문화"); got != 2 {
		t.Errorf("Rank(문화) = %d, want 2", got)
	}
}
