package assistant

import (
	"fmt"
	"strings"
)

// UserProfile is the activity digest of an authenticated user, included in
// prompts so replies reflect the user's interests. Anonymous users get nil.
type UserProfile struct {
	LikedCategories  []countPair
	ViewedCategories []countPair
	TotalLikes       int
	TotalViews       int
	RecentLiked      []string
}

// NewUserProfile assembles a profile from liked and viewed categories plus
// recent liked article titles.
func NewUserProfile(likedCategories, viewedCategories map[string]int, recentLiked []string) *UserProfile {
	totalLikes := 0
	for _, c := range likedCategories {
		totalLikes += c
	}
	totalViews := 0
	for _, c := range viewedCategories {
		totalViews += c
	}
	if len(recentLiked) > 3 {
		recentLiked = recentLiked[:3]
	}
	return &UserProfile{
		LikedCategories:  topCounts(likedCategories, 3),
		ViewedCategories: topCounts(viewedCategories, 3),
		TotalLikes:       totalLikes,
		TotalViews:       totalViews,
		RecentLiked:      recentLiked,
	}
}

// Format renders the profile for a prompt.
func (p *UserProfile) Format() string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "선호 카테고리: %s, ", formatCounts(p.LikedCategories))
	fmt.Fprintf(&b, "최근 활동: 좋아요 %d개, 조회 %d개", p.TotalLikes, p.TotalViews)
	if len(p.RecentLiked) > 0 {
		fmt.Fprintf(&b, ", 최근 관심 기사: %s", strings.Join(p.RecentLiked, " / "))
	}
	return b.String()
}
