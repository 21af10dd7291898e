package utils

import "strings"

// SplitKeywords parses the crawler's keyword field, which arrives either as
// a comma list or a Postgres array literal like {"금리","환율"}.
func SplitKeywords(raw string) []string {
	cleaned := strings.NewReplacer("{", "", "}", "", `"`, "").Replace(raw)
	var out []string
	for _, part := range strings.Split(cleaned, ",") {
		if k := strings.TrimSpace(part); k != "" {
			out = append(out, k)
		}
	}
	return out
}
