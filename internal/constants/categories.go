package constants

// CategoryUnclassified is assigned to articles the classifier could not
// place in any category.
const CategoryUnclassified = "미분류"

// ValidCategories contains every article category available in the system.
var ValidCategories = []string{
	"IT_과학",
	"건강",
	"경제",
	"교육",
	"국제",
	"라이프스타일",
	"문화",
	"사건사고",
	"사회일반",
	"산업",
	"스포츠",
	"여성복지",
	"여행레저",
	"연예",
	"정치",
	"지역",
	"취미",
	CategoryUnclassified,
}

// IsValidCategory reports whether category belongs to the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == category {
			return true
		}
	}
	return false
}

// IsAllCategories reports whether the request means "no category filter".
func IsAllCategories(category string) bool {
	return category == "" || category == "all" || category == "전체"
}
