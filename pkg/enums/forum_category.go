package enums

import "fmt"

// ForumCategory classifies a forum post.
type ForumCategory string

const (
	ForumCategoryGeneral  ForumCategory = "GENERAL"
	ForumCategoryService  ForumCategory = "SERVICE"
	ForumCategoryQuestion ForumCategory = "QUESTION"
	ForumCategoryMarket   ForumCategory = "MARKET"
)

var validForumCategories = []ForumCategory{
	ForumCategoryGeneral,
	ForumCategoryService,
	ForumCategoryQuestion,
	ForumCategoryMarket,
}

// String implements fmt.Stringer.
func (c ForumCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ForumCategory.
func (c ForumCategory) IsValid() bool {
	for _, candidate := range validForumCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseForumCategory converts raw input into a ForumCategory.
func ParseForumCategory(value string) (ForumCategory, error) {
	for _, candidate := range validForumCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid forum category %q", value)
}
