package models

import "strings"

// TagWithCategory is one tag attached to a post.
type TagWithCategory struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`
}

// TagsWithCategory groups tag names under their category.
type TagsWithCategory struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// TagCount is the number of posts carrying a tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int64  `json:"count"`
}

// TagSeparator joins category and name in aggregated tag strings.
const TagSeparator = "::"

// ParseTags splits "category::tag" pairs separated by commas. Pairs without
// a separator are skipped. Empty input yields an empty, non-nil slice.
func ParseTags(s string) []TagWithCategory {
	tags := make([]TagWithCategory, 0)
	if s == "" {
		return tags
	}

	for _, pair := range strings.Split(s, ",") {
		category, tag, ok := strings.Cut(pair, TagSeparator)
		if !ok {
			continue
		}
		tags = append(tags, TagWithCategory{
			Category: strings.TrimSpace(category),
			Tag:      strings.TrimSpace(tag),
		})
	}

	return tags
}
