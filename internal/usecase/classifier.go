package usecase

import (
	"slices"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/rules"
)

// Classifier tags venues with category types and amenities using an ordered rule table
type Classifier struct {
	rules *rules.Set
}

// NewClassifier creates a classifier over the given rule set (defaults when nil)
func NewClassifier(set *rules.Set) *Classifier {
	if set == nil {
		set = rules.Default()
	}
	return &Classifier{rules: set}
}

// Classify returns the ordered types and the amenity set for a venue.
// corpus is the venue name, editorial summary and review snippets joined together.
func (c *Classifier) Classify(name, corpus string, categories []string) ([]domain.CategoryTag, []domain.AmenityTag) {
	return c.ClassifyTypes(name, corpus, categories), c.InferAmenities(corpus)
}

// ClassifyTypes runs the name rules, then the corpus rules, then the name fallbacks.
func (c *Classifier) ClassifyTypes(name, corpus string, categories []string) []domain.CategoryTag {
	types := []domain.CategoryTag{}

	for _, rule := range c.rules.NameTypes {
		if skipRule(types, rule) {
			continue
		}
		if rule.Matches(name, categories) {
			types = withTag(types, rule.Tag, false)
		}
	}

	for _, rule := range c.rules.CorpusTypes {
		if skipRule(types, rule) {
			continue
		}
		if rule.Pattern.MatchString(corpus) {
			types = withTag(types, rule.Tag, rule.Prepend)
		}
	}

	if len(types) > 0 {
		return types
	}

	for _, rule := range c.rules.Fallbacks {
		if rule.Pattern.MatchString(name) {
			return []domain.CategoryTag{rule.Tag}
		}
	}

	return types
}

// InferAmenities scans the corpus for every amenity pattern, in table order.
func (c *Classifier) InferAmenities(corpus string) []domain.AmenityTag {
	amenities := []domain.AmenityTag{}
	for _, rule := range c.rules.Amenities {
		if !slices.Contains(amenities, rule.Tag) && rule.Pattern.MatchString(corpus) {
			amenities = append(amenities, rule.Tag)
		}
	}
	return amenities
}

// BuildCorpus joins the text a candidate carries: name, editorial summary and reviews.
func BuildCorpus(candidate domain.RawCandidate) string {
	parts := make([]string, 0, len(candidate.ReviewSnippets)+2)
	parts = append(parts, candidate.DisplayName, candidate.EditorialSummary)
	for _, r := range candidate.ReviewSnippets {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, " ")
}

// skipRule reports whether the rule's tag, or a tag that excludes it, is already present
func skipRule(types []domain.CategoryTag, rule rules.TypeRule) bool {
	if slices.Contains(types, rule.Tag) {
		return true
	}
	for _, t := range rule.SkipIf {
		if slices.Contains(types, t) {
			return true
		}
	}
	return false
}

// withTag returns a new slice with tag added at the front or the back.
func withTag(types []domain.CategoryTag, tag domain.CategoryTag, prepend bool) []domain.CategoryTag {
	out := make([]domain.CategoryTag, 0, len(types)+1)
	if prepend {
		out = append(out, tag)
		return append(out, types...)
	}
	out = append(out, types...)
	return append(out, tag)
}
