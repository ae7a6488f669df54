package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/rules"
)

// Description length limits, in characters
const (
	maxDescriptionLength   = 150
	truncatedEditorialSize = 147
	minReviewSentence      = 30
)

// Describer picks a one-line description for a venue
type Describer struct {
	rules *rules.Set
}

// NewDescriber creates a describer over the given rule set (defaults when nil)
func NewDescriber(set *rules.Set) *Describer {
	if set == nil {
		set = rules.Default()
	}
	return &Describer{rules: set}
}

// Describe prefers the editorial summary, then a descriptive review sentence,
// then a sentence built from the first type. It returns "" when nothing applies.
func (d *Describer) Describe(editorial string, reviews []domain.Review, types []domain.CategoryTag) string {
	if editorial != "" {
		if utf8.RuneCountInString(editorial) <= maxDescriptionLength {
			return editorial
		}
		if first := d.rules.Sentence.FindPrefix(editorial); first != "" {
			return strings.TrimSpace(first)
		}
		return string([]rune(editorial)[:truncatedEditorialSize]) + "..."
	}

	for _, review := range reviews {
		for _, sentence := range d.rules.Sentence.FindAllString(review.Text) {
			trimmed := strings.TrimSpace(sentence)
			if d.isDescriptive(trimmed) {
				return trimmed
			}
		}
	}

	if len(types) > 0 {
		return fmt.Sprintf("%s offering sauna and wellness experiences.", types[0])
	}

	return ""
}

// isDescriptive accepts mid-length, on-topic sentences that are not first person
func (d *Describer) isDescriptive(sentence string) bool {
	n := utf8.RuneCountInString(sentence)
	if n < minReviewSentence || n > maxDescriptionLength {
		return false
	}
	return d.rules.DescriptionKeywords.MatchString(sentence) &&
		!d.rules.FirstPerson.MatchString(sentence)
}
