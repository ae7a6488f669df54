package usecase

import (
	"strconv"

	"github.com/saunafinder/backend/internal/domain"
	"github.com/saunafinder/backend/internal/rules"
)

// defaultMinReviews is the review count below which a listing is treated as noise
const defaultMinReviews = 10

// FilterConfig holds configuration for the inclusion filter
type FilterConfig struct {
	MinReviews int
	Rules      *rules.Set
}

// InclusionFilter decides whether a search result is a sauna venue worth considering
type InclusionFilter struct {
	rules      *rules.Set
	minReviews int
}

// NewInclusionFilter creates a filter with the given configuration
func NewInclusionFilter(config FilterConfig) *InclusionFilter {
	minReviews := config.MinReviews
	if minReviews <= 0 {
		minReviews = defaultMinReviews
	}
	set := config.Rules
	if set == nil {
		set = rules.Default()
	}
	return &InclusionFilter{rules: set, minReviews: minReviews}
}

// ShouldInclude applies the decision rules in order; the first rule that fires wins.
func (f *InclusionFilter) ShouldInclude(c domain.RawCandidate) domain.Decision {
	name := c.DisplayName

	for _, category := range c.ProviderCategories {
		if f.rules.ExcludedTypes[category] {
			return exclude(domain.ReasonExcludedType, category)
		}
	}

	if p := firstMatch(f.rules.ExcludedNames, name); p != nil {
		return exclude(domain.ReasonExcludedName, p.Source)
	}

	if reviews := c.Reviews(); reviews < f.minReviews {
		return exclude(domain.ReasonTooFewReviews, strconv.Itoa(reviews))
	}

	if p := firstMatch(f.rules.SaunaKeywords, name); p != nil {
		return include(domain.ReasonSaunaKeyword, p.Source)
	}

	if p := firstMatch(f.rules.BrandWhitelist, name); p != nil {
		return include(domain.ReasonKnownBrand, p.Source)
	}

	if hasAny(c.ProviderCategories, f.rules.HotelCategories) || f.rules.HotelName.MatchString(name) {
		return include(domain.ReasonHotelResort, "")
	}

	if hasAny(c.ProviderCategories, f.rules.GymCategories) || f.rules.GymName.MatchString(name) {
		if p := firstMatch(f.rules.GymWhitelist, name); p != nil {
			return include(domain.ReasonWhitelistedGym, p.Source)
		}
		return exclude(domain.ReasonGymUnconfirmed, "")
	}

	return exclude(domain.ReasonNoSignals, "")
}

func include(reason, detail string) domain.Decision {
	return domain.Decision{Include: true, Reason: reason, Detail: detail}
}

func exclude(reason, detail string) domain.Decision {
	return domain.Decision{Include: false, Reason: reason, Detail: detail}
}

func firstMatch(patterns []*rules.Pattern, s string) *rules.Pattern {
	for _, p := range patterns {
		if p.MatchString(s) {
			return p
		}
	}
	return nil
}

func hasAny(values []string, set map[string]bool) bool {
	for _, v := range values {
		if set[v] {
			return true
		}
	}
	return false
}
