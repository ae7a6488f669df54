// Package rules holds the keyword tables that drive venue filtering and
// classification. Tables are plain data: Default returns the built-in set and
// Load lets a YAML file replace any of them.
package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// Pattern is a compiled, case-insensitive pattern. When unless is set, a match
// is cancelled if unless occurs anywhere after the last match of re.
type Pattern struct {
	Source string
	re     *regexp.Regexp
	unless *regexp.Regexp
}

// MatchString reports whether s matches the pattern.
func (p *Pattern) MatchString(s string) bool {
	if p == nil || p.re == nil {
		return false
	}
	if p.unless == nil {
		return p.re.MatchString(s)
	}
	locs := p.re.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return false
	}
	// The last occurrence has the shortest tail, so it is the only one worth checking.
	tail := s[locs[len(locs)-1][1]:]
	return !p.unless.MatchString(tail)
}

// FindAllString returns all non-overlapping matches of the pattern.
func (p *Pattern) FindAllString(s string) []string {
	if p == nil || p.re == nil {
		return nil
	}
	return p.re.FindAllString(s, -1)
}

// FindString returns the leftmost match, or "".
func (p *Pattern) FindString(s string) string {
	if p == nil || p.re == nil {
		return ""
	}
	return p.re.FindString(s)
}

// FindPrefix returns the leftmost match only when it starts at the beginning of s.
func (p *Pattern) FindPrefix(s string) string {
	if p == nil || p.re == nil {
		return ""
	}
	loc := p.re.FindStringIndex(s)
	if loc == nil || loc[0] != 0 {
		return ""
	}
	return s[:loc[1]]
}

// TypeRule maps a pattern (and optionally provider categories) to a category tag.
type TypeRule struct {
	Tag        domain.CategoryTag
	Pattern    *Pattern
	Categories map[string]bool
	SkipIf     []domain.CategoryTag
	Prepend    bool
}

// Matches reports whether text or any of the provider categories trigger the rule.
func (r TypeRule) Matches(text string, categories []string) bool {
	for _, c := range categories {
		if r.Categories[c] {
			return true
		}
	}
	return r.Pattern.MatchString(text)
}

// AmenityRule maps a pattern to an amenity tag.
type AmenityRule struct {
	Tag     domain.AmenityTag
	Pattern *Pattern
}

// EnrichRule adds a type during enrichment unless the category is already covered.
type EnrichRule struct {
	Tag      domain.CategoryTag
	Pattern  *Pattern
	Category string
	NameOnly bool
}

// Set is a compiled rule table.
type Set struct {
	ExcludedTypes   map[string]bool
	ExcludedNames   []*Pattern
	SaunaKeywords   []*Pattern
	BrandWhitelist  []*Pattern
	GymWhitelist    []*Pattern
	HotelCategories map[string]bool
	HotelName       *Pattern
	GymCategories   map[string]bool
	GymName         *Pattern

	NameTypes   []TypeRule
	CorpusTypes []TypeRule
	Fallbacks   []TypeRule
	Amenities   []AmenityRule

	EnrichAmenities []AmenityRule
	EnrichTypes     []EnrichRule
	CategoryMembers map[string][]domain.CategoryTag

	DescriptionKeywords *Pattern
	FirstPerson         *Pattern
	Sentence            *Pattern
}

// PatternSpec is the YAML form of a pattern. A bare string is accepted as Pattern.
type PatternSpec struct {
	Pattern          string `yaml:"pattern"`
	UnlessFollowedBy string `yaml:"unless_followed_by,omitempty"`
}

// TypeRuleSpec is the YAML form of a TypeRule.
type TypeRuleSpec struct {
	Tag        string      `yaml:"tag"`
	Pattern    PatternSpec `yaml:"pattern"`
	Categories []string    `yaml:"categories,omitempty"`
	SkipIf     []string    `yaml:"skip_if,omitempty"`
	Prepend    bool        `yaml:"prepend,omitempty"`
}

// AmenityRuleSpec is the YAML form of an AmenityRule.
type AmenityRuleSpec struct {
	Tag     string      `yaml:"tag"`
	Pattern PatternSpec `yaml:"pattern"`
}

// EnrichRuleSpec is the YAML form of an EnrichRule.
type EnrichRuleSpec struct {
	Tag      string      `yaml:"tag"`
	Pattern  PatternSpec `yaml:"pattern"`
	Category string      `yaml:"category"`
	NameOnly bool        `yaml:"name_only,omitempty"`
}

// File is the uncompiled rule table, as written in Go defaults or YAML.
type File struct {
	ExcludedTypes   []string      `yaml:"excluded_types"`
	ExcludedNames   []PatternSpec `yaml:"excluded_names"`
	SaunaKeywords   []PatternSpec `yaml:"sauna_keywords"`
	BrandWhitelist  []PatternSpec `yaml:"brand_whitelist"`
	GymWhitelist    []PatternSpec `yaml:"gym_whitelist"`
	HotelCategories []string      `yaml:"hotel_categories"`
	HotelName       string        `yaml:"hotel_name"`
	GymCategories   []string      `yaml:"gym_categories"`
	GymName         string        `yaml:"gym_name"`

	NameTypes   []TypeRuleSpec    `yaml:"name_types"`
	CorpusTypes []TypeRuleSpec    `yaml:"corpus_types"`
	Fallbacks   []TypeRuleSpec    `yaml:"fallbacks"`
	Amenities   []AmenityRuleSpec `yaml:"amenities"`

	EnrichAmenities []AmenityRuleSpec   `yaml:"enrich_amenities"`
	EnrichTypes     []EnrichRuleSpec    `yaml:"enrich_types"`
	CategoryMembers map[string][]string `yaml:"category_members"`

	DescriptionKeywords string `yaml:"description_keywords"`
	FirstPerson         string `yaml:"first_person"`
	Sentence            string `yaml:"sentence"`
}

// Compile turns a File into a Set. Every pattern is matched case-insensitively.
func Compile(f File) (*Set, error) {
	c := &compiler{}
	s := &Set{
		ExcludedTypes:   toSet(f.ExcludedTypes),
		ExcludedNames:   c.patterns(f.ExcludedNames),
		SaunaKeywords:   c.patterns(f.SaunaKeywords),
		BrandWhitelist:  c.patterns(f.BrandWhitelist),
		GymWhitelist:    c.patterns(f.GymWhitelist),
		HotelCategories: toSet(f.HotelCategories),
		HotelName:       c.pattern(PatternSpec{Pattern: f.HotelName}),
		GymCategories:   toSet(f.GymCategories),
		GymName:         c.pattern(PatternSpec{Pattern: f.GymName}),

		NameTypes:   c.typeRules(f.NameTypes),
		CorpusTypes: c.typeRules(f.CorpusTypes),
		Fallbacks:   c.typeRules(f.Fallbacks),
		Amenities:   c.amenityRules(f.Amenities),

		EnrichAmenities: c.amenityRules(f.EnrichAmenities),
		EnrichTypes:     c.enrichRules(f.EnrichTypes),
		CategoryMembers: make(map[string][]domain.CategoryTag, len(f.CategoryMembers)),

		DescriptionKeywords: c.pattern(PatternSpec{Pattern: f.DescriptionKeywords}),
		FirstPerson:         c.pattern(PatternSpec{Pattern: f.FirstPerson}),
		Sentence:            c.pattern(PatternSpec{Pattern: f.Sentence}),
	}
	for category, members := range f.CategoryMembers {
		s.CategoryMembers[category] = toTags(members)
	}
	if c.err != nil {
		return nil, c.err
	}
	return s, nil
}

// compiler keeps the first compile error so Compile reads as a flat table.
type compiler struct {
	err error
}

func (c *compiler) pattern(spec PatternSpec) *Pattern {
	if spec.Pattern == "" {
		return nil
	}
	re, err := compileInsensitive(spec.Pattern)
	if err != nil {
		c.fail(spec.Pattern, err)
		return nil
	}
	p := &Pattern{Source: spec.Pattern, re: re}
	if spec.UnlessFollowedBy != "" {
		unless, err := compileInsensitive(spec.UnlessFollowedBy)
		if err != nil {
			c.fail(spec.UnlessFollowedBy, err)
			return nil
		}
		p.unless = unless
	}
	return p
}

func (c *compiler) patterns(specs []PatternSpec) []*Pattern {
	out := make([]*Pattern, 0, len(specs))
	for _, spec := range specs {
		if p := c.pattern(spec); p != nil {
			out = append(out, p)
		}
	}
	return out
}

func (c *compiler) typeRules(specs []TypeRuleSpec) []TypeRule {
	out := make([]TypeRule, 0, len(specs))
	for _, spec := range specs {
		if spec.Tag == "" {
			c.fail("", fmt.Errorf("type rule without tag"))
			continue
		}
		out = append(out, TypeRule{
			Tag:        domain.CategoryTag(spec.Tag),
			Pattern:    c.pattern(spec.Pattern),
			Categories: toSet(spec.Categories),
			SkipIf:     toTags(spec.SkipIf),
			Prepend:    spec.Prepend,
		})
	}
	return out
}

func (c *compiler) amenityRules(specs []AmenityRuleSpec) []AmenityRule {
	out := make([]AmenityRule, 0, len(specs))
	for _, spec := range specs {
		if spec.Tag == "" {
			c.fail("", fmt.Errorf("amenity rule without tag"))
			continue
		}
		out = append(out, AmenityRule{
			Tag:     domain.AmenityTag(spec.Tag),
			Pattern: c.pattern(spec.Pattern),
		})
	}
	return out
}

func (c *compiler) enrichRules(specs []EnrichRuleSpec) []EnrichRule {
	out := make([]EnrichRule, 0, len(specs))
	for _, spec := range specs {
		out = append(out, EnrichRule{
			Tag:      domain.CategoryTag(spec.Tag),
			Pattern:  c.pattern(spec.Pattern),
			Category: spec.Category,
			NameOnly: spec.NameOnly,
		})
	}
	return out
}

func (c *compiler) fail(source string, err error) {
	if c.err == nil {
		c.err = fmt.Errorf("%w: %q: %v", domain.ErrInvalidRules, source, err)
	}
}

func compileInsensitive(expr string) (*regexp.Regexp, error) {
	if !strings.HasPrefix(expr, "(?i)") {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func toTags(values []string) []domain.CategoryTag {
	tags := make([]domain.CategoryTag, 0, len(values))
	for _, v := range values {
		tags = append(tags, domain.CategoryTag(v))
	}
	return tags
}
