package usecase

import (
	"log"
	"regexp"
	"strings"

	"github.com/saunafinder/backend/internal/domain"
)

// leadingStreetNumber matches the digit run a street address starts with
var leadingStreetNumber = regexp.MustCompile(`^(\d+)`)

// defaultNameOverlapThreshold is the shared-word ratio above which two names are similar
const defaultNameOverlapThreshold = 0.7

// MatchConfig holds configuration for the dedup matcher
type MatchConfig struct {
	NameOverlapThreshold float64
	EnableDebugLogging   bool
}

// DedupMatcher decides whether a candidate is a venue the store already has
type DedupMatcher struct {
	nameOverlapThreshold float64
	enableDebugLogging   bool
}

// NewDedupMatcher creates a matcher with the given configuration
func NewDedupMatcher(config MatchConfig) *DedupMatcher {
	threshold := config.NameOverlapThreshold
	if threshold <= 0 || threshold > 1 {
		threshold = defaultNameOverlapThreshold
	}

	return &DedupMatcher{
		nameOverlapThreshold: threshold,
		enableDebugLogging:   config.EnableDebugLogging,
	}
}

// IsDuplicate returns the existing venue the candidate refers to, or nil.
//
// An exact external id match wins outright. Otherwise the first venue with a
// similar name is returned, unless both addresses start with a street number
// and the numbers differ.
func (m *DedupMatcher) IsDuplicate(candidate domain.RawCandidate, existing []domain.ExistingVenue) *domain.ExistingVenue {
	if candidate.ExternalID != "" {
		for i := range existing {
			if existing[i].ExternalID == candidate.ExternalID {
				if m.enableDebugLogging {
					log.Printf("[MATCH] %q matched #%d by external id", candidate.DisplayName, existing[i].ID)
				}
				return &existing[i]
			}
		}
	}

	candidateStreet := extractStreetNumber(candidate.FormattedAddress)
	candidateTokens := tokenize(candidate.DisplayName)

	for i := range existing {
		ex := &existing[i]
		if !m.similarTokens(candidateTokens, tokenize(ex.Name)) {
			continue
		}

		exStreet := extractStreetNumber(ex.Address)
		if candidateStreet != "" && exStreet != "" && candidateStreet != exStreet {
			if m.enableDebugLogging {
				log.Printf("[MATCH] %q ~ %q but street numbers differ (%s vs %s)",
					candidate.DisplayName, ex.Name, candidateStreet, exStreet)
			}
			continue
		}

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q matched #%d %q by name", candidate.DisplayName, ex.ID, ex.Name)
		}
		return ex
	}

	return nil
}

// IsSimilar reports whether two venue names refer to the same place: equal
// after normalization, one containing the other, or sharing enough words.
func (m *DedupMatcher) IsSimilar(a, b string) bool {
	return m.similarTokens(tokenize(a), tokenize(b))
}

func (m *DedupMatcher) similarTokens(tokensA, tokensB []string) bool {
	// An empty name carries no identity; it would otherwise be a substring of everything.
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return false
	}

	na := strings.Join(tokensA, " ")
	nb := strings.Join(tokensB, " ")
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}

	return nameOverlap(tokensA, tokensB) >= m.nameOverlapThreshold
}

// nameOverlap is the number of distinct shared words divided by the larger word count
func nameOverlap(tokensA, tokensB []string) float64 {
	common, _ := findIntersection(tokensA, tokensB)
	larger := max(len(tokensA), len(tokensB))
	return float64(common) / float64(larger)
}

// extractStreetNumber returns the digit run an address starts with, or ""
func extractStreetNumber(address string) string {
	m := leadingStreetNumber.FindStringSubmatch(address)
	if m == nil {
		return ""
	}
	return m[1]
}
