package usecase

import (
	"testing"

	"github.com/saunafinder/backend/internal/domain"
)

func reviewCount(n int) *int { return &n }

func TestNewInclusionFilter(t *testing.T) {
	t.Run("uses default minimum reviews when zero", func(t *testing.T) {
		f := NewInclusionFilter(FilterConfig{})
		if f.minReviews != 10 {
			t.Errorf("minReviews = %d, want 10", f.minReviews)
		}
	})

	t.Run("uses provided minimum reviews", func(t *testing.T) {
		f := NewInclusionFilter(FilterConfig{MinReviews: 3})
		if f.minReviews != 3 {
			t.Errorf("minReviews = %d, want 3", f.minReviews)
		}
	})
}

func TestShouldInclude(t *testing.T) {
	f := NewInclusionFilter(FilterConfig{})

	tests := []struct {
		name       string
		candidate  domain.RawCandidate
		wantInc    bool
		wantReason string
		wantDetail string
	}{
		{
			name:       "restaurant category excludes even a sauna name",
			candidate:  domain.RawCandidate{DisplayName: "Sauna Bar & Grill", ReviewCount: reviewCount(500), ProviderCategories: []string{"spa", "restaurant"}},
			wantReason: domain.ReasonExcludedType,
			wantDetail: "restaurant",
		},
		{
			name:       "park name",
			candidate:  domain.RawCandidate{DisplayName: "McCarren Park", ReviewCount: reviewCount(900)},
			wantReason: domain.ReasonExcludedName,
			wantDetail: `\bpark\b`,
		},
		{
			name:       "park followed by sauna is kept",
			candidate:  domain.RawCandidate{DisplayName: "Central Park Sauna", ReviewCount: reviewCount(40)},
			wantInc:    true,
			wantReason: domain.ReasonSaunaKeyword,
			wantDetail: "sauna",
		},
		{
			name:       "park slope neighborhood is kept",
			candidate:  domain.RawCandidate{DisplayName: "Park Slope Bathhouse", ReviewCount: reviewCount(40)},
			wantInc:    true,
			wantReason: domain.ReasonSaunaKeyword,
			wantDetail: `bath\s*house`,
		},
		{
			name:       "nail spa",
			candidate:  domain.RawCandidate{DisplayName: "Lux Nail Spa", ReviewCount: reviewCount(120)},
			wantReason: domain.ReasonExcludedName,
			wantDetail: `nail\s*(salon|spa|bar|lounge)`,
		},
		{
			name:       "too few reviews",
			candidate:  domain.RawCandidate{DisplayName: "Tiny Sauna", ReviewCount: reviewCount(9)},
			wantReason: domain.ReasonTooFewReviews,
			wantDetail: "9",
		},
		{
			name:       "missing review count counts as zero",
			candidate:  domain.RawCandidate{DisplayName: "Tiny Sauna"},
			wantReason: domain.ReasonTooFewReviews,
			wantDetail: "0",
		},
		{
			name:       "exactly the minimum passes",
			candidate:  domain.RawCandidate{DisplayName: "Tiny Sauna", ReviewCount: reviewCount(10)},
			wantInc:    true,
			wantReason: domain.ReasonSaunaKeyword,
			wantDetail: "sauna",
		},
		{
			name:       "known brand",
			candidate:  domain.RawCandidate{DisplayName: "Othership Flatiron", ReviewCount: reviewCount(300)},
			wantInc:    true,
			wantReason: domain.ReasonKnownBrand,
			wantDetail: "othership",
		},
		{
			name:       "hotel by category",
			candidate:  domain.RawCandidate{DisplayName: "The Greenwich", ReviewCount: reviewCount(800), ProviderCategories: []string{"lodging"}},
			wantInc:    true,
			wantReason: domain.ReasonHotelResort,
		},
		{
			name:       "hotel by name",
			candidate:  domain.RawCandidate{DisplayName: "William Vale Hotel", ReviewCount: reviewCount(800)},
			wantInc:    true,
			wantReason: domain.ReasonHotelResort,
		},
		{
			name:       "whitelisted gym",
			candidate:  domain.RawCandidate{DisplayName: "Equinox Hudson Yards", ReviewCount: reviewCount(200), ProviderCategories: []string{"gym"}},
			wantInc:    true,
			wantReason: domain.ReasonWhitelistedGym,
			wantDetail: "equinox",
		},
		{
			name:       "gym without confirmed saunas",
			candidate:  domain.RawCandidate{DisplayName: "Planet Fitness", ReviewCount: reviewCount(200)},
			wantReason: domain.ReasonGymUnconfirmed,
		},
		{
			name:       "no signals",
			candidate:  domain.RawCandidate{DisplayName: "Generic Wellness LLC", ReviewCount: reviewCount(50)},
			wantReason: domain.ReasonNoSignals,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.ShouldInclude(tt.candidate)
			if got.Include != tt.wantInc {
				t.Errorf("Include = %v, want %v (%s)", got.Include, tt.wantInc, got)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.wantReason)
			}
			if got.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}

func TestShouldIncludeLowReviewsWithoutSignals(t *testing.T) {
	f := NewInclusionFilter(FilterConfig{})

	names := []string{"Generic Wellness LLC", "Serenity Day Spa", "Massage Envy", "Recovery Room"}
	for n := 0; n < 10; n++ {
		for _, name := range names {
			got := f.ShouldInclude(domain.RawCandidate{DisplayName: name, ReviewCount: reviewCount(n)})
			if got.Include {
				t.Errorf("%q with %d reviews was included (%s)", name, n, got)
			}
		}
	}
}

func TestShouldIncludeCustomMinimum(t *testing.T) {
	f := NewInclusionFilter(FilterConfig{MinReviews: 3})

	got := f.ShouldInclude(domain.RawCandidate{DisplayName: "New Sauna", ReviewCount: reviewCount(5)})
	if !got.Include {
		t.Errorf("expected inclusion with 5 reviews and minimum 3, got %s", got)
	}
}

func TestShouldIncludeScenario(t *testing.T) {
	f := NewInclusionFilter(FilterConfig{})

	candidates := []domain.RawCandidate{
		{ExternalID: "a", DisplayName: "Sunlighten Infrared Studio", ReviewCount: reviewCount(50)},
		{ExternalID: "b", DisplayName: "Sauna Splash Pad", ReviewCount: reviewCount(200), ProviderCategories: []string{"playground"}},
		{ExternalID: "c", DisplayName: "Serenity Spa", ReviewCount: reviewCount(3)},
	}

	decisions := make([]domain.Decision, len(candidates))
	for i, c := range candidates {
		decisions[i] = f.ShouldInclude(c)
	}

	if !decisions[0].Include {
		t.Errorf("infrared studio excluded: %s", decisions[0])
	}
	if decisions[1].Include || decisions[1].Reason != domain.ReasonExcludedType {
		t.Errorf("playground decision = %s, want excluded type", decisions[1])
	}
	if decisions[2].Include || decisions[2].Reason != domain.ReasonTooFewReviews {
		t.Errorf("low review decision = %s, want too few reviews", decisions[2])
	}
}
