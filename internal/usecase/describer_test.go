package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/saunafinder/backend/internal/domain"
)

func TestDescribeEditorial(t *testing.T) {
	d := NewDescriber(nil)

	t.Run("exactly 150 characters is returned unchanged", func(t *testing.T) {
		editorial := strings.Repeat("a", 149) + "."
		if got := d.Describe(editorial, nil, nil); got != editorial {
			t.Errorf("Describe = %q, want input unchanged", got)
		}
	})

	t.Run("151 characters with a sentence boundary returns the first sentence", func(t *testing.T) {
		first := strings.Repeat("b", 79) + "."
		editorial := first + strings.Repeat("c", 71)
		if utf8.RuneCountInString(editorial) != 151 {
			t.Fatalf("setup: length = %d", utf8.RuneCountInString(editorial))
		}
		if got := d.Describe(editorial, nil, nil); got != first {
			t.Errorf("Describe = %q, want %q", got, first)
		}
	})

	t.Run("151 characters without a boundary is truncated with an ellipsis", func(t *testing.T) {
		editorial := strings.Repeat("d", 151)
		got := d.Describe(editorial, nil, nil)
		if n := utf8.RuneCountInString(got); n != 150 {
			t.Errorf("length = %d, want 150", n)
		}
		if got != strings.Repeat("d", 147)+"..." {
			t.Errorf("Describe = %q, want 147-character prefix plus ellipsis", got)
		}
	})

	t.Run("lengths are counted in characters, not bytes", func(t *testing.T) {
		editorial := strings.Repeat("é", 150)
		if got := d.Describe(editorial, nil, nil); got != editorial {
			t.Errorf("Describe truncated a 150-character summary")
		}
	})

	t.Run("editorial wins over reviews and types", func(t *testing.T) {
		reviews := []domain.Review{{Text: "The steam room and cold plunge were wonderful here."}}
		got := d.Describe("A calm bathhouse.", reviews, []domain.CategoryTag{domain.TagKoreanSpa})
		if got != "A calm bathhouse." {
			t.Errorf("Describe = %q", got)
		}
	})
}

func TestDescribeReviews(t *testing.T) {
	d := NewDescriber(nil)

	t.Run("picks the first descriptive sentence", func(t *testing.T) {
		reviews := []domain.Review{
			{Rating: 5, Text: "Wow. I loved the sauna and the cold plunge so much!"},
			{Rating: 4, Text: "Nice. The steam room and cold plunge are kept spotless. Staff were kind."},
		}
		want := "The steam room and cold plunge are kept spotless."
		if got := d.Describe("", reviews, nil); got != want {
			t.Errorf("Describe = %q, want %q", got, want)
		}
	})

	t.Run("skips short sentences", func(t *testing.T) {
		reviews := []domain.Review{{Text: "Great sauna. Hot pool."}}
		got := d.Describe("", reviews, []domain.CategoryTag{domain.TagDaySpa})
		if got != "Day Spa offering sauna and wellness experiences." {
			t.Errorf("Describe = %q", got)
		}
	})

	t.Run("skips sentences without a domain keyword", func(t *testing.T) {
		reviews := []domain.Review{{Text: "The front desk staff were friendly and the lobby was clean."}}
		if got := d.Describe("", reviews, nil); got != "" {
			t.Errorf("Describe = %q, want empty", got)
		}
	})

	t.Run("skips first person sentences", func(t *testing.T) {
		reviews := []domain.Review{{Text: "We spent the whole afternoon in the thermal pool area."}}
		if got := d.Describe("", reviews, nil); got != "" {
			t.Errorf("Describe = %q, want empty", got)
		}
	})
}

func TestDescribeFallbacks(t *testing.T) {
	d := NewDescriber(nil)

	t.Run("type template", func(t *testing.T) {
		got := d.Describe("", nil, []domain.CategoryTag{domain.TagKoreanSpa, domain.TagDaySpa})
		if got != "Korean Spa offering sauna and wellness experiences." {
			t.Errorf("Describe = %q", got)
		}
	})

	t.Run("nothing to describe", func(t *testing.T) {
		if got := d.Describe("", nil, nil); got != "" {
			t.Errorf("Describe = %q, want empty", got)
		}
	})
}
