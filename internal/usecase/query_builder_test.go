package usecase

import (
	"testing"

	"github.com/saunafinder/backend/internal/domain"
)

func TestQueryBuilderBuild(t *testing.T) {
	b := NewQueryBuilder(nil, nil, false)
	city := domain.City{
		Slug:          "sf",
		FullName:      "San Francisco",
		Neighborhoods: []string{"Mission District", "Japantown"},
	}

	queries := b.Build(city)

	t.Run("count", func(t *testing.T) {
		want := 15 + 2*4
		if len(queries) != want {
			t.Fatalf("len(queries) = %d, want %d", len(queries), want)
		}
	})

	t.Run("city-wide queries come first", func(t *testing.T) {
		if queries[0] != "sauna in San Francisco" {
			t.Errorf("queries[0] = %q", queries[0])
		}
		if queries[14] != "wellness center with sauna in San Francisco" {
			t.Errorf("queries[14] = %q", queries[14])
		}
	})

	t.Run("neighborhood queries follow in order", func(t *testing.T) {
		want := []string{
			"sauna in Mission District San Francisco",
			"bathhouse in Mission District San Francisco",
			"spa with sauna in Mission District San Francisco",
			"gym with sauna Mission District San Francisco",
			"sauna in Japantown San Francisco",
		}
		for i, w := range want {
			if queries[15+i] != w {
				t.Errorf("queries[%d] = %q, want %q", 15+i, queries[15+i], w)
			}
		}
	})
}

func TestQueryBuilderCustomTemplates(t *testing.T) {
	b := NewQueryBuilder([]string{"banya {CITY}"}, []string{}, false)
	got := b.Build(domain.City{FullName: "Chicago", Neighborhoods: []string{"Loop"}})
	if len(got) != 1 || got[0] != "banya Chicago" {
		t.Errorf("Build = %v", got)
	}
}

func TestExpandTemplate(t *testing.T) {
	if got := expandTemplate("sauna in {NEIGHBORHOOD} {CITY}", "Miami", ""); got != "sauna in Miami" {
		t.Errorf("expandTemplate = %q", got)
	}
}
