package rules

import "github.com/saunafinder/backend/internal/domain"

// Default returns the built-in rule set. It panics only if the built-in tables
// fail to compile, which the package tests guard against.
func Default() *Set {
	s, err := Compile(DefaultFile())
	if err != nil {
		panic(err)
	}
	return s
}

func p(expr string) PatternSpec { return PatternSpec{Pattern: expr} }

func ps(exprs ...string) []PatternSpec {
	out := make([]PatternSpec, len(exprs))
	for i, e := range exprs {
		out[i] = p(e)
	}
	return out
}

func tag(t domain.CategoryTag) string { return string(t) }

// DefaultFile returns the uncompiled built-in tables. Callers may modify the
// returned value; each call builds a fresh copy.
func DefaultFile() File {
	return File{
		// Provider categories that disqualify a place outright
		ExcludedTypes: []string{
			"park", "playground", "amusement_park", "zoo",
			"restaurant", "bar", "night_club", "cafe", "bakery",
			"store", "shopping_mall", "clothing_store", "shoe_store",
			"supermarket", "grocery_store", "convenience_store",
			"school", "university", "library", "museum",
			"church", "mosque", "synagogue", "hindu_temple",
			"police", "fire_station", "hospital", "doctor",
			"dentist", "pharmacy", "veterinary_care",
			"car_dealer", "car_repair", "car_wash", "gas_station",
			"real_estate_agency", "insurance_agency", "bank", "atm",
			"laundry", "locksmith", "moving_company",
			"post_office", "storage", "cemetery",
			"movie_theater", "bowling_alley", "stadium",
		},
		ExcludedNames: append(
			[]PatternSpec{
				p(`playground`),
				{Pattern: `\bpark\b`, UnlessFollowedBy: `spa|sauna|bath|slope`},
			},
			ps(
				`\bsex\b`, `adult\s*(store|shop|toy|entertain)`, `romantic\s+depot`,
				`nail\s*(salon|spa|bar|lounge)`, `hair\s*salon`, `\bbarber\b`,
				`tattoo`, `pierc`, `laund`, `dry\s*clean`,
				`\bpet\b`, `\bdog\b`, `\bvet(erinar)?\b`,
				`car\s*wash`, `\bdental\b`, `orthodon`,
				`real\s*estate`, `\binsurance\b`, `\battorney\b`, `\blawyer\b`,
				`\bcolonics?\b`, `\bcryotherapy\b`, `\bcryoskin\b`,
				`head\s*spa`, `scalp\s*(care|treat)`,
				`community\s*center`, `recreation\s*center`,
				`\bchurch\b`, `\bmosque\b`, `\bsynagogue\b`,
				`children'?s?\s*fitness`, `\bkids?\b`,
			)...,
		),
		SaunaKeywords: ps(
			`sauna`, `bath\s*house`, `\bbanya\b`, `\bhammam\b`, `\bonsen\b`,
			`cold\s*plunge`, `\binfrared\b`, `steam\s*(room|lounge)`,
			`\bfloat(s|ation)?\b`, `\bthermal\b`, `\bthermae\b`,
			`\bsoak\b`, `hot\s*tub`, `\bplunge\b`,
			`\bbath(s|ing)?\b`,
		),
		BrandWhitelist: ps(
			`othership`, `remedy\s*place`, `higher\s*dose`, `clean\s*market`,
			`restore\s*(hyper)?\s*wellness`, `perspire`, `recoverie`,
			`grind\s*house`, `sage\s*\+?\s*sound`, `aire\s*ancient`,
			`city\s*well`, `kontra`, `akari`, `lore\s*bathing`,
		),
		GymWhitelist: ps(
			`equinox`, `life\s*time`, `\btmpl\b`, `chelsea\s*piers`,
			`\bvital\b.*\b(climbing|gym)\b`, `brooklyn\s*boulders`,
			`powerhouse\s*gym`, `mercedes\s*club`,
			`complete\s*body`, `manhattan\s*plaza`, `harbor\s*fitness`,
		),
		HotelCategories: []string{"hotel", "lodging", "resort_hotel"},
		HotelName:       `\bhotel\b|\bresort\b`,
		GymCategories:   []string{"gym", "fitness_center", "health_club"},
		GymName:         `\bgym\b|\bfitness\b`,

		NameTypes: []TypeRuleSpec{
			{Tag: tag(domain.TagRussianBathhouse), Pattern: p(`banya|russian.*bath`)},
			{Tag: tag(domain.TagModernBathhouse), Pattern: p(`bath\s*house|\bbathing\b`),
				SkipIf: []string{tag(domain.TagRussianBathhouse)}},
			{Tag: tag(domain.TagKoreanSpa), Pattern: p(`korean|k[-\s]?spa|jjimjil`)},
			{Tag: tag(domain.TagTraditionalBathhouse), Pattern: p(`hammam|moroccan.*bath|turkish.*bath`)},
			{Tag: tag(domain.TagInfraredSauna), Pattern: p(`infrared`)},
			{Tag: tag(domain.TagFloatSpa), Pattern: p(`float`)},
			{Tag: tag(domain.TagGymSauna),
				Pattern:    p(`\bgym\b|\bfitness\b|equinox|life\s*time|crunch|tmpl|climbing|boulders`),
				Categories: []string{"gym", "fitness_center", "health_club"}},
			{Tag: tag(domain.TagHotelSpa), Pattern: p(`\bhotel\b|\bresort\b`),
				Categories: []string{"hotel", "lodging", "resort_hotel"}},
		},
		CorpusTypes: []TypeRuleSpec{
			{Tag: tag(domain.TagKoreanSpa), Pattern: p(`korean\s*(spa|bath)|jjimjil`), Prepend: true},
			{Tag: tag(domain.TagRussianBathhouse), Pattern: p(`russian|banya`), Prepend: true},
			{Tag: tag(domain.TagTraditionalBathhouse), Pattern: p(`hammam|turkish\s*bath|moroccan`), Prepend: true},
			{Tag: tag(domain.TagInfraredSauna), Pattern: p(`infrared`), Prepend: true},
			{Tag: tag(domain.TagFloatSpa), Pattern: p(`float(ation)?[\s-]*(tank|pod|therapy|spa|center)`), Prepend: true},
			{Tag: tag(domain.TagModernBathhouse), Pattern: p(`bath\s*house|communal\s*bath|\bbathing\b`)},
		},
		Fallbacks: []TypeRuleSpec{
			{Tag: tag(domain.TagBoutiqueSauna), Pattern: p(`sauna`)},
			{Tag: tag(domain.TagDaySpa), Pattern: p(`\bspa\b|wellness`)},
			{Tag: tag(domain.TagWellnessCenter), Pattern: p(`recovery|plunge`)},
		},
		Amenities: []AmenityRuleSpec{
			{Tag: string(domain.AmenityDrySauna), Pattern: p(`dry\s*sauna|heated\s*sauna|traditional\s*sauna|finnish\s*sauna|cedar\s*sauna|wood[\s-]*(fired\s*)?sauna|barrel\s*sauna`)},
			{Tag: string(domain.AmenityColdPlunge), Pattern: p(`cold\s*plunge|ice\s*bath|cold\s*(pool|tub|dip)|plunge\s*pool|cold\s*immersion`)},
			{Tag: string(domain.AmenitySteamRoom), Pattern: p(`steam\s*room|steam\s*bath|eucalyptus\s*steam`)},
			{Tag: string(domain.AmenityMassage), Pattern: p(`\bmassage\b|body\s*scrub`)},
			{Tag: string(domain.AmenityPool), Pattern: p(`swimming\s*pool|lap\s*pool|hot\s*tub|jacuzzi|whirlpool|soaking\s*(tub|pool)|thermal\s*pool|rooftop\s*pool|outdoor\s*pool|indoor\s*pool|\bpool\b`)},
			{Tag: string(domain.AmenityCoed), Pattern: p(`co[-\s]?ed|mixed[-\s]?gender|men\s*and\s*women|all\s*genders?\b`)},
			{Tag: string(domain.AmenityPrivate), Pattern: p(`private\s*(room|suite|session|sauna|cabin|pod|bath|experience)`)},
		},

		EnrichAmenities: []AmenityRuleSpec{
			{Tag: string(domain.AmenityColdPlunge), Pattern: p(`cold\s*plunge|ice\s*bath|frigidarium|cold\s*dip|polar\s*plunge|shock\s*pool|cold\s*tub|cold\s*(pool|immersion)|plunge\s*pool`)},
			{Tag: string(domain.AmenitySteamRoom), Pattern: p(`steam\s*room|steam\s*bath|eucalyptus|wet\s*room|\bhammam\b|turkish\s*bath`)},
			{Tag: string(domain.AmenityCoed), Pattern: p(`co[-\s]?ed|mixed[-\s]?gender|couples|communal|bathing\s*suit|swimwear\s*required|men\s*and\s*women|all\s*genders?\b`)},
			{Tag: string(domain.AmenityPrivate), Pattern: p(`private\s*(room|suite|session|sauna|cabin|pod|bath|experience)|suites|personal\s*room|hourly\s*booking`)},
			{Tag: string(domain.AmenityPool), Pattern: p(`hot\s*tub|jacuzzi|whirlpool|soaking\s*tub|hydrotherapy|swimming\s*pool|lap\s*pool|thermal\s*pool|rooftop\s*pool|indoor\s*pool|outdoor\s*pool`)},
			{Tag: string(domain.AmenityMassage), Pattern: p(`\bmassage\b|body\s*scrub`)},
			{Tag: string(domain.AmenityDrySauna), Pattern: p(`dry\s*sauna|heated\s*sauna|traditional\s*sauna|finnish\s*sauna|cedar\s*sauna|wood[\s-]*(fired\s*)?sauna|barrel\s*sauna`)},
			{Tag: string(domain.AmenityInfraredSauna), Pattern: p(`infrared`)},
		},
		EnrichTypes: []EnrichRuleSpec{
			{Tag: tag(domain.TagRussianBanya), Pattern: p(`\bbanya\b`), Category: "russian", NameOnly: true},
			{Tag: tag(domain.TagKoreanSpa), Pattern: p(`jjimjilbang|korean.*scrub|body\s*scrub.*korean`), Category: "korean"},
			{Tag: tag(domain.TagPrivateSaunaStudio), Pattern: p(`private\s*(room\s*)?booking|book\s*a\s*private|hourly\s*(private\s*)?session`), Category: "private"},
			{Tag: tag(domain.TagInfraredSauna), Pattern: p(`infrared`), Category: "infrared", NameOnly: true},
		},
		CategoryMembers: map[string][]string{
			"russian":  {"Russian Banya", "Russian Bathhouse", "Traditional Banya", "Traditional Russian Banya"},
			"korean":   {"Korean Spa", "Korean Day Spa", "Korean Fitness & Spa"},
			"private":  {"Private Sauna Studio", "Boutique Sauna"},
			"infrared": {"Infrared Sauna"},
		},

		DescriptionKeywords: `sauna|steam|bath|plunge|spa|relax|hot|cold|wellness|pool|soak|thermal`,
		FirstPerson:         `\bI\b|\bmy\s|\bwe\s|\bour\s`,
		Sentence:            `[^.!?]+[.!?]`,
	}
}
