package domain

import "time"

// CategoryTag describes the style of a venue. Order within a venue's types matters:
// specific tags come before generic fallbacks.
type CategoryTag string

const (
	TagRussianBathhouse     CategoryTag = "Russian Bathhouse"
	TagModernBathhouse      CategoryTag = "Modern Bathhouse"
	TagKoreanSpa            CategoryTag = "Korean Spa"
	TagTraditionalBathhouse CategoryTag = "Traditional Bathhouse"
	TagInfraredSauna        CategoryTag = "Infrared Sauna"
	TagFloatSpa             CategoryTag = "Float Spa"
	TagGymSauna             CategoryTag = "Gym Sauna"
	TagHotelSpa             CategoryTag = "Hotel Spa"
	TagBoutiqueSauna        CategoryTag = "Boutique Sauna"
	TagDaySpa               CategoryTag = "Day Spa"
	TagWellnessCenter       CategoryTag = "Wellness Center"
	TagRussianBanya         CategoryTag = "Russian Banya"
	TagPrivateSaunaStudio   CategoryTag = "Private Sauna Studio"
)

// AmenityTag is a feature a venue offers. A venue's amenities form a set.
type AmenityTag string

const (
	AmenityDrySauna      AmenityTag = "dry_sauna"
	AmenityInfraredSauna AmenityTag = "infrared_sauna"
	AmenityColdPlunge    AmenityTag = "cold_plunge"
	AmenitySteamRoom     AmenityTag = "steam_room"
	AmenityMassage       AmenityTag = "massage"
	AmenityPool          AmenityTag = "pool"
	AmenityCoed          AmenityTag = "coed"
	AmenityPrivate       AmenityTag = "private"
)

// PriceTier is the provider's price level, e.g. "PRICE_LEVEL_MODERATE".
type PriceTier string

const (
	PriceFree          PriceTier = "PRICE_LEVEL_FREE"
	PriceInexpensive   PriceTier = "PRICE_LEVEL_INEXPENSIVE"
	PriceModerate      PriceTier = "PRICE_LEVEL_MODERATE"
	PriceExpensive     PriceTier = "PRICE_LEVEL_EXPENSIVE"
	PriceVeryExpensive PriceTier = "PRICE_LEVEL_VERY_EXPENSIVE"
)

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Review is a single review snippet returned by the places provider.
type Review struct {
	Rating float64 `json:"rating"`
	Text   string  `json:"text"`
}

// PhotoRef points at a provider-hosted photo, e.g. "places/abc/photos/xyz".
type PhotoRef struct {
	Name string `json:"name"`
}

// RawCandidate is an unverified search result from the places provider.
// Optional fields are pointers or empty values; nothing downstream requires them.
type RawCandidate struct {
	ExternalID         string     `json:"externalId"`
	DisplayName        string     `json:"displayName"`
	FormattedAddress   string     `json:"formattedAddress"`
	Location           *Location  `json:"location,omitempty"`
	Rating             *float64   `json:"rating,omitempty"`
	ReviewCount        *int       `json:"reviewCount,omitempty"`
	PriceTier          PriceTier  `json:"priceTier,omitempty"`
	OpeningHours       []string   `json:"openingHours,omitempty"`
	ProviderCategories []string   `json:"providerCategories,omitempty"`
	WebsiteURL         string     `json:"websiteUrl,omitempty"`
	EditorialSummary   string     `json:"editorialSummary,omitempty"`
	ReviewSnippets     []Review   `json:"reviewSnippets,omitempty"`
	Photos             []PhotoRef `json:"photos,omitempty"`
}

// Reviews returns the review count, treating a missing count as zero.
func (c RawCandidate) Reviews() int {
	if c.ReviewCount == nil {
		return 0
	}
	return *c.ReviewCount
}

// ExistingVenue is the slim snapshot of a stored venue used for deduplication.
type ExistingVenue struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	ExternalID string `json:"externalId,omitempty"`
}

// ClassifiedVenue is a pipeline output record ready to be inserted.
type ClassifiedVenue struct {
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Neighborhood string        `json:"neighborhood,omitempty"`
	Lat          *float64      `json:"lat,omitempty"`
	Lng          *float64      `json:"lng,omitempty"`
	Rating       *float64      `json:"rating,omitempty"`
	ReviewCount  *int          `json:"reviewCount,omitempty"`
	Price        string        `json:"price,omitempty"` // "$", "$$" or "$$$"
	Types        []CategoryTag `json:"types"`
	Amenities    []AmenityTag  `json:"amenities"`
	Hours        string        `json:"hours"`
	ExternalID   string        `json:"externalId"`
	Description  string        `json:"description"`
	CitySlug     string        `json:"citySlug"`
	WebsiteURL   string        `json:"websiteUrl,omitempty"`
}

// Venue is a full stored record.
type Venue struct {
	ID int64 `json:"id"`
	ClassifiedVenue
	Photos    []string  `json:"photos,omitempty"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// Snapshot returns the dedup view of a stored venue.
func (v Venue) Snapshot() ExistingVenue {
	return ExistingVenue{ID: v.ID, Name: v.Name, Address: v.Address, ExternalID: v.ExternalID}
}

// Decision is the outcome of the inclusion filter.
type Decision struct {
	Include bool   `json:"include"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

// String renders the decision the way run reports show it.
func (d Decision) String() string {
	if d.Detail == "" {
		return d.Reason
	}
	return d.Reason + ": " + d.Detail
}

// Inclusion filter reasons.
const (
	ReasonExcludedType   = "excluded type"
	ReasonExcludedName   = "excluded name"
	ReasonTooFewReviews  = "too few reviews"
	ReasonSaunaKeyword   = "sauna keyword"
	ReasonKnownBrand     = "known brand"
	ReasonHotelResort    = "hotel/resort"
	ReasonWhitelistedGym = "whitelisted gym"
	ReasonGymUnconfirmed = "gym without confirmed saunas"
	ReasonNoSignals      = "no sauna-specific signals"
)
