package places

// Wire types for the Places API (v1). Only the fields the pipeline reads are declared.

type localizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type openingHours struct {
	WeekdayDescriptions []string `json:"weekdayDescriptions"`
}

type review struct {
	Rating       float64        `json:"rating"`
	Text         *localizedText `json:"text,omitempty"`
	OriginalText *localizedText `json:"originalText,omitempty"`
}

type photo struct {
	Name     string `json:"name"`
	WidthPx  int    `json:"widthPx,omitempty"`
	HeightPx int    `json:"heightPx,omitempty"`
}

// Place is a single place resource
type Place struct {
	ID                  string         `json:"id"`
	DisplayName         *localizedText `json:"displayName,omitempty"`
	FormattedAddress    string         `json:"formattedAddress,omitempty"`
	Location            *latLng        `json:"location,omitempty"`
	Rating              *float64       `json:"rating,omitempty"`
	UserRatingCount     *int           `json:"userRatingCount,omitempty"`
	PriceLevel          string         `json:"priceLevel,omitempty"`
	RegularOpeningHours *openingHours  `json:"regularOpeningHours,omitempty"`
	Types               []string       `json:"types,omitempty"`
	PrimaryType         string         `json:"primaryType,omitempty"`
	WebsiteURI          string         `json:"websiteUri,omitempty"`
	EditorialSummary    *localizedText `json:"editorialSummary,omitempty"`
	Reviews             []review       `json:"reviews,omitempty"`
	Photos              []photo        `json:"photos,omitempty"`
}

type circle struct {
	Center latLng  `json:"center"`
	Radius float64 `json:"radius"`
}

type locationBias struct {
	Circle circle `json:"circle"`
}

type searchTextRequest struct {
	TextQuery      string       `json:"textQuery"`
	LocationBias   locationBias `json:"locationBias"`
	MaxResultCount int          `json:"maxResultCount,omitempty"`
	PageToken      string       `json:"pageToken,omitempty"`
}

type searchTextResponse struct {
	Places        []Place `json:"places"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
