package domain

import "time"

// City is a search region.
type City struct {
	Slug              string            `json:"slug" yaml:"slug"`
	FullName          string            `json:"fullName" yaml:"full_name"`
	Center            Location          `json:"center" yaml:"center"`
	RadiusMeters      float64           `json:"radiusMeters" yaml:"radius"`
	Neighborhoods     []string          `json:"neighborhoods" yaml:"neighborhoods"`
	ZipToNeighborhood map[string]string `json:"-" yaml:"zip_to_neighborhood"`
}

// NewVenue pairs a source candidate with the record built for it.
type NewVenue struct {
	Candidate RawCandidate    `json:"candidate"`
	Record    ClassifiedVenue `json:"record"`
}

// DuplicateVenue is a candidate that matched a stored venue.
type DuplicateVenue struct {
	Candidate RawCandidate  `json:"candidate"`
	Match     ExistingVenue `json:"match"`
}

// FilteredVenue is a candidate rejected by the inclusion filter.
type FilteredVenue struct {
	Candidate RawCandidate `json:"candidate"`
	Decision  Decision     `json:"decision"`
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	Queries       int `json:"queries"`
	FailedQueries int `json:"failedQueries"`
	RawResults    int `json:"rawResults"`
	Unique        int `json:"unique"`
	PassedFilter  int `json:"passedFilter"`
	New           int `json:"new"`
	Existing      int `json:"existing"`
	FilteredOut   int `json:"filteredOut"`
}

// RunResult holds the three disjoint partitions produced by a pipeline run.
type RunResult struct {
	ID          string           `json:"id"`
	CitySlug    string           `json:"citySlug"`
	StartedAt   time.Time        `json:"startedAt"`
	New         []NewVenue       `json:"new"`
	Existing    []DuplicateVenue `json:"existing"`
	FilteredOut []FilteredVenue  `json:"filteredOut"`
	Stats       RunStats         `json:"stats"`
}

// InsertedVenue pairs a stored id with the candidate it was built from.
type InsertedVenue struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Candidate RawCandidate `json:"candidate"`
}

// EnrichChange records one field rewritten by the enricher.
type EnrichChange struct {
	ID     int64    `json:"id"`
	Name   string   `json:"name"`
	Field  string   `json:"field"`
	Before []string `json:"before"`
	After  []string `json:"after"`
	Status string   `json:"status"`
}
