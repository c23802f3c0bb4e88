package ticketmaster

// Response shapes for the Discovery API. The catalog nests optional data at
// varying depths, so every optional field is an explicit pointer or slice and
// callers use the First* helpers instead of indexing blindly.

type searchResponse struct {
	Embedded *responseEmbedded `json:"_embedded"`
	Page     Page              `json:"page"`
}

type responseEmbedded struct {
	Events []Event `json:"events"`
}

// Page describes the catalog-side pagination state of a search response
type Page struct {
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

// Event is one catalog entry from the event search endpoint
type Event struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	URL             string           `json:"url"`
	Dates           Dates            `json:"dates"`
	Classifications []Classification `json:"classifications"`
	PriceRanges     []PriceRange     `json:"priceRanges"`
	Embedded        *EventEmbedded   `json:"_embedded"`
}

type Dates struct {
	Start StartDate `json:"start"`
}

// StartDate carries a precise timestamp and a date-only fallback; either may
// be empty
type StartDate struct {
	DateTime  string `json:"dateTime"`
	LocalDate string `json:"localDate"`
}

type Classification struct {
	Genre *Genre `json:"genre"`
}

type Genre struct {
	Name string `json:"name"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type EventEmbedded struct {
	Venues      []Venue      `json:"venues"`
	Attractions []Attraction `json:"attractions"`
}

type Venue struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	City     *City     `json:"city"`
	State    *State    `json:"state"`
	Location *Location `json:"location"`
	Timezone string    `json:"timezone"`
}

type City struct {
	Name string `json:"name"`
}

type State struct {
	StateCode string `json:"stateCode"`
}

// Location coordinates arrive as strings from the catalog
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Attraction struct {
	Name string `json:"name"`
}

// FirstVenue returns the first embedded venue, or nil when none is present
func (e *Event) FirstVenue() *Venue {
	if e.Embedded == nil || len(e.Embedded.Venues) == 0 {
		return nil
	}
	return &e.Embedded.Venues[0]
}

// FirstAttractionName returns the first embedded attraction's name, or ""
func (e *Event) FirstAttractionName() string {
	if e.Embedded == nil || len(e.Embedded.Attractions) == 0 {
		return ""
	}
	return e.Embedded.Attractions[0].Name
}

// FirstGenreName returns the first classification's genre name, or ""
func (e *Event) FirstGenreName() string {
	if len(e.Classifications) == 0 || e.Classifications[0].Genre == nil {
		return ""
	}
	return e.Classifications[0].Genre.Name
}

// FirstPriceRange returns the first reported price range, or nil when the
// entry carries none
func (e *Event) FirstPriceRange() *PriceRange {
	if len(e.PriceRanges) == 0 {
		return nil
	}
	return &e.PriceRanges[0]
}
