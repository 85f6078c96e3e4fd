package models

// Tier orders source endpoints by specificity and reliability
type Tier string

const (
	// TierLocalityPrimary feeds are curated per locality (regional outlets
	// plus the federal wires that cover the region).
	TierLocalityPrimary Tier = "locality_primary"
	// TierGuaranteed feeds are the high-reliability federal wires that
	// practically always return something.
	TierGuaranteed Tier = "guaranteed"
	// TierGeneral is the long tail: national outlets, Telegram RSS bridges,
	// social walls.
	TierGeneral Tier = "general"
)

// SourceEndpoint is one upstream feed URL with its cascade tier
type SourceEndpoint struct {
	URL  string `json:"url"`
	Tier Tier   `json:"tier"`
}

// Locality is a named place with coordinates and the alias terms used for
// relevance matching. Loaded once at startup, read-only afterwards.
type Locality struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	NameEN    string   `json:"name_en"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	// Aliases hold region names and hand-authored declined/short forms,
	// in match priority order. The display name itself is implied.
	Aliases []string `json:"aliases,omitempty"`
	// TimezoneID is the locality's own IANA zone (subscribers choose their
	// zone independently when subscribing).
	TimezoneID string `json:"timezone_id"`
	// UTCOffsetHours is a fixed fallback when the zone database is missing
	UTCOffsetHours int `json:"utc_offset_hours"`
}
