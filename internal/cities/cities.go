// Package cities holds the static locality reference data: coordinates,
// timezones, relevance keywords and the per-locality source endpoint lists.
// Built once at startup, read-only afterwards.
package cities

import (
	"math"
	"sort"
	"strings"

	"github.com/citydigest/citydigest/internal/models"
)

// Registry resolves localities and their source endpoints
type Registry struct {
	localities map[string]models.Locality
	order      []string
	primary    map[string][]string
	extra      map[string][]string
}

// New builds the registry from the embedded tables
func New() *Registry {
	r := &Registry{
		localities: make(map[string]models.Locality, len(localityTable)),
		order:      make([]string, 0, len(localityTable)),
		primary:    cityFeeds,
		extra:      extraKeywords,
	}
	for _, loc := range localityTable {
		r.localities[loc.ID] = loc
		r.order = append(r.order, loc.ID)
	}
	return r
}

// Get returns the locality for an id
func (r *Registry) Get(id string) (models.Locality, bool) {
	loc, ok := r.localities[strings.ToLower(strings.TrimSpace(id))]
	return loc, ok
}

// All returns every locality in table order
func (r *Registry) All() []models.Locality {
	out := make([]models.Locality, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.localities[id])
	}
	return out
}

// Search matches a free-text query against names, case-insensitively
func (r *Registry) Search(query string, limit int) []models.Locality {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}
	var out []models.Locality
	for _, id := range r.order {
		loc := r.localities[id]
		if strings.Contains(strings.ToLower(loc.Name), q) ||
			strings.Contains(strings.ToLower(loc.NameEN), q) ||
			strings.Contains(loc.ID, q) {
			out = append(out, loc)
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// KeywordsFor returns the relevance terms for a locality: display name,
// region aliases, then the hand-authored declined/short forms.
func (r *Registry) KeywordsFor(loc models.Locality) []string {
	out := make([]string, 0, 1+len(loc.Aliases)+4)
	out = append(out, loc.Name)
	out = append(out, loc.Aliases...)
	out = append(out, r.extra[loc.ID]...)
	return out
}

// PrimaryEndpoints returns the locality-specific feeds, or nil when the
// locality has no curated list (the cascade then starts at the guaranteed tier).
func (r *Registry) PrimaryEndpoints(localityID string) []models.SourceEndpoint {
	urls := r.primary[localityID]
	out := make([]models.SourceEndpoint, 0, len(urls))
	for _, u := range urls {
		out = append(out, models.SourceEndpoint{URL: u, Tier: models.TierLocalityPrimary})
	}
	return out
}

// GuaranteedEndpoints returns the high-reliability federal wires
func (r *Registry) GuaranteedEndpoints() []models.SourceEndpoint {
	out := make([]models.SourceEndpoint, 0, len(guaranteedFeeds))
	for _, u := range guaranteedFeeds {
		out = append(out, models.SourceEndpoint{URL: u, Tier: models.TierGuaranteed})
	}
	return out
}

// GeneralEndpoints returns the full general pool: guaranteed wires first,
// then the national long tail and the Telegram RSS bridges.
func (r *Registry) GeneralEndpoints() []models.SourceEndpoint {
	out := r.GuaranteedEndpoints()
	for _, u := range generalFeeds {
		out = append(out, models.SourceEndpoint{URL: u, Tier: models.TierGeneral})
	}
	for _, u := range telegramBridges {
		out = append(out, models.SourceEndpoint{URL: u, Tier: models.TierGeneral})
	}
	return out
}

// VKGroupIDs returns the wall ids polled when a VK token is configured
func (r *Registry) VKGroupIDs() []int64 {
	out := make([]int64, len(vkNewsGroups))
	copy(out, vkNewsGroups)
	return out
}

// Nearest returns up to n localities closest to loc, excluding loc itself
func (r *Registry) Nearest(loc models.Locality, n int) []models.Locality {
	type withDist struct {
		loc  models.Locality
		dist float64
	}
	cand := make([]withDist, 0, len(r.order))
	for _, id := range r.order {
		other := r.localities[id]
		if other.ID == loc.ID {
			continue
		}
		cand = append(cand, withDist{other, haversineKm(loc.Latitude, loc.Longitude, other.Latitude, other.Longitude)})
	}
	sort.Slice(cand, func(i, j int) bool { return cand[i].dist < cand[j].dist })
	if n > len(cand) {
		n = len(cand)
	}
	out := make([]models.Locality, 0, n)
	for _, c := range cand[:n] {
		out = append(out, c.loc)
	}
	return out
}

// haversineKm is the great-circle distance between two points in km
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLam := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLam/2)*math.Sin(dLam/2)
	return earthRadiusKm * 2 * math.Asin(math.Min(1, math.Sqrt(a)))
}

// AllowedTimezone reports whether tz is one of the zones subscribers may pick.
// Constraining the choice keeps unresolvable identifiers out of the store.
func AllowedTimezone(tz string) bool {
	for _, z := range ReminderTimezones {
		if z.ID == tz {
			return true
		}
	}
	return false
}

// TimezoneOption is one selectable subscriber timezone
type TimezoneOption struct {
	Label string `json:"label"`
	ID    string `json:"id"`
}

// ReminderTimezones lists the zones subscribers can choose for daily delivery
var ReminderTimezones = []TimezoneOption{
	{"Калининград (UTC+2)", "Europe/Kaliningrad"},
	{"Москва (UTC+3)", "Europe/Moscow"},
	{"Самара (UTC+4)", "Europe/Samara"},
	{"Екатеринбург (UTC+5)", "Asia/Yekaterinburg"},
	{"Омск (UTC+6)", "Asia/Omsk"},
	{"Новосибирск / Томск (UTC+7)", "Asia/Novosibirsk"},
	{"Красноярск (UTC+7)", "Asia/Krasnoyarsk"},
	{"Иркутск (UTC+8)", "Asia/Irkutsk"},
	{"Якутск (UTC+9)", "Asia/Yakutsk"},
	{"Владивосток (UTC+10)", "Asia/Vladivostok"},
	{"Магадан (UTC+11)", "Asia/Magadan"},
	{"Камчатка (UTC+12)", "Asia/Kamchatka"},
}
