package cities

import (
	"testing"
	"time"
)

func TestRegistryGet(t *testing.T) {
	r := New()

	loc, ok := r.Get("kazan")
	if !ok {
		t.Fatal("expected kazan in registry")
	}
	if loc.Name != "Казань" {
		t.Errorf("expected display name Казань, got %s", loc.Name)
	}
	if loc.TimezoneID != "Europe/Moscow" {
		t.Errorf("expected Europe/Moscow, got %s", loc.TimezoneID)
	}

	if _, ok := r.Get("atlantis"); ok {
		t.Error("expected unknown locality to miss")
	}

	// Ids are normalized before lookup
	if _, ok := r.Get("  KAZAN "); !ok {
		t.Error("expected case/space-insensitive lookup")
	}
}

func TestRegistryTimezonesResolve(t *testing.T) {
	// Every embedded zone must resolve against the IANA database; an
	// unresolvable zone would make the scheduler skip the locality forever.
	for _, loc := range New().All() {
		if _, err := time.LoadLocation(loc.TimezoneID); err != nil {
			t.Errorf("locality %s has unresolvable zone %s: %v", loc.ID, loc.TimezoneID, err)
		}
	}
	for _, opt := range ReminderTimezones {
		if _, err := time.LoadLocation(opt.ID); err != nil {
			t.Errorf("reminder zone %s does not resolve: %v", opt.ID, err)
		}
	}
}

func TestKeywordsFor(t *testing.T) {
	r := New()
	loc, _ := r.Get("kazan")

	kws := r.KeywordsFor(loc)
	want := map[string]bool{"Казань": false, "Татарстан": false, "в Казани": false}
	for _, kw := range kws {
		if _, ok := want[kw]; ok {
			want[kw] = true
		}
	}
	for kw, seen := range want {
		if !seen {
			t.Errorf("expected keyword %q for kazan", kw)
		}
	}
}

func TestEndpointTiers(t *testing.T) {
	r := New()

	primary := r.PrimaryEndpoints("spb")
	if len(primary) == 0 {
		t.Fatal("expected curated feeds for spb")
	}
	for _, ep := range primary {
		if ep.Tier != "locality_primary" {
			t.Errorf("expected locality_primary tier, got %s", ep.Tier)
		}
	}

	if got := r.PrimaryEndpoints("yakutsk"); len(got) != 0 {
		t.Errorf("expected no curated feeds for yakutsk, got %d", len(got))
	}

	guaranteed := r.GuaranteedEndpoints()
	if len(guaranteed) != 5 {
		t.Errorf("expected 5 guaranteed wires, got %d", len(guaranteed))
	}

	general := r.GeneralEndpoints()
	if len(general) <= len(guaranteed) {
		t.Error("general pool must include the guaranteed wires plus the long tail")
	}
	// Guaranteed wires come first in the general pool
	if general[0].URL != guaranteed[0].URL {
		t.Error("expected guaranteed wires to lead the general pool")
	}
}

func TestNearest(t *testing.T) {
	r := New()
	moscow, _ := r.Get("moscow")

	nearest := r.Nearest(moscow, 3)
	if len(nearest) != 3 {
		t.Fatalf("expected 3 localities, got %d", len(nearest))
	}
	for _, loc := range nearest {
		if loc.ID == "moscow" {
			t.Error("nearest list must exclude the locality itself")
		}
	}
	// Vladivostok is ~6400km away and cannot be among Moscow's closest three
	for _, loc := range nearest {
		if loc.ID == "vladivostok" {
			t.Error("unexpected far-east locality among Moscow's nearest")
		}
	}
}

func TestAllowedTimezone(t *testing.T) {
	if !AllowedTimezone("Europe/Moscow") {
		t.Error("Europe/Moscow must be allowed")
	}
	if AllowedTimezone("America/New_York") {
		t.Error("zones outside the enumerated list must be rejected")
	}
	if AllowedTimezone("") {
		t.Error("empty zone must be rejected")
	}
}
