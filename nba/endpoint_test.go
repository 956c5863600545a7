package nba

import (
	"errors"
	"slices"
	"testing"
)

func TestEndpointParamsDefaults(t *testing.T) {
	p, err := LeagueDashPlayerStats.Params(nil)
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if len(p) != len(LeagueDashPlayerStats.Filters()) {
		t.Fatalf("got %d params, want %d", len(p), len(LeagueDashPlayerStats.Filters()))
	}
	if p["Season"] != CurrentSeason {
		t.Errorf("Season = %q, want %q", p["Season"], CurrentSeason)
	}
	if p["MeasureType"] != "Base" || p["PerMode"] != "PerGame" || p["College"] != "" {
		t.Errorf("unexpected defaults: %v", p)
	}
}

func TestEndpointParamsOverrides(t *testing.T) {
	p, err := LeagueDashPlayerStats.Params(Params{"Season": "2014-15", "PerMode": string(PerModes.Totals)})
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p["Season"] != "2014-15" || p["PerMode"] != "Totals" {
		t.Errorf("overrides not applied: %v", p)
	}
	if p["SeasonType"] != "Regular Season" {
		t.Errorf("untouched default changed: %q", p["SeasonType"])
	}
}

func TestEndpointParamsDoesNotMutateDescriptor(t *testing.T) {
	before := CommonAllPlayers.Filters()[1].Default
	if _, err := CommonAllPlayers.Params(Params{"Season": "2015-16"}); err != nil {
		t.Fatalf("Params: %v", err)
	}
	if got := CommonAllPlayers.Filters()[1].Default; got != before {
		t.Errorf("descriptor default changed to %q", got)
	}
}

func TestEndpointAccessorsReturnCopies(t *testing.T) {
	filters := ShotChartDetail.Filters()
	for i := range filters {
		filters[i].Default = "changed"
	}
	required := ShotChartDetail.Required()
	required[0] = "Season"

	p, err := ShotChartDetail.Params(Params{"PlayerID": "201939"})
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p["Season"] != CurrentSeason || p["ContextMeasure"] != "FGA" {
		t.Errorf("caller edits reached the descriptor: %v", p)
	}
	if _, err := ShotChartDetail.Params(nil); !errors.Is(err, ErrMissingFilter) {
		t.Errorf("PlayerID no longer required: %v", err)
	}

	ep, ok := LookupEndpoint("shotchartdetail")
	if !ok {
		t.Fatal("shotchartdetail not in catalogue")
	}
	if got := ep.Filters(); got[0].Default == "changed" {
		t.Errorf("catalogue entry changed: %v", got)
	}
}

func TestEndpointParamsUnknownFilter(t *testing.T) {
	_, err := CommonAllPlayers.Params(Params{"Seasn": "2015-16"})
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestEndpointParamsRequired(t *testing.T) {
	if _, err := ShotChartDetail.Params(nil); !errors.Is(err, ErrMissingFilter) {
		t.Fatalf("expected ErrMissingFilter, got %v", err)
	}
	p, err := ShotChartDetail.Params(Params{"PlayerID": "201939"})
	if err != nil {
		t.Fatalf("Params: %v", err)
	}
	if p["ContextMeasure"] != "FGA" {
		t.Errorf("ContextMeasure = %q", p["ContextMeasure"])
	}
}

func TestParamsEncodeIsSorted(t *testing.T) {
	got := Params{"Season": "2023-24", "LeagueID": "00", "IsOnlyCurrentSeason": "0"}.Encode()
	want := "IsOnlyCurrentSeason=0&LeagueID=00&Season=2023-24"
	if got != want {
		t.Errorf("Encode = %q, want %q", got, want)
	}
}

func TestEndpointsCatalogue(t *testing.T) {
	names := EndpointNames()
	if len(names) != 8 || !slices.IsSorted(names) {
		t.Errorf("EndpointNames() = %v", names)
	}
	if _, ok := LookupEndpoint("nosuchthing"); ok {
		t.Error("LookupEndpoint found an undeclared endpoint")
	}
	for _, name := range names {
		ep, ok := LookupEndpoint(name)
		if !ok || ep.Name() != name {
			t.Errorf("LookupEndpoint(%q) = %q, %v", name, ep.Name(), ok)
		}
		seen := map[string]bool{}
		for _, f := range ep.Filters() {
			if seen[f.Name] {
				t.Errorf("%s declares %q twice", name, f.Name)
			}
			seen[f.Name] = true
		}
		for _, r := range ep.Required() {
			if !seen[r] {
				t.Errorf("%s requires undeclared filter %q", name, r)
			}
		}
	}
}
