package registry_test

import (
	"testing"

	"github.com/mkrebs/gridline/internal/registry"
	"github.com/mkrebs/gridline/pkg/models"
	"github.com/mkrebs/gridline/sports/football_nfl"
)

func TestDefaultRegistersBothSports(t *testing.T) {
	r := registry.Default()

	if r.Count() != 2 {
		t.Fatalf("Count = %d, want 2", r.Count())
	}

	nfl, ok := r.Get(models.SportNFL)
	if !ok {
		t.Fatal("NFL profile missing")
	}
	if nfl.HomeFieldAdvantage() != 2.0 {
		t.Errorf("NFL HFA = %f, want 2.0", nfl.HomeFieldAdvantage())
	}

	ncaa, ok := r.Get(models.SportNCAA)
	if !ok {
		t.Fatal("college profile missing")
	}
	if ncaa.HomeFieldAdvantage() != 2.5 {
		t.Errorf("college HFA = %f, want 2.5", ncaa.HomeFieldAdvantage())
	}
}

func TestGetUnknownSport(t *testing.T) {
	if _, ok := registry.Default().Get(models.Sport("basketball_nba")); ok {
		t.Error("Get returned a profile for an unregistered sport")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := registry.NewProfileRegistry()

	if err := r.Register(football_nfl.NewProfile()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(football_nfl.NewProfile()); err == nil {
		t.Error("duplicate registration accepted")
	}
}
