package optimizer

import (
	"reflect"
	"testing"

	"github.com/OmkumarMangukiya/GreenH2/internal/models"
)

func TestRank_SortsAndAssignsDenseRanks(t *testing.T) {
	candidates := []models.CandidateSite{
		{SiteName: "C", LCOH: 3.2, AnnualProductionTonnes: 50},
		{SiteName: "A", LCOH: 1.8, AnnualProductionTonnes: 50},
		{SiteName: "B", LCOH: 2.5, AnnualProductionTonnes: 50},
	}

	ranked := Rank(candidates, RankingCriteria{MaxCost: 5.0})

	if len(ranked) != 3 {
		t.Fatalf("Rank() returned %d sites, want 3", len(ranked))
	}

	wantOrder := []string{"A", "B", "C"}
	for i, want := range wantOrder {
		if ranked[i].SiteName != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].SiteName, want)
		}
		if ranked[i].Rank != i+1 {
			t.Errorf("ranked[%d].Rank = %d, want %d", i, ranked[i].Rank, i+1)
		}
	}
}

func TestRank_Filters(t *testing.T) {
	candidates := []models.CandidateSite{
		{SiteName: "cheap", LCOH: 2.0, AnnualProductionTonnes: 100, GridDistanceKm: 5},
		{SiteName: "expensive", LCOH: 6.0, AnnualProductionTonnes: 100, GridDistanceKm: 5},
		{SiteName: "low_output", LCOH: 2.0, AnnualProductionTonnes: 10, GridDistanceKm: 5},
		{SiteName: "far_from_grid", LCOH: 2.0, AnnualProductionTonnes: 100, GridDistanceKm: 45},
	}

	tests := []struct {
		name string
		crit RankingCriteria
		want []string
	}{
		{
			name: "max cost only",
			crit: RankingCriteria{MaxCost: 5.0},
			want: []string{"cheap", "low_output", "far_from_grid"},
		},
		{
			name: "min production",
			crit: RankingCriteria{MaxCost: 5.0, MinProduction: 50},
			want: []string{"cheap", "far_from_grid"},
		},
		{
			name: "grid proximity",
			crit: RankingCriteria{MaxCost: 5.0, RequireGridProximity: true, GridThresholdKm: 20},
			want: []string{"cheap", "low_output"},
		},
		{
			name: "all filters",
			crit: RankingCriteria{MaxCost: 5.0, MinProduction: 50, RequireGridProximity: true, GridThresholdKm: 20},
			want: []string{"cheap"},
		},
		{
			name: "nothing survives",
			crit: RankingCriteria{MaxCost: 1.0},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := Rank(candidates, tt.crit)

			got := make([]string, 0, len(ranked))
			for _, c := range ranked {
				got = append(got, c.SiteName)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank() survivors = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRank_EmptyResultIsValid(t *testing.T) {
	ranked := Rank(nil, RankingCriteria{MaxCost: 5.0})
	if ranked == nil {
		t.Fatal("Rank(nil) returned nil, want empty slice")
	}
	if len(ranked) != 0 {
		t.Errorf("Rank(nil) returned %d sites, want 0", len(ranked))
	}
}

func TestRank_TieBrokenByRenewableScore(t *testing.T) {
	candidates := []models.CandidateSite{
		{SiteName: "low_score", LCOH: 2.0, RenewableScore: 0.60, AnnualProductionTonnes: 100},
		{SiteName: "high_score", LCOH: 2.0, RenewableScore: 0.90, AnnualProductionTonnes: 100},
	}

	ranked := Rank(candidates, RankingCriteria{MaxCost: 5.0})

	if ranked[0].SiteName != "high_score" {
		t.Errorf("ranked[0] = %q, want high_score on tie", ranked[0].SiteName)
	}
	if ranked[0].Rank != 1 || ranked[1].Rank != 2 {
		t.Errorf("ranks = %d, %d, want dense 1, 2 even on LCOH tie",
			ranked[0].Rank, ranked[1].Rank)
	}
}

func TestRank_StableForFullTies(t *testing.T) {
	candidates := []models.CandidateSite{
		{SiteName: "first", LCOH: 2.0, RenewableScore: 0.8, AnnualProductionTonnes: 100},
		{SiteName: "second", LCOH: 2.0, RenewableScore: 0.8, AnnualProductionTonnes: 100},
		{SiteName: "third", LCOH: 2.0, RenewableScore: 0.8, AnnualProductionTonnes: 100},
	}

	ranked := Rank(candidates, RankingCriteria{MaxCost: 5.0})

	wantOrder := []string{"first", "second", "third"}
	for i, want := range wantOrder {
		if ranked[i].SiteName != want {
			t.Errorf("full tie broke input order: ranked[%d] = %q, want %q",
				i, ranked[i].SiteName, want)
		}
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	candidates := []models.CandidateSite{
		{SiteName: "B", LCOH: 3.0, AnnualProductionTonnes: 100},
		{SiteName: "A", LCOH: 2.0, AnnualProductionTonnes: 100},
	}
	original := make([]models.CandidateSite, len(candidates))
	copy(original, candidates)

	Rank(candidates, RankingCriteria{MaxCost: 5.0})

	if !reflect.DeepEqual(candidates, original) {
		t.Error("Rank() mutated its input slice")
	}
}
