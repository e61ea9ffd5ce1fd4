package models

import (
	"errors"
	"testing"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Region
		wantErr bool
	}{
		{
			name:  "exact match",
			input: "gujarat",
			want:  RegionGujarat,
		},
		{
			name:  "uppercase input",
			input: "GUJARAT",
			want:  RegionGujarat,
		},
		{
			name:  "mixed case with space",
			input: "Tamil Nadu",
			want:  RegionTamilNadu,
		},
		{
			name:  "surrounding whitespace",
			input: "  rajasthan  ",
			want:  RegionRajasthan,
		},
		{
			name:  "union region",
			input: "india",
			want:  RegionIndia,
		},
		{
			name:  "underscore form",
			input: "andhra_pradesh",
			want:  RegionAndhraPradesh,
		},
		{
			name:    "unsupported region",
			input:   "kerala",
			wantErr: true,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRegion(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseRegion(%q) expected error, got %v", tt.input, got)
				}
				var criteriaErr *CriteriaError
				if !errors.As(err, &criteriaErr) {
					t.Errorf("ParseRegion(%q) error = %T, want *CriteriaError", tt.input, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseRegion(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRegion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRegion_States(t *testing.T) {
	states := RegionIndia.States()
	if len(states) != 6 {
		t.Fatalf("RegionIndia.States() returned %d states, want 6", len(states))
	}
	for _, s := range states {
		if s == RegionIndia {
			t.Error("RegionIndia.States() must not contain the union region itself")
		}
	}

	single := RegionGujarat.States()
	if len(single) != 1 || single[0] != RegionGujarat {
		t.Errorf("RegionGujarat.States() = %v, want [gujarat]", single)
	}
}

func TestRegion_DisplayName(t *testing.T) {
	tests := []struct {
		region Region
		want   string
	}{
		{RegionGujarat, "Gujarat"},
		{RegionTamilNadu, "Tamil Nadu"},
		{RegionAndhraPradesh, "Andhra Pradesh"},
		{RegionIndia, "India"},
	}

	for _, tt := range tests {
		if got := tt.region.DisplayName(); got != tt.want {
			t.Errorf("%q.DisplayName() = %q, want %q", tt.region, got, tt.want)
		}
	}
}

func TestOptimizationRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		request    OptimizationRequest
		wantRegion Region
		wantErr    bool
		errField   string
	}{
		{
			name:       "valid request",
			request:    OptimizationRequest{Region: "gujarat", MaxCost: 5.0},
			wantRegion: RegionGujarat,
		},
		{
			name:       "valid with all criteria",
			request:    OptimizationRequest{Region: "india", MaxCost: 3.5, MinProduction: 1000, ProximityToGrid: true},
			wantRegion: RegionIndia,
		},
		{
			name:     "unknown region",
			request:  OptimizationRequest{Region: "atlantis", MaxCost: 5.0},
			wantErr:  true,
			errField: "region",
		},
		{
			name:     "zero max cost",
			request:  OptimizationRequest{Region: "gujarat", MaxCost: 0},
			wantErr:  true,
			errField: "max_cost",
		},
		{
			name:     "negative max cost",
			request:  OptimizationRequest{Region: "gujarat", MaxCost: -1},
			wantErr:  true,
			errField: "max_cost",
		},
		{
			name:     "negative min production",
			request:  OptimizationRequest{Region: "gujarat", MaxCost: 5.0, MinProduction: -10},
			wantErr:  true,
			errField: "min_production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, err := tt.request.Validate()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Validate() expected error, got nil")
				}
				var criteriaErr *CriteriaError
				if !errors.As(err, &criteriaErr) {
					t.Fatalf("Validate() error = %T, want *CriteriaError", err)
				}
				if criteriaErr.Field != tt.errField {
					t.Errorf("Validate() error field = %q, want %q", criteriaErr.Field, tt.errField)
				}
				if criteriaErr.IsTransient() {
					t.Error("criteria errors must not be transient")
				}
				return
			}

			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if region != tt.wantRegion {
				t.Errorf("Validate() region = %v, want %v", region, tt.wantRegion)
			}
		})
	}
}
