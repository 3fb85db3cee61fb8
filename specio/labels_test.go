package specio

import (
	"testing"

	"github.com/cwbudde/algo-stellar/internal/testutil"
	"github.com/cwbudde/algo-stellar/spectrum"
)

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		want      spectrum.Labels
		wantState spectrum.State
		wantErr   error
	}{
		{
			name: "labels only",
			path: "grid/5000_4.5_-0.5.tsv",
			want: spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "-0.5"},
		},
		{
			name: "no extension",
			path: "5000_4.5_-0.5",
			want: spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "-0.5"},
		},
		{
			name: "perturbations",
			path: "/data/6000_4.0_0.25_20_150_-3.5.tsv",
			want: spectrum.Labels{Teff: "6000", Logg: "4.0", MH: "0.25"},
			wantState: spectrum.State{
				VsiniApplied: true, Vsini: 20,
				NoiseApplied: true, SNR: 150,
				RadialVelocityApplied: true, RadialVelocity: -3.5,
			},
		},
		{
			name:      "zero perturbation unmarked",
			path:      "6000_4.0_0.25_20_0_None.tsv",
			want:      spectrum.Labels{Teff: "6000", Logg: "4.0", MH: "0.25"},
			wantState: spectrum.State{VsiniApplied: true, Vsini: 20},
		},
		{
			name: "model grid name",
			path: "5500_4.5_0.0_0.0_1.0_2.0_10_0.6.fits",
			want: spectrum.Labels{Teff: "5500", Logg: "4.5", MH: "0.0"},
		},
		{name: "too few fields", path: "5000_4.5.tsv", wantErr: ErrBadFilename},
		{name: "not numeric", path: "sun_4.4_0.0.tsv", wantErr: ErrBadFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, st, err := ParseFilename(tt.path)
			if tt.wantErr != nil {
				testutil.RequireErrorIs(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("ParseFilename() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("labels = %+v, want %+v", got, tt.want)
			}
			if st != tt.wantState {
				t.Fatalf("state = %+v, want %+v", st, tt.wantState)
			}
		})
	}
}

func TestFormatName(t *testing.T) {
	l := spectrum.Labels{Teff: "5000", Logg: "4.5", MH: "0.0"}
	st := spectrum.State{VsiniApplied: true, Vsini: 20, NoiseApplied: true, SNR: 150}

	if got := FormatName(l, st, false); got != "5000_4.5_0.0.tsv" {
		t.Fatalf("FormatName(plain) = %q", got)
	}
	got := FormatName(l, st, true)
	if got != "5000_4.5_0.0_20_150_0.tsv" {
		t.Fatalf("FormatName(params) = %q", got)
	}

	back, backState, err := ParseFilename(got)
	if err != nil {
		t.Fatalf("ParseFilename() error = %v", err)
	}
	if back != l || backState != st {
		t.Fatalf("round trip = %+v %+v, want %+v %+v", back, backState, l, st)
	}
}

func TestTrimExt(t *testing.T) {
	for in, want := range map[string]string{
		"5000_4.5_0.0.tsv":  "5000_4.5_0.0",
		"5000_4.5_0.0.FITS": "5000_4.5_0.0",
		"5000_4.5_0.5":      "5000_4.5_0.5",
	} {
		if got := TrimExt(in); got != want {
			t.Errorf("TrimExt(%q) = %q, want %q", in, got, want)
		}
	}
}
