package generate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/hueforge/internal/colour"
)

func TestSelect603010(t *testing.T) {
	input := []string{"#fefefe", "#f72f68", "#97cd5c", "#1e1e2e", "#3498db", "#e74c3c"}
	snapshot := append([]string(nil), input...)

	rs, err := Select603010(input, DefaultRoleOptions())
	if err != nil {
		t.Fatalf("Select603010() error = %v", err)
	}

	want := map[RoleName]string{
		RoleNeutralLight:   "#fefefe",
		RoleMainColor:      "#f72f68",
		RoleNeutralDark:    "#1e1e2e",
		RoleMainColorShade: "#e74c3c",
		RoleAccentColor:    "#97cd5c",
	}
	for _, r := range rs.Roles() {
		if r.Hex != want[r.Role] {
			t.Errorf("%s = %s, want %s", r.Role, r.Hex, want[r.Role])
		}
		if r.Derived {
			t.Errorf("%s marked derived, want picked from input", r.Role)
		}
	}
	if diff := cmp.Diff(snapshot, input); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
}

func TestSelect603010SmallPalettes(t *testing.T) {
	tests := []struct {
		name        string
		input       []string
		wantDerived map[RoleName]bool
	}{
		{
			name:  "single chromatic",
			input: []string{"#3498db"},
			wantDerived: map[RoleName]bool{
				RoleNeutralDark:    true,
				RoleMainColorShade: true,
				RoleAccentColor:    true,
			},
		},
		{
			name:  "single neutral",
			input: []string{"#777777"},
			wantDerived: map[RoleName]bool{
				RoleNeutralDark:    true,
				RoleMainColorShade: true,
				RoleAccentColor:    true,
			},
		},
		{
			name:  "light and main",
			input: []string{"#fefefe", "#f72f68"},
			wantDerived: map[RoleName]bool{
				RoleNeutralDark:    true,
				RoleMainColorShade: true,
				RoleAccentColor:    true,
			},
		},
		{
			name:        "light main and accent",
			input:       []string{"#fefefe", "#f72f68", "#3498db"},
			wantDerived: map[RoleName]bool{RoleNeutralDark: true, RoleMainColorShade: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, err := Select603010(tt.input, DefaultRoleOptions())
			if err != nil {
				t.Fatalf("Select603010() error = %v", err)
			}
			if diff := cmp.Diff(RoleNames(), roleNamesOf(rs)); diff != "" {
				t.Fatalf("roles mismatch (-want +got):\n%s", diff)
			}
			for _, r := range rs.Roles() {
				if !colour.IsHex(r.Hex) {
					t.Errorf("%s hex %q invalid", r.Role, r.Hex)
				}
				if r.Text != colour.TextLight && r.Text != colour.TextDark {
					t.Errorf("%s text %q, want light or dark text", r.Role, r.Text)
				}
				if r.Derived != tt.wantDerived[r.Role] {
					t.Errorf("%s derived = %v, want %v", r.Role, r.Derived, tt.wantDerived[r.Role])
				}
			}
		})
	}
}

func roleNamesOf(rs RoleSet) []RoleName {
	var names []RoleName
	for _, r := range rs.Roles() {
		names = append(names, r.Role)
	}
	return names
}

func TestSynthesisedAccentIsComplement(t *testing.T) {
	rs, err := Select603010([]string{"#3498db"}, DefaultRoleOptions())
	if err != nil {
		t.Fatal(err)
	}
	if d := colour.HueDistance(rs.AccentColor.H, rs.MainColor.H); d < 175 {
		t.Errorf("accent hue distance = %.1f, want about 180", d)
	}
	if rs.NeutralDark.L > 0.3 {
		t.Errorf("synthesised neutral dark L = %.2f, want dark", rs.NeutralDark.L)
	}
	if rs.MainColorShade.L >= rs.MainColor.L {
		t.Errorf("synthesised shade L %.2f not darker than main %.2f", rs.MainColorShade.L, rs.MainColor.L)
	}
}

func TestSynthesisedRolesDifferFromExtremeMain(t *testing.T) {
	for _, hex := range []string{"#000000", "#ffffff", "#050505"} {
		t.Run(hex, func(t *testing.T) {
			rs, err := Select603010([]string{hex}, DefaultRoleOptions())
			if err != nil {
				t.Fatal(err)
			}
			if rs.AccentColor.Hex == rs.MainColor.Hex {
				t.Errorf("accent %s copies main", rs.AccentColor.Hex)
			}
			if rs.MainColorShade.Hex == rs.MainColor.Hex {
				t.Errorf("shade %s copies main", rs.MainColorShade.Hex)
			}
		})
	}
}

func TestSelect603010Errors(t *testing.T) {
	if _, err := Select603010(nil, DefaultRoleOptions()); !errors.Is(err, colour.ErrEmpty) {
		t.Errorf("nil input error = %v, want ErrEmpty", err)
	}
	if _, err := Select603010([]string{"#fff", "blue"}, DefaultRoleOptions()); !errors.Is(err, colour.ErrBadFormat) {
		t.Errorf("bad hex error = %v, want ErrBadFormat", err)
	}
	opts := DefaultRoleOptions()
	opts.MainMaxL = 0.2
	if _, err := Select603010([]string{"#fff"}, opts); !errors.Is(err, colour.ErrOutOfRange) {
		t.Errorf("inverted band error = %v, want ErrOutOfRange", err)
	}
}

func TestRolesPaletteShape(t *testing.T) {
	got, err := RolesPalette(colour.FromColours("any-name", "#97cd5c"), DefaultRoleOptions())
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, n := range RoleNames() {
		want = append(want, string(n))
	}
	if diff := cmp.Diff(want, got.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}
}
