package cards

import "testing"

func TestParseBoard(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2c2h2s2d3h", false},
		{"AsKcQdJhTs", false},
		{"2c2h2s2d", true},       // too short
		{"2c2h2s2d3h3c", true},   // too long
		{"2c2h2s2d2c", true},     // duplicate
		{"xx2h2s2d3h", true},     // invalid card
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseBoard(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBoard(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestHoleSharesCard(t *testing.T) {
	as, _ := ParseCard("As")
	ac, _ := ParseCard("Ac")
	ks, _ := ParseCard("Ks")
	kc, _ := ParseCard("Kc")

	h1 := Hole{as, ac}
	h2 := Hole{as, ks}
	h3 := Hole{ks, kc}

	if !h1.SharesCard(h2) {
		t.Errorf("expected h1 and h2 to share As")
	}
	if h1.SharesCard(h3) {
		t.Errorf("expected h1 and h3 to share no cards")
	}
}
