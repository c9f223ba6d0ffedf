// game/service/progression_test.go
package service

import "testing"

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		experience int
		want       int
	}{
		{0, 1},
		{1, 1},
		{99, 1},
		{100, 2},
		{101, 2},
		{199, 2},
		{200, 3},
		{250, 3},
		{999, 10},
		{1000, 11},
		{-50, 1},
	}

	for _, tc := range cases {
		if got := LevelForExperience(tc.experience); got != tc.want {
			t.Errorf("LevelForExperience(%d) = %d, want %d", tc.experience, got, tc.want)
		}
	}
}

func TestLevelAfterGain(t *testing.T) {
	if got := LevelAfterGain(90, 160); got != 3 {
		t.Errorf("LevelAfterGain(90, 160) = %d, want 3", got)
	}
	// A zero gain still reports the formula level for the running total.
	if got := LevelAfterGain(250, 0); got != 3 {
		t.Errorf("LevelAfterGain(250, 0) = %d, want 3", got)
	}
}

func TestAttributePreview(t *testing.T) {
	cases := []struct {
		constitution int
		intelligence int
		wantHealth   int
		wantMana     int
	}{
		{10, 10, 20, 10},
		{14, 16, 28, 22},
		{20, 20, 40, 30},
		{8, 6, 16, 2},
	}

	for _, tc := range cases {
		health, mana := AttributePreview(tc.constitution, tc.intelligence)
		if health != tc.wantHealth || mana != tc.wantMana {
			t.Errorf("AttributePreview(%d, %d) = (%d, %d), want (%d, %d)",
				tc.constitution, tc.intelligence, health, mana, tc.wantHealth, tc.wantMana)
		}
	}
}
