package types

import "testing"

func TestParseExperienceLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ExperienceLevel
	}{
		{"exact", "senior", LevelSenior},
		{"uppercase", "SENIOR", LevelSenior},
		{"whitespace", "  mid  ", LevelMid},
		{"unknown defaults to entry", "architect", LevelEntry},
		{"empty defaults to entry", "", LevelEntry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseExperienceLevel(tt.input); got != tt.want {
				t.Errorf("ParseExperienceLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFromYears(t *testing.T) {
	tests := []struct {
		years float64
		want  ExperienceLevel
	}{
		{0, LevelEntry},
		{1.9, LevelEntry},
		{2, LevelMid},
		{4.5, LevelMid},
		{5, LevelSenior},
		{9.9, LevelSenior},
		{10, LevelLead},
		{25, LevelLead},
	}
	for _, tt := range tests {
		if got := LevelFromYears(tt.years); got != tt.want {
			t.Errorf("LevelFromYears(%v) = %q, want %q", tt.years, got, tt.want)
		}
	}
}

func TestLevelDistance(t *testing.T) {
	if d := LevelDistance(LevelEntry, LevelPrincipal); d != 5 {
		t.Errorf("entry to principal = %d, want 5", d)
	}
	if d := LevelDistance(LevelSenior, LevelMid); d != 1 {
		t.Errorf("senior to mid = %d, want 1", d)
	}
	if d := LevelDistance(LevelMid, LevelMid); d != 0 {
		t.Errorf("same level = %d, want 0", d)
	}
	// Unknown levels collapse to entry.
	if d := LevelDistance("wizard", LevelJunior); d != 1 {
		t.Errorf("unknown to junior = %d, want 1", d)
	}
}

func TestLevelAbove(t *testing.T) {
	if !LevelAbove(LevelLead, LevelSenior) {
		t.Error("lead should rank above senior")
	}
	if LevelAbove(LevelMid, LevelMid) {
		t.Error("a level is not above itself")
	}
	if LevelAbove(LevelEntry, LevelJunior) {
		t.Error("entry should not rank above junior")
	}
}
