package models

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsJuniorAt(t *testing.T) {
	now := date(2026, time.June, 15)

	tests := []struct {
		name string
		dob  time.Time
		want bool
	}{
		{"well under 18", date(2015, time.January, 1), true},
		{"well over 18", date(1990, time.January, 1), false},
		{"18th birthday today", date(2008, time.June, 15), false},
		{"18th birthday tomorrow", date(2008, time.June, 16), true},
		{"18th birthday yesterday", date(2008, time.June, 14), false},
		{"turns 18 next month", date(2008, time.July, 1), true},
		{"turned 18 last month", date(2008, time.May, 30), false},
		{"turns 19 later this year", date(2007, time.December, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsJuniorAt(tt.dob, now); got != tt.want {
				t.Errorf("IsJuniorAt(%s) = %v, want %v", tt.dob.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestAgeIsRawYearDelta(t *testing.T) {
	now := date(2026, time.June, 15)

	// Age deliberately ignores whether the birthday has passed this year.
	if got := Age(date(2008, time.December, 31), now); got != 18 {
		t.Errorf("Age = %d, want 18", got)
	}
	if got := Age(date(2008, time.January, 1), now); got != 18 {
		t.Errorf("Age = %d, want 18", got)
	}
}

func TestClassifyPlayerType(t *testing.T) {
	now := date(2026, time.June, 15)

	if got := ClassifyPlayerType(date(2010, time.March, 1), now); got != PlayerTypeJunior {
		t.Errorf("expected junior, got %s", got)
	}
	if got := ClassifyPlayerType(date(2000, time.March, 1), now); got != PlayerTypeAdult {
		t.Errorf("expected adult, got %s", got)
	}
}

func TestNormalizePlayerType(t *testing.T) {
	tests := []struct {
		raw  string
		want PlayerType
		ok   bool
	}{
		{"Adult Club Member", PlayerTypeAdult, true},
		{"adult club member", PlayerTypeAdult, true},
		{"  Club member  ", PlayerTypeClubMember, true},
		{"COACHING ONLY", PlayerTypeCoachingOnly, true},
		{"Coaching and Club Member", PlayerTypeCoachingAndClub, true},
		{"junior club member", PlayerTypeJunior, true},
		{"guest", PlayerTypeGuest, true},
		{"member", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizePlayerType(tt.raw)
		if ok != tt.ok || got != tt.want {
			t.Errorf("NormalizePlayerType(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsGuest(t *testing.T) {
	if !(Player{ID: "guest-abc"}).IsGuest() {
		t.Error("guest id prefix not recognised")
	}
	if !(Player{ID: "p1", PlayerType: PlayerTypeGuest}).IsGuest() {
		t.Error("guest player type not recognised")
	}
	if (Player{ID: "p1", PlayerType: PlayerTypeAdult}).IsGuest() {
		t.Error("regular member flagged as guest")
	}
}

func TestPlayerName(t *testing.T) {
	p := Player{FirstName: "Ana", SurName: "Ponce"}
	if got := p.Name(); got != "Ana Ponce" {
		t.Errorf("Name = %q", got)
	}
	guest := Player{FirstName: "Sam"}
	if got := guest.Name(); got != "Sam" {
		t.Errorf("Name = %q, want surname-less name trimmed", got)
	}
}

func TestInferCategory(t *testing.T) {
	m := Player{Gender: GenderMale}
	f := Player{Gender: GenderFemale}

	tests := []struct {
		name    string
		players []Player
		want    MatchCategory
	}{
		{"two males", []Player{m, m}, CategoryMensSingles},
		{"two females", []Player{f, f}, CategoryWomensSingles},
		{"mixed pair", []Player{m, f}, CategoryMixedDoubles},
		{"four males", []Player{m, m, m, m}, CategoryMensDoubles},
		{"four females", []Player{f, f, f, f}, CategoryWomensDoubles},
		{"three males one female", []Player{m, m, m, f}, CategoryMixedDoubles},
		{"two and two", []Player{m, f, m, f}, CategoryMixedDoubles},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferCategory(tt.players); got != tt.want {
				t.Errorf("InferCategory = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMatchCategoryValid(t *testing.T) {
	for _, c := range []MatchCategory{CategoryMensSingles, CategoryWomensSingles, CategoryMensDoubles, CategoryWomensDoubles, CategoryMixedDoubles} {
		if !c.Valid() {
			t.Errorf("%s reported invalid", c)
		}
	}
	if MatchCategory("ZZ").Valid() {
		t.Error("unknown category reported valid")
	}
	if !CategoryMensSingles.Singles() || CategoryMensDoubles.Singles() {
		t.Error("Singles classification wrong")
	}
}
