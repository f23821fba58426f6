package common

import "testing"

func TestHasAny(t *testing.T) {
	if !HasAny("light snow, light rain", "storm", "rain") {
		t.Fatal("expected a match on rain")
	}
	if HasAny("clear", "mist", "fog") {
		t.Fatal("unexpected match")
	}
	if HasAny("clear") {
		t.Fatal("no substrings must not match")
	}
}

func TestIndexFold(t *testing.T) {
	header := []string{"instant", " DteDay ", "cnt"}

	if got := IndexFold(header, "dteday"); got != 1 {
		t.Fatalf("IndexFold(dteday) = %d, want 1", got)
	}
	if got := IndexFold(header, " CNT"); got != 2 {
		t.Fatalf("IndexFold(CNT) = %d, want 2", got)
	}
	if got := IndexFold(header, "season"); got != -1 {
		t.Fatalf("IndexFold(season) = %d, want -1", got)
	}
}
