package claims

import (
	"strings"
	"testing"
)

func TestExtractCapsAtFive(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("The unemployment rate was 4.2 percent in March of that year. ")
		b.WriteString("Officials reported a further decline across every region surveyed in ")
		b.WriteString(strings.Repeat("x", i+1)) // keep sentences distinct
		b.WriteString(". ")
	}

	claims := Extract(b.String())
	if len(claims) > 5 {
		t.Fatalf("got %d claims; cap is 5", len(claims))
	}
	if len(claims) != 5 {
		t.Fatalf("expected the cap to be reached, got %d", len(claims))
	}
}

func TestExtractShortInput(t *testing.T) {
	for _, in := range []string{"", "ok", "short txt", "         "} {
		if got := Extract(in); len(got) != 0 {
			t.Errorf("Extract(%q) = %v; want none", in, got)
		}
	}
}

func TestExtractKeepsFactBearingSentences(t *testing.T) {
	text := "Wow, what a day! " + // short, not fact-bearing
		"The bridge was completed in 1937 after four years of work. " +
		"Totally amazing scenery around here though honestly. " +
		"Researchers reported that 52% of respondents changed their answer."

	claims := Extract(text)
	if len(claims) != 2 {
		t.Fatalf("got %d claims (%v); want 2", len(claims), claims)
	}
	if !strings.Contains(claims[0], "1937") {
		t.Errorf("first claim = %q; want the bridge sentence first (insertion order)", claims[0])
	}
	if !strings.Contains(claims[1], "52%") {
		t.Errorf("second claim = %q; want the survey sentence", claims[1])
	}
}

func TestExtractDeduplicates(t *testing.T) {
	text := "The company has laid off 500 workers this quarter. " +
		"The company has laid off 500 workers this quarter. " +
		"The company has laid off 500 workers this quarter."
	claims := Extract(text)
	if len(claims) != 1 {
		t.Fatalf("got %d claims; want 1 after dedup", len(claims))
	}
}

func TestExtractIsPure(t *testing.T) {
	text := "The treaty was signed in 1990 by twelve countries. It is still in force today according to the registry."
	first := Extract(text)
	second := Extract(text)
	if len(first) != len(second) {
		t.Fatalf("restartability violated: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restartability violated at %d: %q vs %q", i, first[i], second[i])
		}
	}
}
