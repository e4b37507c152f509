package heading

import "testing"

func TestIsHeading_Patterns(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"METHODOLOGY", true},                // all caps
		{"EXPERIMENTAL SETUP", true},         // all caps with space
		{"1. Introduction", true},            // numbered
		{"12. Related Work", true},           // multi-digit numbered
		{"Data Collection", true},            // title case
		{"Background:", true},                // title with colon
		{"IV. Results", true},                // roman numeral
		{"We used X to measure Y over time and then some more words", false},
		{"the quick brown fox jumps over it", false}, // lowercase prose
		{"", false},
		{"ab", false}, // below minimum length
		{"1)", false},
	}
	for _, tc := range cases {
		if got := IsHeading(tc.line); got != tc.want {
			t.Errorf("IsHeading(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestIsHeading_CapitalizedWordRatio(t *testing.T) {
	// Short lines where at least 70% of words are capitalized qualify even
	// without matching a structural pattern.
	if !IsHeading("New York City Budget Report 2024 Overview Draft") {
		t.Error("expected mostly-capitalized short line to qualify")
	}
	// Nine words: over the word limit regardless of capitalization.
	if IsHeading("One Two Three Four Five Six Seven Eight Nine more") {
		t.Error("expected 10-word line to be rejected")
	}
}

func TestIsHeading_AdversarialCases(t *testing.T) {
	// Heading detection is a layout heuristic, not ground truth. These pin
	// current behavior on inputs that fool it.

	// An all-caps emphasis line is indistinguishable from a heading.
	if !IsHeading("DO NOT ENTER") {
		t.Error("all-caps non-heading currently classifies as heading")
	}
	// Short title-case prose qualifies via the title-case pattern.
	if !IsHeading("The Quick Brown Fox Jumps") {
		t.Error("title-case prose currently classifies as heading")
	}
}

func TestLevel_NumericPrefixes(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"1. Introduction", 1},
		{"1.1. Data Collection", 2},
		{"1.1.1. Survey Design", 3},
		{"2.10. Sampling", 2},
	}
	for _, tc := range cases {
		if got := Level(tc.line); got != tc.want {
			t.Errorf("Level(%q) = %d, want %d", tc.line, got, tc.want)
		}
	}
}

func TestLevel_UppercaseAndDefault(t *testing.T) {
	if got := Level("METHODOLOGY"); got != 1 {
		t.Errorf("Level(METHODOLOGY) = %d, want 1", got)
	}
	if got := Level("Data Collection"); got != 2 {
		t.Errorf("Level(Data Collection) = %d, want 2", got)
	}
}

func TestClassify_TotalFunction(t *testing.T) {
	// Classify assigns a level even for lines that are not headings.
	c := Classify("")
	if c.IsHeading {
		t.Error("empty line should not be a heading")
	}
	if c.Level < 1 {
		t.Errorf("expected a level for edge-case input, got %d", c.Level)
	}

	c = Classify("METHODOLOGY")
	if !c.IsHeading || c.Level != 1 {
		t.Errorf("Classify(METHODOLOGY) = %+v, want heading at level 1", c)
	}
}
