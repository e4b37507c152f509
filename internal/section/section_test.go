package section

import "testing"

func TestFingerprint(t *testing.T) {
	a := Section{Document: "doc.pdf", Page: 3, Title: "Methods"}
	b := Section{Document: "doc.pdf", Page: 3, Title: "Methods", Text: "different body"}
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("fingerprint must ignore body text")
	}

	c := Section{Document: "other.pdf", Page: 3, Title: "Methods"}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("fingerprint must distinguish documents")
	}

	if got := a.Fingerprint(); got != "Methods_doc.pdf_3" {
		t.Errorf("fingerprint = %q", got)
	}
}

func TestQuery(t *testing.T) {
	got := Query("Travel Planner", "Plan a 4-day trip")
	want := "Travel Planner. Task: Plan a 4-day trip"
	if got != want {
		t.Errorf("Query = %q, want %q", got, want)
	}
}
