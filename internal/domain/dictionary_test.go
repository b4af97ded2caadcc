package domain

import "testing"

func TestParseWordField(t *testing.T) {
	cases := map[string]WordField{
		"":            WordFieldNasa,
		"palabraNasa": WordFieldNasa,
		" nasa ":      WordFieldNasa,
		"traduccion":  WordFieldTranslation,
		"Translation": WordFieldTranslation,
	}
	for raw, want := range cases {
		if got, ok := ParseWordField(raw); !ok || got != want {
			t.Fatalf("ParseWordField(%q) = %q %v, want %q", raw, got, ok, want)
		}
	}
	if _, ok := ParseWordField("categoria"); ok {
		t.Fatalf("expected unknown field to be rejected")
	}
}

func TestWordMatches(t *testing.T) {
	w := Word{Nasa: "Kiwe", Translation: "territorio"}
	for _, term := range []string{"", "kiwe", " KI ", "Territ"} {
		if !w.Matches(term) {
			t.Fatalf("expected %q to match", term)
		}
	}
	if w.Matches("agua") {
		t.Fatalf("unexpected match")
	}
}

func TestCleanDescription(t *testing.T) {
	got := CleanDescription("Animales del territorio (Creado: 2024-05-01 10:00)")
	if got != "Animales del territorio" {
		t.Fatalf("unexpected description %q", got)
	}
	if got := CleanDescription(" Familia "); got != "Familia" {
		t.Fatalf("unexpected description %q", got)
	}
}
