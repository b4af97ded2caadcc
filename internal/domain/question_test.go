package domain

import (
	"errors"
	"testing"
)

func TestMatchesAnswer(t *testing.T) {
	cases := []struct {
		option, correct string
		want            bool
	}{
		{"kwe'sx", "kwe'sx", true},
		{"  Kwe'sx ", "kwe'SX", true},
		{"yu'", "kwe'sx", false},
		{"", "kwe'sx", false},
	}
	for _, c := range cases {
		if got := MatchesAnswer(c.option, c.correct); got != c.want {
			t.Fatalf("MatchesAnswer(%q, %q) = %v, want %v", c.option, c.correct, got, c.want)
		}
	}
}

func TestMaskPrompt(t *testing.T) {
	got := MaskPrompt("El perro se dice Alku. alku es un animal.", "alku")
	want := "El perro se dice _________. _________ es un animal."
	if got != want {
		t.Fatalf("unexpected mask: %q", got)
	}

	if got := MaskPrompt("precio (a+b)", "(a+b)"); got != "precio _________" {
		t.Fatalf("expected regexp metacharacters to be quoted, got %q", got)
	}
	if got := MaskPrompt("sin respuesta", ""); got != "sin respuesta" {
		t.Fatalf("expected prompt unchanged, got %q", got)
	}
}

func TestQuestionValidate(t *testing.T) {
	q := Question{Options: [4]string{"a", "b", "c", "d"}, CorrectAnswer: " B ", XP: 5}
	if err := q.Validate(); err != nil {
		t.Fatalf("expected valid question: %v", err)
	}

	dup := q
	dup.Options = [4]string{"a", "A", "c", "b"}
	var invalid ErrInvalidQuestion
	if err := dup.Validate(); !errors.As(err, &invalid) {
		t.Fatalf("expected duplicate option error, got %v", err)
	}

	missing := q
	missing.CorrectAnswer = "z"
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected missing answer error")
	}

	negative := q
	negative.XP = -1
	if err := negative.Validate(); err == nil {
		t.Fatalf("expected negative xp error")
	}
}

func TestServiceErrorMatchesUnavailable(t *testing.T) {
	err := UnavailableStatus("levels", 503)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable match, got %v", err)
	}
	wrapped := Unavailable("questions", errors.New("dial tcp: refused"))
	if !errors.Is(wrapped, ErrServiceUnavailable) {
		t.Fatalf("expected wrapped transport error to match")
	}
	if errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("service error should not match ErrNotFound")
	}
}
