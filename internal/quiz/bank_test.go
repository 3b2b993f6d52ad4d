package quiz

import (
	"testing"

	"github.com/pavelanni/quizflow/internal/model"
)

func TestFingerprint(t *testing.T) {
	a, err := Fingerprint(DefaultBank())
	if err != nil {
		t.Fatalf("Fingerprint: %v", err)
	}

	answered := DefaultBank()
	answered[0].Selected = model.Single(1)
	b, _ := Fingerprint(answered)
	if a != b {
		t.Error("selected answers should not change the fingerprint")
	}

	changed := DefaultBank()
	changed[0].Correct = model.Single(1)
	c, _ := Fingerprint(changed)
	if a == c {
		t.Error("a different correct answer should change the fingerprint")
	}
}
