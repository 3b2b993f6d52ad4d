package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pavelanni/quizflow/internal/model"
	"github.com/pavelanni/quizflow/internal/quiz"
	"github.com/pavelanni/quizflow/internal/store"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.db")
	db, err := store.New(path)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	defer db.Close()

	bank := quiz.DefaultBank()
	if err := saveQuizInfo(db, "Geography", bank); err != nil {
		t.Fatalf("saveQuizInfo: %v", err)
	}
	bank[0].Selected = model.Single(2)
	bank[1].Selected = model.Multiple(1, 2)
	bank[2].Selected = model.Single(1)
	finished := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	a := quiz.NewAttempt(quiz.Score(bank), model.SourceWeb, finished.Add(-time.Minute), finished)
	a.ID = "attempt-1"
	if _, err := db.RecordAttempt(a); err != nil {
		t.Fatalf("RecordAttempt: %v", err)
	}
	return path
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out, "1. [single-choice] What is the capital of France?") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "3 questions OK") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestExportJSON(t *testing.T) {
	db := seedDB(t)
	out, err := execute(t, "export", "--db", db)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var got model.QuizExport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	if got.Title != "Geography" || got.NumQuestions != 3 {
		t.Errorf("unexpected header %+v", got)
	}
	if len(got.Attempts) != 1 || got.Attempts[0].Score != 2 {
		t.Fatalf("unexpected attempts %+v", got.Attempts)
	}
	if !got.Attempts[0].Answers[1].Selected.Equal(model.Multiple(1, 2)) {
		t.Errorf("answer set lost: %v", got.Attempts[0].Answers[1].Selected)
	}
}

func TestExportYAML(t *testing.T) {
	db := seedDB(t)
	out, err := execute(t, "export", "--db", db, "--format", "yaml", "--title", "Override")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	var got model.QuizExport
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode export: %v\n%s", err, out)
	}
	if got.Title != "Override" {
		t.Errorf("expected title override, got %q", got.Title)
	}
	if len(got.Attempts) != 1 || got.Attempts[0].ID != "attempt-1" {
		t.Fatalf("unexpected attempts %+v", got.Attempts)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	db := seedDB(t)
	if _, err := execute(t, "export", "--db", db, "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestNormalizeBasePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/", ""},
		{"quiz", "/quiz"},
		{"/quiz/", "/quiz"},
	}
	for _, tt := range tests {
		if got := normalizeBasePath(tt.in); got != tt.want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
