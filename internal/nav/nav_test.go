package nav

import (
	"errors"
	"testing"
)

func TestNavigate(t *testing.T) {
	n := New[string]()
	n.Register("greet", func(params any) (string, error) {
		name, _ := params.(string)
		return "hello " + name, nil
	})

	if _, ok := n.Current(); ok {
		t.Fatal("expected empty stack")
	}

	v, err := n.Navigate("greet", "ann")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if v != "hello ann" {
		t.Errorf("view = %q", v)
	}

	if _, err := n.Navigate("greet", "bob"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	cur, ok := n.Current()
	if !ok || cur.Name != "greet" || cur.Params != "bob" || cur.View != "hello bob" {
		t.Errorf("unexpected current entry %+v", cur)
	}
}

func TestNavigateUnknown(t *testing.T) {
	n := New[int]()
	_, err := n.Navigate("missing", nil)
	if !errors.Is(err, ErrUnknownScreen) {
		t.Fatalf("expected ErrUnknownScreen, got %v", err)
	}
	if _, ok := n.Current(); ok {
		t.Errorf("failed navigation pushed a screen")
	}
}

func TestNavigateBuilderError(t *testing.T) {
	n := New[int]()
	boom := errors.New("boom")
	n.Register("bad", func(any) (int, error) { return 0, boom })
	if _, err := n.Navigate("bad", nil); !errors.Is(err, boom) {
		t.Fatalf("expected builder error, got %v", err)
	}
	if _, ok := n.Current(); ok {
		t.Errorf("failed navigation pushed a screen")
	}
}

func TestNavigateKeepsStackOnFailure(t *testing.T) {
	n := New[int]()
	n.Register("n", func(p any) (int, error) { return p.(int), nil })
	n.Register("bad", func(any) (int, error) { return 0, errors.New("boom") })
	if _, err := n.Navigate("n", 5); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if _, err := n.Navigate("bad", nil); err == nil {
		t.Fatal("expected an error")
	}
	cur, ok := n.Current()
	if !ok || cur.Name != "n" || cur.View != 5 {
		t.Errorf("unexpected current entry %+v", cur)
	}
}
