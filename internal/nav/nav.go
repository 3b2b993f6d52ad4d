// Package nav is a stack of named screens. Each screen is built from the
// parameter object it is entered with.
package nav

import (
	"errors"
	"fmt"
)

// ErrUnknownScreen is returned when navigating to a name nobody registered.
var ErrUnknownScreen = errors.New("unknown screen")

// Builder turns navigation parameters into a screen.
type Builder[V any] func(params any) (V, error)

// Entry is one screen on the stack.
type Entry[V any] struct {
	Name   string
	Params any
	View   V
}

// Navigator keeps the screens registered by name and the stack of screens
// entered so far. It only moves forward.
type Navigator[V any] struct {
	screens map[string]Builder[V]
	stack   []Entry[V]
}

// New returns an empty navigator.
func New[V any]() *Navigator[V] {
	return &Navigator[V]{screens: make(map[string]Builder[V])}
}

// Register binds a screen name to its builder, replacing any earlier one.
func (n *Navigator[V]) Register(name string, b Builder[V]) {
	n.screens[name] = b
}

// Navigate builds the named screen from params and pushes it.
// The stack is left as it was when the builder fails.
func (n *Navigator[V]) Navigate(name string, params any) (V, error) {
	var zero V
	b, ok := n.screens[name]
	if !ok {
		return zero, fmt.Errorf("navigate to %q: %w", name, ErrUnknownScreen)
	}
	v, err := b(params)
	if err != nil {
		return zero, fmt.Errorf("navigate to %q: %w", name, err)
	}
	n.stack = append(n.stack, Entry[V]{Name: name, Params: params, View: v})
	return v, nil
}

// Current returns the top of the stack. ok is false before the first Navigate.
func (n *Navigator[V]) Current() (e Entry[V], ok bool) {
	if len(n.stack) == 0 {
		return Entry[V]{}, false
	}
	return n.stack[len(n.stack)-1], true
}
