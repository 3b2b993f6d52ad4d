package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// AnswerKind tells which shape an Answer holds.
type AnswerKind int

const (
	// AnswerUnset is the zero Answer: nothing chosen yet.
	AnswerUnset AnswerKind = iota
	// AnswerSingle holds exactly one choice index.
	AnswerSingle
	// AnswerMultiple holds a set of choice indexes.
	AnswerMultiple
)

func (k AnswerKind) String() string {
	switch k {
	case AnswerSingle:
		return "single"
	case AnswerMultiple:
		return "multiple"
	default:
		return "unset"
	}
}

// Answer is either a single choice index or a set of choice indexes.
// The zero value is unset. Answers are values; the index set is never shared.
type Answer struct {
	kind    AnswerKind
	index   int
	indexes []int // sorted, no duplicates
}

// Single returns an answer holding one choice index.
func Single(index int) Answer {
	return Answer{kind: AnswerSingle, index: index}
}

// Multiple returns an answer holding the given set of choice indexes.
// Order is irrelevant and duplicates collapse.
func Multiple(indexes ...int) Answer {
	set := slices.Clone(indexes)
	slices.Sort(set)
	return Answer{kind: AnswerMultiple, indexes: slices.Compact(set)}
}

// Kind reports the shape of the answer.
func (a Answer) Kind() AnswerKind { return a.kind }

// IsSet reports whether the answer holds anything at all.
func (a Answer) IsSet() bool { return a.kind != AnswerUnset }

// Empty reports whether there is nothing selected: unset, or a set with no members.
func (a Answer) Empty() bool {
	switch a.kind {
	case AnswerSingle:
		return false
	case AnswerMultiple:
		return len(a.indexes) == 0
	default:
		return true
	}
}

// Index returns the single choice index. ok is false for other kinds.
func (a Answer) Index() (index int, ok bool) {
	if a.kind != AnswerSingle {
		return 0, false
	}
	return a.index, true
}

// Indexes returns a sorted copy of the chosen indexes. A single answer
// yields a one-element slice; unset yields nil.
func (a Answer) Indexes() []int {
	switch a.kind {
	case AnswerSingle:
		return []int{a.index}
	case AnswerMultiple:
		return slices.Clone(a.indexes)
	default:
		return nil
	}
}

// Len is the number of chosen indexes.
func (a Answer) Len() int {
	switch a.kind {
	case AnswerSingle:
		return 1
	case AnswerMultiple:
		return len(a.indexes)
	default:
		return 0
	}
}

// Contains reports whether index is part of the answer.
func (a Answer) Contains(index int) bool {
	switch a.kind {
	case AnswerSingle:
		return a.index == index
	case AnswerMultiple:
		_, found := slices.BinarySearch(a.indexes, index)
		return found
	default:
		return false
	}
}

// Toggle returns a multiple answer with index added if absent or removed if present.
// Toggling an unset answer starts an empty set.
func (a Answer) Toggle(index int) Answer {
	set := a.Indexes()
	if i, found := slices.BinarySearch(set, index); found {
		set = slices.Delete(set, i, i+1)
	} else {
		set = slices.Insert(set, i, index)
	}
	return Answer{kind: AnswerMultiple, indexes: set}
}

// Equal reports whether two answers have the same kind and the same indexes.
func (a Answer) Equal(b Answer) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case AnswerSingle:
		return a.index == b.index
	case AnswerMultiple:
		return slices.Equal(a.indexes, b.indexes)
	default:
		return true
	}
}

func (a Answer) String() string {
	switch a.kind {
	case AnswerSingle:
		return fmt.Sprint(a.index)
	case AnswerMultiple:
		return fmt.Sprint(a.indexes)
	default:
		return "<unset>"
	}
}

// MarshalJSON encodes unset as null, single as a number and multiple as an array.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerSingle:
		return json.Marshal(a.index)
	case AnswerMultiple:
		if a.indexes == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.indexes)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a number or an array of numbers.
func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*a = Answer{}
		return nil
	case data[0] == '[':
		var set []int
		if err := json.Unmarshal(data, &set); err != nil {
			return fmt.Errorf("decode answer set: %w", err)
		}
		return a.setIndexes(set)
	default:
		var index int
		if err := json.Unmarshal(data, &index); err != nil {
			return fmt.Errorf("decode answer index: %w", err)
		}
		*a = Single(index)
		return nil
	}
}

// MarshalYAML mirrors the JSON form.
func (a Answer) MarshalYAML() (any, error) {
	switch a.kind {
	case AnswerSingle:
		return a.index, nil
	case AnswerMultiple:
		if a.indexes == nil {
			return []int{}, nil
		}
		return a.indexes, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML accepts null, an integer or a sequence of integers.
func (a *Answer) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var set []int
		if err := value.Decode(&set); err != nil {
			return fmt.Errorf("decode answer set: %w", err)
		}
		return a.setIndexes(set)
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*a = Answer{}
			return nil
		}
		var index int
		if err := value.Decode(&index); err != nil {
			return fmt.Errorf("decode answer index: %w", err)
		}
		*a = Single(index)
		return nil
	default:
		return fmt.Errorf("decode answer: unexpected YAML node at line %d", value.Line)
	}
}

// setIndexes stores a decoded index set. Unlike Multiple it refuses
// duplicates, since a stored set with repeats is corrupt input.
func (a *Answer) setIndexes(set []int) error {
	seen := make(map[int]bool, len(set))
	for _, i := range set {
		if seen[i] {
			return fmt.Errorf("decode answer set: duplicate index %d", i)
		}
		seen[i] = true
	}
	*a = Multiple(set...)
	return nil
}
