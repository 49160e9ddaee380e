package vocab

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// PartOfSpeech labels a group of senses, e.g. "n." or "v.".
type PartOfSpeech string

// Field is the tagged variant a vocabulary source may use for either the
// answer or the prompt: SimpleAnswer, MultiForm or GroupedMeaning.
type Field interface {
	// Forms returns the flat list of accepted strings in source order.
	Forms() []string

	// Display renders the field for presentation.
	Display() string
}

// SimpleAnswer is a single string.
type SimpleAnswer string

func (s SimpleAnswer) Forms() []string {
	v := strings.TrimSpace(string(s))
	if v == "" {
		return nil
	}
	return []string{v}
}

func (s SimpleAnswer) Display() string { return strings.TrimSpace(string(s)) }

// MultiForm is an ordered list of equivalent forms. The first is canonical.
type MultiForm []string

func (m MultiForm) Forms() []string {
	out := make([]string, 0, len(m))
	for _, f := range m {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func (m MultiForm) Display() string { return strings.Join(m.Forms(), ", ") }

// GroupedMeaning maps a part of speech to its senses.
type GroupedMeaning map[PartOfSpeech][]string

// parts returns the part-of-speech keys in a stable order.
func (g GroupedMeaning) parts() []PartOfSpeech {
	keys := make([]PartOfSpeech, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (g GroupedMeaning) Forms() []string {
	var out []string
	for _, pos := range g.parts() {
		out = append(out, MultiForm(g[pos]).Forms()...)
	}
	return out
}

func (g GroupedMeaning) Display() string {
	var groups []string
	for _, pos := range g.parts() {
		senses := MultiForm(g[pos]).Forms()
		if len(senses) == 0 {
			continue
		}
		groups = append(groups, fmt.Sprintf("%s %s", pos, strings.Join(senses, ", ")))
	}
	return strings.Join(groups, "; ")
}

// Resolve flattens a field into its canonical display form and its
// acceptance set. A nil field or one with no usable form resolves to
// ("", nil).
func Resolve(f Field) (canonical string, accepted []string) {
	if f == nil {
		return "", nil
	}
	accepted = f.Forms()
	if len(accepted) == 0 {
		return "", nil
	}
	return accepted[0], accepted
}

// ParseField decodes a raw JSON value into its variant. Strings become
// SimpleAnswer, arrays MultiForm and objects GroupedMeaning; object values
// may be a string or an array of strings.
func ParseField(raw json.RawMessage) (Field, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return SimpleAnswer(s), nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return MultiForm(list), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("parse field: unsupported shape %s", raw)
	}
	g := make(GroupedMeaning, len(obj))
	for pos, v := range obj {
		inner, err := ParseField(v)
		if err != nil {
			return nil, fmt.Errorf("parse field %q: %w", pos, err)
		}
		if inner == nil {
			continue
		}
		g[PartOfSpeech(pos)] = inner.Forms()
	}
	return g, nil
}
