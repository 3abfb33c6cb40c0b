package store

import "fmt"

// Source indicates where the effective value of a tweak comes from.
type Source int

const (
	SourceDefault Source = iota
	SourceOverride
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceOverride:
		return "override"
	default:
		return "unknown"
	}
}

// MarshalText renders the source by name in JSON output.
func (s Source) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Source) UnmarshalText(b []byte) error {
	switch string(b) {
	case "default":
		*s = SourceDefault
	case "override":
		*s = SourceOverride
	default:
		return fmt.Errorf("store: unknown source %q", b)
	}
	return nil
}

// Item is a point-in-time view of a single tweak.
//
// Values are rendered in their textual form; actions render as "<action>".
type Item struct {
	Identifier string `json:"id"`
	Category   string `json:"category,omitempty"`
	Collection string `json:"collection,omitempty"`
	Name       string `json:"name"`

	Kind   string `json:"kind"`
	Action bool   `json:"action,omitempty"`

	Value        string `json:"value"`
	DefaultValue string `json:"defaultValue"`
	Source       Source `json:"source"`

	PossibleValues string `json:"possibleValues,omitempty"`
	Minimum        string `json:"minimum,omitempty"`
	Maximum        string `json:"maximum,omitempty"`
	Step           string `json:"step,omitempty"`
	Precision      string `json:"precision,omitempty"`
}

// Snapshot is a view of every tweak of a store, in tree order.
type Snapshot struct {
	Items []Item `json:"items"`
}

// Snapshot returns a point-in-time view of all tweaks.
func (s *Store) Snapshot() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	var out Snapshot
	for _, t := range s.Tweaks() {
		out.Items = append(out.Items, t.Item())
	}
	return out
}

// Lookup returns the view of a single tweak.
func (s *Store) Lookup(id string) (Item, bool) {
	if s == nil {
		return Item{}, false
	}
	t := s.TweakWithIdentifier(id)
	if t == nil {
		return Item{}, false
	}
	return t.Item(), true
}

// Item returns a point-in-time view of t.
func (t *Tweak) Item() Item {
	it := Item{
		Identifier:   t.id,
		Name:         t.name,
		Kind:         t.def.Kind().String(),
		Action:       t.action,
		DefaultValue: t.def.String(),
		Minimum:      t.MinimumValue().String(),
		Maximum:      t.MaximumValue().String(),
		Step:         t.StepValue().String(),
		Precision:    t.PrecisionValue().String(),
	}
	if col := t.Collection(); col != nil {
		it.Collection = col.Name()
		if cat := col.Category(); cat != nil {
			it.Category = cat.Name()
		}
	}
	if t.possible != nil {
		it.PossibleValues = t.possible.String()
	}
	cur := t.CurrentValue()
	if cur.IsNone() {
		it.Value = it.DefaultValue
		it.Source = SourceDefault
	} else {
		it.Value = cur.String()
		it.Source = SourceOverride
	}
	return it
}
