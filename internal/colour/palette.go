// Package colour provides colour extraction and palette generation functionality.
package colour

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one semantic key and its ordered hex colours.
type Entry struct {
	Key     string   `json:"key" yaml:"key"`
	Colours []string `json:"colours" yaml:"colours"`
}

// PaletteMap is an ordered mapping from semantic key to hex colours.
// Key order is the caller's and is preserved through encoding.
type PaletteMap struct {
	entries []Entry
}

// NewPaletteMap creates a PaletteMap from entries. Later duplicates of a
// key replace earlier ones in place.
func NewPaletteMap(entries ...Entry) *PaletteMap {
	p := &PaletteMap{}
	for _, e := range entries {
		p.Set(e.Key, e.Colours)
	}
	return p
}

// FromColours wraps a flat colour list under a single key.
func FromColours(key string, colours ...string) *PaletteMap {
	return NewPaletteMap(Entry{Key: key, Colours: colours})
}

// Len returns the number of keys.
func (p *PaletteMap) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

// Keys returns the keys in order.
func (p *PaletteMap) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// Get returns a copy of the colours stored under key.
func (p *PaletteMap) Get(key string) ([]string, bool) {
	if p == nil {
		return nil, false
	}
	for _, e := range p.entries {
		if e.Key == key {
			return slices.Clone(e.Colours), true
		}
	}
	return nil, false
}

// Set stores a copy of colours under key, keeping the key's position if
// it already exists.
func (p *PaletteMap) Set(key string, colours []string) {
	cp := slices.Clone(colours)
	if cp == nil {
		cp = []string{}
	}
	for i, e := range p.entries {
		if e.Key == key {
			p.entries[i].Colours = cp
			return
		}
	}
	p.entries = append(p.entries, Entry{Key: key, Colours: cp})
}

// Entries returns a deep copy of the entries.
func (p *PaletteMap) Entries() []Entry {
	if p == nil {
		return nil
	}
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		out[i] = Entry{Key: e.Key, Colours: slices.Clone(e.Colours)}
	}
	return out
}

// Clone returns a deep copy of p.
func (p *PaletteMap) Clone() *PaletteMap {
	return &PaletteMap{entries: p.Entries()}
}

// All returns an iterator over keys and colours in order.
func (p *PaletteMap) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		if p == nil {
			return
		}
		for _, e := range p.entries {
			if !yield(e.Key, slices.Clone(e.Colours)) {
				return
			}
		}
	}
}

// Flatten returns every valid colour in key order, normalised.
// Invalid entries are skipped.
func (p *PaletteMap) Flatten() []string {
	var out []string
	for _, colours := range p.All() {
		for _, c := range colours {
			if norm, err := NormalizeHex(c); err == nil {
				out = append(out, norm)
			}
		}
	}
	return out
}

// FirstValid returns the first valid colour in key order.
func (p *PaletteMap) FirstValid() (string, bool) {
	for _, colours := range p.All() {
		if hex, ok := FirstValidHex(colours); ok {
			return hex, true
		}
	}
	return "", false
}

// FirstValidHex returns the first parseable colour in colours, normalised.
func FirstValidHex(colours []string) (string, bool) {
	for _, c := range colours {
		if norm, err := NormalizeHex(c); err == nil {
			return norm, true
		}
	}
	return "", false
}

// Validate checks that p has at least one key and every colour is a hex
// colour.
func (p *PaletteMap) Validate() error {
	if p.Len() == 0 {
		return NewValidationError("palette", "", ErrEmpty)
	}
	for _, e := range p.entries {
		for i, c := range e.Colours {
			if _, err := NormalizeHex(c); err != nil {
				return NewValidationError(fmt.Sprintf("%s[%d]", e.Key, i), c, ErrBadFormat)
			}
		}
	}
	return nil
}

// Normalize returns a copy of p with every colour normalised. It fails on
// the first invalid colour.
func (p *PaletteMap) Normalize() (*PaletteMap, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := &PaletteMap{}
	for _, e := range p.entries {
		colours := make([]string, len(e.Colours))
		for i, c := range e.Colours {
			colours[i], _ = NormalizeHex(c)
		}
		out.Set(e.Key, colours)
	}
	return out, nil
}

// String returns a human-readable listing.
func (p *PaletteMap) String() string {
	if p.Len() == 0 {
		return "Empty palette"
	}
	var sb strings.Builder
	for _, e := range p.entries {
		fmt.Fprintf(&sb, "%s: %s\n", e.Key, strings.Join(e.Colours, " "))
	}
	return sb.String()
}

// MarshalJSON writes an object whose member order follows p.
func (p *PaletteMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		colours := e.Colours
		if colours == nil {
			colours = []string{}
		}
		val, err := json.Marshal(colours)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of key to colour array (or single colour)
// keeping member order.
func (p *PaletteMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read palette: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return NewValidationError("palette", fmt.Sprint(tok), ErrWrongType)
	}
	p.entries = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read palette key: %w", err)
		}
		key, _ := tok.(string)
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read colours for %q: %w", key, err)
		}
		colours, err := coloursFromAny(key, raw)
		if err != nil {
			return err
		}
		p.Set(key, colours)
	}
	_, err = dec.Token()
	return err
}

func coloursFromAny(key string, raw any) ([]string, error) {
	switch v := raw.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewValidationError(fmt.Sprintf("%s[%d]", key, i), fmt.Sprint(item), ErrWrongType)
			}
			out[i] = s
		}
		return out, nil
	case nil:
		return []string{}, nil
	default:
		return nil, NewValidationError(key, fmt.Sprint(v), ErrWrongType)
	}
}

// UnmarshalYAML walks the mapping node directly so key order survives.
func (p *PaletteMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return NewValidationError("palette", node.Value, ErrWrongType)
	}
	p.entries = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		switch val.Kind {
		case yaml.ScalarNode:
			if val.Tag == "!!null" {
				p.Set(key, nil)
				continue
			}
			if !colourScalar(val) {
				return NewValidationError(key, val.Value, ErrWrongType)
			}
			p.Set(key, []string{val.Value})
		case yaml.SequenceNode:
			colours := make([]string, 0, len(val.Content))
			for j, item := range val.Content {
				if !colourScalar(item) {
					return NewValidationError(fmt.Sprintf("%s[%d]", key, j), item.Value, ErrWrongType)
				}
				colours = append(colours, item.Value)
			}
			p.Set(key, colours)
		default:
			return NewValidationError(key, val.Value, ErrWrongType)
		}
	}
	return nil
}

// colourScalar reports whether n can hold a colour. Unquoted hex made of
// digits (123456, 009900, 1e5000) resolves to a number; its raw text is
// still a colour.
func colourScalar(n *yaml.Node) bool {
	if n.Kind != yaml.ScalarNode {
		return false
	}
	switch n.Tag {
	case "!!str":
		return true
	case "!!int", "!!float":
		return IsHex(n.Value)
	}
	return false
}

// MarshalYAML emits a mapping in key order.
func (p *PaletteMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, e := range p.entries {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, c := range e.Colours {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c, Style: yaml.DoubleQuotedStyle})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Key},
			seq,
		)
	}
	return node, nil
}
