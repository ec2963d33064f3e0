// Package grammar models the tree-sitter grammar.json schema. A Grammar
// built with the rule constructors (or parsed from an existing file) can be
// validated and written back out for the external `tree-sitter generate`
// toolchain, which compiles it into the parser artifact the runtime loads.
//
// Rule order is significant: the first rule is the start rule, and the CLI
// preserves declaration order when assigning symbol IDs. Rules is therefore
// an ordered map, not a plain Go map.
package grammar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Grammar is a complete grammar definition.
type Grammar struct {
	Name        string
	Word        string
	Rules       Rules
	Extras      []Rule
	Conflicts   [][]string
	Precedences [][]Rule
	Externals   []Rule
	Inline      []string
	Supertypes  []string
}

// New returns an empty grammar with the given name and the default extras
// (whitespace), matching what the tree-sitter CLI assumes when a grammar.js
// declares none.
func New(name string) *Grammar {
	return &Grammar{
		Name:   name,
		Extras: []Rule{Pat(`\s`)},
	}
}

// Rules holds grammar rules in declaration order.
type Rules struct {
	names  []string
	byName map[string]Rule
}

// Add appends a rule, or replaces it in place if the name already exists.
func (rs *Rules) Add(name string, r Rule) {
	if rs.byName == nil {
		rs.byName = make(map[string]Rule)
	}
	if _, ok := rs.byName[name]; !ok {
		rs.names = append(rs.names, name)
	}
	rs.byName[name] = r
}

// Get returns the rule for a name.
func (rs *Rules) Get(name string) (Rule, bool) {
	r, ok := rs.byName[name]
	return r, ok
}

// Names returns rule names in declaration order.
func (rs *Rules) Names() []string {
	return rs.names
}

// Len returns the number of rules.
func (rs *Rules) Len() int {
	return len(rs.names)
}

// Start returns the start rule name (the first declared rule), or "".
func (rs *Rules) Start() string {
	if len(rs.names) == 0 {
		return ""
	}
	return rs.names[0]
}

// MarshalJSON emits the rules as a JSON object in declaration order.
func (rs Rules) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range rs.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(rs.byName[name])
		if err != nil {
			return nil, fmt.Errorf("marshal rule %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a rules object preserving key order. encoding/json
// maps lose order, so this walks the token stream directly.
func (rs *Rules) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parse rules: expected object, got %v", tok)
	}
	rs.names = nil
	rs.byName = make(map[string]Rule)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("parse rules: non-string key %v", keyTok)
		}
		var r Rule
		if err := dec.Decode(&r); err != nil {
			return fmt.Errorf("parse rule %q: %w", name, err)
		}
		rs.Add(name, r)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// grammarJSON is the top-level grammar.json shape. The CLI emits every
// array field even when empty, so marshalling normalizes nils to empty.
type grammarJSON struct {
	Name        string     `json:"name"`
	Word        string     `json:"word,omitempty"`
	Rules       Rules      `json:"rules"`
	Extras      []Rule     `json:"extras"`
	Conflicts   [][]string `json:"conflicts"`
	Precedences [][]Rule   `json:"precedences"`
	Externals   []Rule     `json:"externals"`
	Inline      []string   `json:"inline"`
	Supertypes  []string   `json:"supertypes"`
}

// MarshalJSON emits the grammar in grammar.json form.
func (g Grammar) MarshalJSON() ([]byte, error) {
	gj := grammarJSON{
		Name:        g.Name,
		Word:        g.Word,
		Rules:       g.Rules,
		Extras:      g.Extras,
		Conflicts:   g.Conflicts,
		Precedences: g.Precedences,
		Externals:   g.Externals,
		Inline:      g.Inline,
		Supertypes:  g.Supertypes,
	}
	if gj.Extras == nil {
		gj.Extras = []Rule{}
	}
	if gj.Conflicts == nil {
		gj.Conflicts = [][]string{}
	}
	if gj.Precedences == nil {
		gj.Precedences = [][]Rule{}
	}
	if gj.Externals == nil {
		gj.Externals = []Rule{}
	}
	if gj.Inline == nil {
		gj.Inline = []string{}
	}
	if gj.Supertypes == nil {
		gj.Supertypes = []string{}
	}
	return json.Marshal(gj)
}

// UnmarshalJSON reads a grammar.json document.
func (g *Grammar) UnmarshalJSON(data []byte) error {
	var gj grammarJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return err
	}
	g.Name = gj.Name
	g.Word = gj.Word
	g.Rules = gj.Rules
	g.Extras = gj.Extras
	g.Conflicts = gj.Conflicts
	g.Precedences = gj.Precedences
	g.Externals = gj.Externals
	g.Inline = gj.Inline
	g.Supertypes = gj.Supertypes
	return nil
}

// Parse reads a grammar.json document from bytes.
func Parse(data []byte) (*Grammar, error) {
	var g Grammar
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if g.Name == "" {
		return nil, fmt.Errorf("parse grammar: missing name")
	}
	return &g, nil
}

// ParseFile reads a grammar.json file.
func ParseFile(path string) (*Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return Parse(data)
}

// Encode writes the grammar as two-space-indented JSON, the format the
// tree-sitter CLI expects for src/grammar.json.
func (g *Grammar) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return nil, fmt.Errorf("encode grammar %q: %w", g.Name, err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes the grammar to a grammar.json file.
func (g *Grammar) WriteFile(path string) error {
	data, err := g.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
