package grammar

import (
	"encoding/json"
	"fmt"
)

// RuleType enumerates the rule node types of the tree-sitter grammar.json
// schema. The wire names are fixed by the tree-sitter CLI.
type RuleType string

const (
	RuleBlank          RuleType = "BLANK"
	RuleString         RuleType = "STRING"
	RulePattern        RuleType = "PATTERN"
	RuleSymbol         RuleType = "SYMBOL"
	RuleSeq            RuleType = "SEQ"
	RuleChoice         RuleType = "CHOICE"
	RuleRepeat         RuleType = "REPEAT"
	RuleRepeat1        RuleType = "REPEAT1"
	RuleField          RuleType = "FIELD"
	RuleToken          RuleType = "TOKEN"
	RuleImmediateToken RuleType = "IMMEDIATE_TOKEN"
	RulePrec           RuleType = "PREC"
	RulePrecLeft       RuleType = "PREC_LEFT"
	RulePrecRight      RuleType = "PREC_RIGHT"
	RulePrecDynamic    RuleType = "PREC_DYNAMIC"
	RuleAlias          RuleType = "ALIAS"
)

// Rule is one node of a grammar rule tree. Which fields are meaningful
// depends on Type: SYMBOL and FIELD use Name, STRING and PATTERN use Value
// (and PATTERN optionally Flags), SEQ and CHOICE use Members, the wrapper
// types (REPEAT, TOKEN, PREC_*, FIELD, ALIAS) use Content, and PREC_* carry
// the precedence in Value.
type Rule struct {
	Type    RuleType
	Name    string
	Value   any
	Flags   string
	Named   bool
	Content *Rule
	Members []Rule
}

// Constructors mirror the grammar DSL of the tree-sitter JS API, so grammar
// definitions written in Go read close to the upstream grammar.js they
// replace.

func Blank() Rule               { return Rule{Type: RuleBlank} }
func Str(s string) Rule         { return Rule{Type: RuleString, Value: s} }
func Pat(re string) Rule        { return Rule{Type: RulePattern, Value: re} }
func Sym(name string) Rule      { return Rule{Type: RuleSymbol, Name: name} }
func Seq(rules ...Rule) Rule    { return Rule{Type: RuleSeq, Members: rules} }
func Choice(rules ...Rule) Rule { return Rule{Type: RuleChoice, Members: rules} }
func Rep(r Rule) Rule           { return Rule{Type: RuleRepeat, Content: &r} }
func Rep1(r Rule) Rule          { return Rule{Type: RuleRepeat1, Content: &r} }
func Token(r Rule) Rule         { return Rule{Type: RuleToken, Content: &r} }

// Opt wraps a rule as optional: choice(r, blank), matching the expansion
// the tree-sitter CLI performs for optional().
func Opt(r Rule) Rule { return Choice(r, Blank()) }

// PatFlags builds a PATTERN rule with regex flags (e.g. "i").
func PatFlags(re, flags string) Rule {
	return Rule{Type: RulePattern, Value: re, Flags: flags}
}

func ImmediateToken(r Rule) Rule {
	return Rule{Type: RuleImmediateToken, Content: &r}
}

func Field(name string, r Rule) Rule {
	return Rule{Type: RuleField, Name: name, Content: &r}
}

func Prec(n int, r Rule) Rule {
	return Rule{Type: RulePrec, Value: n, Content: &r}
}

func PrecLeft(n int, r Rule) Rule {
	return Rule{Type: RulePrecLeft, Value: n, Content: &r}
}

func PrecRight(n int, r Rule) Rule {
	return Rule{Type: RulePrecRight, Value: n, Content: &r}
}

func PrecDynamic(n int, r Rule) Rule {
	return Rule{Type: RulePrecDynamic, Value: n, Content: &r}
}

// Alias renames a rule in the produced syntax tree. named controls whether
// the alias appears as a named node or an anonymous token.
func Alias(r Rule, name string, named bool) Rule {
	return Rule{Type: RuleAlias, Value: name, Named: named, Content: &r}
}

// MarshalJSON emits the per-type object shape of grammar.json. Each rule
// type has a fixed field set; a zero precedence or empty string value is
// still emitted, matching what the tree-sitter CLI produces.
func (r Rule) MarshalJSON() ([]byte, error) {
	switch r.Type {
	case RuleBlank:
		return json.Marshal(struct {
			Type RuleType `json:"type"`
		}{r.Type})
	case RuleString:
		return json.Marshal(struct {
			Type  RuleType `json:"type"`
			Value any      `json:"value"`
		}{r.Type, r.Value})
	case RulePattern:
		return json.Marshal(struct {
			Type  RuleType `json:"type"`
			Value any      `json:"value"`
			Flags string   `json:"flags,omitempty"`
		}{r.Type, r.Value, r.Flags})
	case RuleSymbol:
		return json.Marshal(struct {
			Type RuleType `json:"type"`
			Name string   `json:"name"`
		}{r.Type, r.Name})
	case RuleSeq, RuleChoice:
		members := r.Members
		if members == nil {
			members = []Rule{}
		}
		return json.Marshal(struct {
			Type    RuleType `json:"type"`
			Members []Rule   `json:"members"`
		}{r.Type, members})
	case RuleRepeat, RuleRepeat1, RuleToken, RuleImmediateToken:
		return json.Marshal(struct {
			Type    RuleType `json:"type"`
			Content *Rule    `json:"content"`
		}{r.Type, r.Content})
	case RuleField:
		return json.Marshal(struct {
			Type    RuleType `json:"type"`
			Name    string   `json:"name"`
			Content *Rule    `json:"content"`
		}{r.Type, r.Name, r.Content})
	case RulePrec, RulePrecLeft, RulePrecRight, RulePrecDynamic:
		return json.Marshal(struct {
			Type    RuleType `json:"type"`
			Value   any      `json:"value"`
			Content *Rule    `json:"content"`
		}{r.Type, r.Value, r.Content})
	case RuleAlias:
		return json.Marshal(struct {
			Type    RuleType `json:"type"`
			Content *Rule    `json:"content"`
			Named   bool     `json:"named"`
			Value   any      `json:"value"`
		}{r.Type, r.Content, r.Named, r.Value})
	default:
		return nil, fmt.Errorf("marshal rule: unknown type %q", r.Type)
	}
}

// UnmarshalJSON reads any rule node shape the tree-sitter CLI emits.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var rj struct {
		Type    RuleType        `json:"type"`
		Name    string          `json:"name"`
		Value   json.RawMessage `json:"value"`
		Flags   string          `json:"flags"`
		Named   bool            `json:"named"`
		Content *Rule           `json:"content"`
		Members []Rule          `json:"members"`
	}
	if err := json.Unmarshal(data, &rj); err != nil {
		return fmt.Errorf("parse rule: %w", err)
	}
	if rj.Type == "" {
		return fmt.Errorf("parse rule: missing type")
	}
	r.Type = rj.Type
	r.Name = rj.Name
	r.Flags = rj.Flags
	r.Named = rj.Named
	r.Content = rj.Content
	r.Members = rj.Members

	if rj.Value != nil {
		// PREC values are numbers (or, for PREC_DYNAMIC names, strings);
		// STRING/PATTERN/ALIAS values are strings.
		var s string
		if err := json.Unmarshal(rj.Value, &s); err == nil {
			r.Value = s
		} else {
			var n int
			if err := json.Unmarshal(rj.Value, &n); err != nil {
				return fmt.Errorf("parse rule value: %w", err)
			}
			r.Value = n
		}
	}
	return nil
}

// Walk visits r and every nested rule in depth-first order. Returning false
// from fn stops descent into that node's children.
func (r *Rule) Walk(fn func(*Rule) bool) {
	if !fn(r) {
		return
	}
	if r.Content != nil {
		r.Content.Walk(fn)
	}
	for i := range r.Members {
		r.Members[i].Walk(fn)
	}
}
