package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

// identRe matches rule names the tree-sitter CLI accepts.
var identRe = regexp.MustCompile(`^[a-zA-Z_]\w*$`)

// ValidationError collects everything wrong with a grammar definition.
// A grammar with any issue will be rejected by `tree-sitter generate`,
// so the checks here front-run the slower external toolchain.
type ValidationError struct {
	Grammar string
	Issues  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("grammar %q: %d issues:\n  %s",
		e.Grammar, len(e.Issues), strings.Join(e.Issues, "\n  "))
}

// Validate checks structural soundness: the start rule exists, every SYMBOL
// reference resolves to a declared rule or external token, word/inline/
// supertype names resolve, and patterns compile. Returns nil when clean,
// otherwise a *ValidationError listing every issue found.
func (g *Grammar) Validate() error {
	var issues []string
	add := func(format string, args ...any) {
		issues = append(issues, fmt.Sprintf(format, args...))
	}

	if g.Name == "" {
		add("missing grammar name")
	} else if !identRe.MatchString(g.Name) {
		add("invalid grammar name %q", g.Name)
	}

	if g.Rules.Len() == 0 {
		add("no rules defined (grammar needs a start rule)")
	}

	// Symbols may resolve to a declared rule or to an external token.
	defined := make(map[string]bool, g.Rules.Len())
	for _, name := range g.Rules.Names() {
		defined[name] = true
	}
	for i := range g.Externals {
		if g.Externals[i].Type == RuleSymbol {
			defined[g.Externals[i].Name] = true
		}
	}

	if g.Word != "" && !defined[g.Word] {
		add("word token %q is not a defined rule", g.Word)
	}
	for _, name := range g.Inline {
		if !defined[name] {
			add("inline rule %q is not defined", name)
		}
	}
	for _, name := range g.Supertypes {
		if !defined[name] {
			add("supertype %q is not defined", name)
		}
	}
	for i, group := range g.Conflicts {
		for _, name := range group {
			if !defined[name] {
				add("conflict group %d references undefined rule %q", i, name)
			}
		}
	}

	check := func(where string, r *Rule) {
		r.Walk(func(n *Rule) bool {
			switch n.Type {
			case RuleSymbol:
				if !defined[n.Name] {
					add("%s references undefined symbol %q", where, n.Name)
				}
			case RulePattern:
				pat, _ := n.Value.(string)
				if pat == "" {
					add("%s has an empty pattern", where)
				} else if _, err := regexp.Compile(pat); err != nil {
					add("%s has an uncompilable pattern %q: %v", where, pat, err)
				}
			case RuleString:
				if s, _ := n.Value.(string); s == "" {
					add("%s has an empty string literal", where)
				}
			}
			return true
		})
	}

	for _, name := range g.Rules.Names() {
		r, _ := g.Rules.Get(name)
		check(fmt.Sprintf("rule %q", name), &r)
	}
	for i := range g.Extras {
		check(fmt.Sprintf("extras[%d]", i), &g.Extras[i])
	}
	for i, group := range g.Precedences {
		for j := range group {
			check(fmt.Sprintf("precedences[%d][%d]", i, j), &group[j])
		}
	}

	if len(issues) == 0 {
		return nil
	}
	return &ValidationError{Grammar: g.Name, Issues: issues}
}
