package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// ProbeReport summarizes how a grammar parsed a sample. A grammar that
// loads but produces ERROR or MISSING nodes on its own sample sources is
// installed correctly yet behaviorally wrong, which a pure load check
// cannot see.
type ProbeReport struct {
	Grammar      string
	Nodes        int
	NamedNodes   int
	MaxDepth     int
	ErrorNodes   int
	MissingNodes int
	RootKind     string
	SExpression  string
}

// Clean reports whether the parse produced no ERROR or MISSING nodes.
func (p *ProbeReport) Clean() bool {
	return p.ErrorNodes == 0 && p.MissingNodes == 0
}

// Probe parses source with the given language and reports tree shape and
// parse health.
func Probe(grammar string, lang *tree_sitter.Language, source []byte) (*ProbeReport, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil, asLoadError(grammar, err)
	}

	tree := parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	report := &ProbeReport{
		Grammar:     grammar,
		RootKind:    root.Kind(),
		SExpression: root.ToSexp(),
	}
	countNodes(root, 1, report)
	return report, nil
}

func countNodes(n *tree_sitter.Node, depth int, report *ProbeReport) {
	report.Nodes++
	if n.IsNamed() {
		report.NamedNodes++
	}
	if n.IsError() {
		report.ErrorNodes++
	}
	if n.IsMissing() {
		report.MissingNodes++
	}
	if depth > report.MaxDepth {
		report.MaxDepth = depth
	}
	for i := uint(0); i < uint(n.ChildCount()); i++ {
		countNodes(n.Child(i), depth+1, report)
	}
}
