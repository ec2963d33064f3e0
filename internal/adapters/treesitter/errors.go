package treesitter

import "fmt"

// LoadError is the single failure class for the grammar load path. Missing
// artifacts, dlopen failures, null grammar pointers, and ABI rejections all
// surface as a LoadError carrying the grammar's name; callers that need the
// cause can unwrap it.
type LoadError struct {
	Grammar string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error loading %s grammar", e.Grammar)
	}
	return fmt.Sprintf("error loading %s grammar: %v", e.Grammar, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// loadErr wraps a cause into a LoadError for the given grammar.
func loadErr(grammar string, format string, args ...any) *LoadError {
	return &LoadError{Grammar: grammar, Err: fmt.Errorf(format, args...)}
}
