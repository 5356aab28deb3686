package loader

import (
	"fmt"
	"strings"
)

// ImportErrorKind identifies why import resolution failed.
type ImportErrorKind string

const (
	ErrMissingNamespace          ImportErrorKind = "import without namespace"
	ErrMissingLocation           ImportErrorKind = "import without location"
	ErrMissingImportedNamespaces ImportErrorKind = "missing imported namespaces"
	ErrDepthExceeded             ImportErrorKind = "max import depth exceeded"
	ErrFetchFailed               ImportErrorKind = "fetch failed"
)

// ImportError aborts a load. Namespaces is set for ErrMissingImportedNamespaces.
type ImportError struct {
	Kind       ImportErrorKind
	Location   string
	Namespaces []string
	Err        error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	b.WriteString("import error: ")
	b.WriteString(string(e.Kind))
	if len(e.Namespaces) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.Namespaces, ", "))
	}
	if e.Location != "" {
		fmt.Fprintf(&b, " (%s)", e.Location)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
