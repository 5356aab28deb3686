package typemap

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pyneda/wsdlgen/lib"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// words splits a schema name into ASCII words. Separators are any non letter
// or digit; a lower-to-upper transition and the last capital of an acronym
// followed by a lowercase letter also start a new word. Non-ASCII letters are
// transliterated.
func words(name string) []string {
	var (
		out     []string
		current []rune
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		out = append(out, lib.SlugWords(string(current))...)
		current = current[:0]
	}

	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return out
}

// pascalCase turns a schema name into a type identifier.
func pascalCase(name string) string {
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(upperFirst(w))
	}
	id := b.String()
	if id == "" || !unicode.IsLetter(rune(id[0])) {
		id = "Type" + id
	}
	return id
}

// camelCase turns a schema name into a member identifier. prefix is used when
// the name does not start with a letter.
func camelCase(name, prefix string) string {
	ws := words(name)
	if len(ws) == 0 {
		return prefix
	}
	var b strings.Builder
	for i, w := range ws {
		if i == 0 {
			b.WriteString(w)
			continue
		}
		b.WriteString(upperFirst(w))
	}
	id := b.String()
	if !unicode.IsLetter(rune(id[0])) {
		id = prefix + id
	}
	return id
}

// TypeName returns the type identifier for a schema or WSDL name.
func TypeName(name string) string {
	return pascalCase(name)
}

// MethodName returns the method identifier for an operation name.
func MethodName(name string) string {
	return camelCase(name, "call")
}

// upperFirst title-cases a lowercase ASCII word; words starting with a digit
// are returned as is.
func upperFirst(w string) string {
	if w == "" || !unicode.IsLetter(rune(w[0])) {
		return w
	}
	return cases.Title(language.Und).String(w)
}

// Scope hands out unique identifiers in first-come order.
type Scope struct {
	used map[string]bool
}

func NewScope(reserved ...string) *Scope {
	ns := &Scope{used: make(map[string]bool, len(reserved))}
	for _, r := range reserved {
		ns.used[r] = true
	}
	return ns
}

func (n *Scope) Taken(id string) bool {
	return n.used[id]
}

// Claim returns id, or id with the smallest numeric suffix from 2 that is free.
func (n *Scope) Claim(id string) string {
	candidate := id
	for i := 2; n.used[candidate]; i++ {
		candidate = id + strconv.Itoa(i)
	}
	n.used[candidate] = true
	return candidate
}
