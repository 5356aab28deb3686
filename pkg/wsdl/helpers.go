package wsdl

import (
	"encoding/xml"
	"net/url"
	"path/filepath"
	"strings"
)

// QName is a qualified name: a namespace URI and a local name. Two names are
// equal iff both fields match, so QName is usable as a map key.
type QName struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Local     string `json:"local" yaml:"local"`
}

// String renders the name in Clark notation: {namespace}local
func (q QName) String() string {
	return MakeTypeKey(q.Namespace, q.Local)
}

// IsZero reports whether q is the zero name (used for anonymous types).
func (q QName) IsZero() bool {
	return q.Namespace == "" && q.Local == ""
}

// Less orders names by namespace, then local name.
func (q QName) Less(other QName) bool {
	if q.Namespace != other.Namespace {
		return q.Namespace < other.Namespace
	}
	return q.Local < other.Local
}

// ExtractLocalName extracts the local part from a QName string
func ExtractLocalName(qname string) string {
	qname = strings.TrimSpace(qname)

	// Handle Clark notation: {namespace}localName
	if strings.HasPrefix(qname, "{") {
		idx := strings.Index(qname, "}")
		if idx > 0 {
			return qname[idx+1:]
		}
	}

	if idx := strings.LastIndex(qname, ":"); idx >= 0 {
		return qname[idx+1:]
	}

	return qname
}

// ExtractPrefix extracts the prefix from a QName string (returns empty if no prefix)
func ExtractPrefix(qname string) string {
	qname = strings.TrimSpace(qname)

	// Clark notation has no prefix
	if strings.HasPrefix(qname, "{") {
		return ""
	}

	if idx := strings.Index(qname, ":"); idx > 0 {
		return qname[:idx]
	}
	return ""
}

// MakeTypeKey creates a unique key for type lookup combining namespace and local name
func MakeTypeKey(namespace, localName string) string {
	if namespace == "" {
		return localName
	}
	return "{" + namespace + "}" + localName
}

// IsRemoteLocation reports whether location is an HTTP(S) URL.
func IsRemoteLocation(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveLocation resolves a (possibly relative) document location against the
// location of the document that referenced it. Remote bases resolve as URLs,
// local bases as file paths.
func ResolveLocation(base, relative string) string {
	if relative == "" {
		return base
	}
	if IsRemoteLocation(relative) {
		return relative
	}
	if strings.HasPrefix(relative, "file://") {
		return strings.TrimPrefix(relative, "file://")
	}

	if IsRemoteLocation(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return relative
		}
		rel, err := url.Parse(relative)
		if err != nil {
			return relative
		}
		return baseURL.ResolveReference(rel).String()
	}

	base = strings.TrimPrefix(base, "file://")
	if filepath.IsAbs(relative) {
		return filepath.Clean(relative)
	}
	return filepath.Join(filepath.Dir(base), filepath.FromSlash(relative))
}

// NormalizeLocation gives one spelling to equivalent locations: URLs lose
// dot segments, file paths are cleaned.
func NormalizeLocation(location string) string {
	if IsRemoteLocation(location) {
		u, err := url.Parse(location)
		if err != nil {
			return location
		}
		return u.ResolveReference(&url.URL{}).String()
	}
	return filepath.Clean(strings.TrimPrefix(location, "file://"))
}

// NamespaceMap manages XML namespace prefixes
type NamespaceMap struct {
	prefixToNS map[string]string
}

// NewNamespaceMap creates a new namespace map
func NewNamespaceMap() *NamespaceMap {
	return &NamespaceMap{
		prefixToNS: map[string]string{"xml": XMLNamespace},
	}
}

// Add adds a prefix-namespace mapping. The empty prefix is the default namespace.
func (nm *NamespaceMap) Add(prefix, namespace string) {
	nm.prefixToNS[prefix] = namespace
}

// GetNamespace returns the namespace for a prefix
func (nm *NamespaceMap) GetNamespace(prefix string) (string, bool) {
	ns, ok := nm.prefixToNS[prefix]
	return ns, ok
}

// With returns a copy of the map overlaid with the xmlns declarations found in attrs.
func (nm *NamespaceMap) With(attrs []xml.Attr) *NamespaceMap {
	clone := NewNamespaceMap()
	for k, v := range nm.prefixToNS {
		clone.prefixToNS[k] = v
	}
	for _, attr := range attrs {
		switch {
		case attr.Name.Space == "xmlns":
			clone.Add(attr.Name.Local, attr.Value)
		case attr.Name.Space == "" && attr.Name.Local == "xmlns":
			clone.Add("", attr.Value)
		}
	}
	return clone
}

// Resolve turns a prefixed attribute value like "tns:Foo" into a QName.
// Unprefixed values take the default namespace. An undeclared prefix is an error.
func (nm *NamespaceMap) Resolve(value string) (QName, bool) {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") {
		if idx := strings.Index(value, "}"); idx > 0 {
			return QName{Namespace: value[1:idx], Local: value[idx+1:]}, true
		}
	}
	prefix := ExtractPrefix(value)
	ns, ok := nm.prefixToNS[prefix]
	if !ok && prefix != "" {
		return QName{Local: ExtractLocalName(value)}, false
	}
	return QName{Namespace: ns, Local: ExtractLocalName(value)}, true
}
