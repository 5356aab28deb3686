package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pyneda/wsdlgen/pkg/wsdl"
	"github.com/rs/zerolog/log"
)

// NodeKind is the symbol space a node lives in.
type NodeKind string

const (
	KindService   NodeKind = "service"
	KindBinding   NodeKind = "binding"
	KindPortType  NodeKind = "portType"
	KindOperation NodeKind = "operation"
	KindMessage   NodeKind = "message"
	KindElement   NodeKind = "element"
	KindType      NodeKind = "type"
)

var kindOrder = map[NodeKind]int{
	KindService:   0,
	KindBinding:   1,
	KindPortType:  2,
	KindOperation: 3,
	KindMessage:   4,
	KindElement:   5,
	KindType:      6,
}

// Node identifies a named construct.
type Node struct {
	Kind NodeKind   `json:"kind" yaml:"kind"`
	Name wsdl.QName `json:"name" yaml:"name"`
}

func (n Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Kind, n.Name)
}

// Less orders nodes by kind, then name.
func (n Node) Less(other Node) bool {
	if n.Kind != other.Kind {
		return kindOrder[n.Kind] < kindOrder[other.Kind]
	}
	return n.Name.Less(other.Name)
}

// Edge is a reference from one construct to another. The same edge may occur
// more than once.
type Edge struct {
	From Node `json:"from" yaml:"from"`
	To   Node `json:"to" yaml:"to"`
}

// Graph is the reference graph of a model. It is built once and only read.
type Graph struct {
	nodes map[Node]struct{}
	order []Node
	edges []Edge
}

// Build walks every named construct of model and records the references
// between them. Building is deterministic: nodes and edges follow model order.
func Build(model *wsdl.Model) *Graph {
	g := &Graph{nodes: make(map[Node]struct{})}

	for _, svc := range model.Services {
		from := g.addNode(KindService, svc.Name)
		for _, port := range svc.Ports {
			g.addEdge(from, Node{Kind: KindBinding, Name: port.Binding})
		}
	}

	for _, binding := range model.Bindings {
		from := g.addNode(KindBinding, binding.Name)
		g.addEdge(from, Node{Kind: KindPortType, Name: binding.Type})
		for _, op := range binding.Operations {
			// operations are paired by local name within the port type's namespace
			g.addEdge(from, Node{Kind: KindOperation, Name: wsdl.QName{Namespace: binding.Type.Namespace, Local: op.Name}})
		}
	}

	for _, pt := range model.PortTypes {
		from := g.addNode(KindPortType, pt.Name)
		for _, op := range pt.Operations {
			opNode := g.addNode(KindOperation, wsdl.QName{Namespace: pt.Name.Namespace, Local: op.Name})
			g.addEdge(from, opNode)
			g.addEdge(opNode, Node{Kind: KindMessage, Name: op.Input})
			g.addEdge(opNode, Node{Kind: KindMessage, Name: op.Output})
		}
	}

	for _, msg := range model.Messages {
		from := g.addNode(KindMessage, msg.Name)
		for _, part := range msg.Parts {
			switch {
			case part.Element != nil:
				g.addEdge(from, Node{Kind: KindElement, Name: *part.Element})
			case part.Type != nil:
				g.addEdge(from, Node{Kind: KindType, Name: *part.Type})
			}
		}
	}

	for _, elem := range model.Elements() {
		from := g.addNode(KindElement, elem.Name)
		g.walkElement(from, elem)
	}
	for _, ct := range model.ComplexTypes() {
		from := g.addNode(KindType, ct.Name)
		g.walkComplexType(from, ct)
	}
	for _, st := range model.SimpleTypes() {
		from := g.addNode(KindType, st.Name)
		g.walkSimpleType(from, st)
	}

	return g
}

func (g *Graph) addNode(kind NodeKind, name wsdl.QName) Node {
	n := Node{Kind: kind, Name: name}
	if _, ok := g.nodes[n]; !ok {
		g.nodes[n] = struct{}{}
		g.order = append(g.order, n)
	}
	return n
}

func (g *Graph) addEdge(from, to Node) {
	g.edges = append(g.edges, Edge{From: from, To: to})
}

func (g *Graph) walkElement(from Node, elem *wsdl.Element) {
	switch content := elem.Content.(type) {
	case wsdl.ElementBase:
		g.addEdge(from, Node{Kind: KindType, Name: content.Type})
	case wsdl.ElementComplex:
		g.walkComplexType(from, content.ComplexType)
	case wsdl.ElementRef:
		g.addEdge(from, Node{Kind: KindElement, Name: content.Ref})
	}
}

func (g *Graph) walkComplexType(from Node, ct *wsdl.ComplexType) {
	switch content := ct.Content.(type) {
	case wsdl.Sequence:
		g.walkSequence(from, &content)
	case wsdl.ComplexContent:
		g.addEdge(from, Node{Kind: KindType, Name: content.Base})
		if content.Sequence != nil {
			g.walkSequence(from, content.Sequence)
		}
	case wsdl.Empty:
	}
}

func (g *Graph) walkSequence(from Node, seq *wsdl.Sequence) {
	for _, elem := range seq.Elements {
		g.walkElement(from, elem)
	}
}

func (g *Graph) walkSimpleType(from Node, st *wsdl.SimpleType) {
	switch content := st.Content.(type) {
	case wsdl.Restriction:
		g.addEdge(from, Node{Kind: KindType, Name: content.Base})
	case wsdl.List:
		g.addEdge(from, Node{Kind: KindType, Name: content.ItemType})
	case wsdl.ListWrapped:
		g.walkSimpleType(from, content.SimpleType)
	}
}

// Nodes returns the node set in insertion order.
func (g *Graph) Nodes() []Node {
	return g.order
}

// Edges returns the edge multiset in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// Has reports whether n is a declared node.
func (g *Graph) Has(n Node) bool {
	_, ok := g.nodes[n]
	return ok
}

// MissingNodesError lists every reference target that is neither declared
// nor builtin.
type MissingNodesError struct {
	Nodes []Node
}

func (e *MissingNodesError) Error() string {
	names := make([]string, len(e.Nodes))
	for i, n := range e.Nodes {
		names[i] = n.String()
	}
	return fmt.Sprintf("graph verification failed: %d missing nodes: %s", len(e.Nodes), strings.Join(names, ", "))
}

// Verify checks that every edge ends at a declared node or at a builtin type.
// All missing nodes are collected before reporting. Cycles are legal.
func (g *Graph) Verify(builtins wsdl.BuiltinTypes) error {
	missing := make(map[Node]struct{})
	for _, edge := range g.edges {
		if g.Has(edge.To) {
			continue
		}
		if edge.To.Kind == KindType && builtins.Contains(edge.To.Name) {
			continue
		}
		if _, seen := missing[edge.To]; !seen {
			log.Debug().Str("from", edge.From.String()).Str("to", edge.To.String()).Msg("Unresolved reference")
		}
		missing[edge.To] = struct{}{}
	}
	if len(missing) == 0 {
		return nil
	}

	nodes := make([]Node, 0, len(missing))
	for n := range missing {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })
	return &MissingNodesError{Nodes: nodes}
}
