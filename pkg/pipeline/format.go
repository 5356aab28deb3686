package pipeline

import (
	"fmt"
	"strings"

	"github.com/pyneda/wsdlgen/lib"
	"github.com/pyneda/wsdlgen/pkg/typemap"
)

// Row is one generated type or method, for table and text listings.
type Row struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name" yaml:"name"`
	Detail string `json:"detail" yaml:"detail"`
}

func (r Row) String() string {
	return fmt.Sprintf("%s %s %s", r.Kind, r.Name, r.Detail)
}

var kindColors = map[string]string{
	string(typemap.KindStruct): lib.Green,
	string(typemap.KindAlias):  lib.Cyan,
	string(typemap.KindList):   lib.Purple,
	string(typemap.KindEnum):   lib.Yellow,
	"client":                   lib.Blue,
	"method":                   lib.Blue,
}

func (r Row) Pretty() string {
	return fmt.Sprintf("%s %s %s", lib.Colorize(fmt.Sprintf("%-8s", r.Kind), kindColors[r.Kind]), r.Name, r.Detail)
}

func (r Row) TableHeaders() []string {
	return []string{"Kind", "Name", "Detail"}
}

func (r Row) TableRow() []string {
	return []string{r.Kind, r.Name, r.Detail}
}

// Rows lists every type, then every client method.
func (o *Output) Rows() []Row {
	rows := make([]Row, 0, len(o.Types))
	for _, d := range o.Types {
		rows = append(rows, Row{Kind: string(d.DescriptorKind()), Name: d.DescriptorName(), Detail: describe(d)})
	}
	for _, c := range o.Clients {
		rows = append(rows, Row{Kind: "client", Name: c.Name, Detail: c.Port.Location})
		for _, m := range c.Methods {
			rows = append(rows, Row{
				Kind:   "method",
				Name:   c.Name + "." + m.Name,
				Detail: fmt.Sprintf("(%s) %s", m.InputType, m.OutputType),
			})
		}
	}
	return rows
}

func describe(d typemap.Descriptor) string {
	switch d := d.(type) {
	case *typemap.StructDescriptor:
		fields := make([]string, 0, len(d.Properties))
		for _, p := range d.Properties {
			fields = append(fields, p.Name+" "+p.Type.String())
		}
		detail := "{" + strings.Join(fields, ", ") + "}"
		if d.Base != nil {
			detail = d.Base.String() + " " + detail
		}
		return detail
	case *typemap.AliasDescriptor:
		return "= " + d.Target.String()
	case *typemap.ListDescriptor:
		return "list of " + d.Element.String()
	case *typemap.EnumDescriptor:
		values := make([]string, 0, len(d.Cases))
		for _, c := range d.Cases {
			values = append(values, fmt.Sprintf("%s=%q", c.Name, c.RawValue))
		}
		return d.Raw.String() + " [" + strings.Join(values, " ") + "]"
	}
	return ""
}

func (o *Output) String() string {
	rows := o.Rows()
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}

func (o *Output) Pretty() string {
	rows := o.Rows()
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, r.Pretty())
	}
	return strings.Join(lines, "\n")
}

func (o *Output) TableHeaders() []string {
	return []string{"Types", "Clients", "Documents", "Warnings"}
}

func (o *Output) TableRow() []string {
	return []string{
		fmt.Sprintf("%d", len(o.Types)),
		fmt.Sprintf("%d", len(o.Clients)),
		fmt.Sprintf("%d", len(o.Locations)),
		fmt.Sprintf("%d", len(o.Warnings)),
	}
}

func (v *Verification) String() string {
	return fmt.Sprintf("Documents: %d, Nodes: %d, Edges: %d, Services: %d, Warnings: %d",
		len(v.Locations), v.Nodes, v.Edges, v.Services, len(v.Warnings))
}

func (v *Verification) Pretty() string {
	return fmt.Sprintf(
		"%sDocuments:%s %s\n%sNodes:%s %d\n%sEdges:%s %d\n%sServices:%s %d\n%sWarnings:%s %d\n",
		lib.Blue, lib.ResetColor, strings.Join(v.Locations, ", "),
		lib.Blue, lib.ResetColor, v.Nodes,
		lib.Blue, lib.ResetColor, v.Edges,
		lib.Blue, lib.ResetColor, v.Services,
		lib.Blue, lib.ResetColor, len(v.Warnings),
	)
}

func (v *Verification) TableHeaders() []string {
	return []string{"Documents", "Nodes", "Edges", "Services", "Warnings"}
}

func (v *Verification) TableRow() []string {
	return []string{
		fmt.Sprintf("%d", len(v.Locations)),
		fmt.Sprintf("%d", v.Nodes),
		fmt.Sprintf("%d", v.Edges),
		fmt.Sprintf("%d", v.Services),
		fmt.Sprintf("%d", len(v.Warnings)),
	}
}
