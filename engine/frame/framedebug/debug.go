/*
Package framedebug draws the item tree of a layout run as a GraphViz graph.

Every item is drawn as a box labelled with its ID, its size models and the
geometry known at the time of drawing. The layouts of an item are listed
below, each with its state: a check mark for layouts which are done, a cross
for layouts which did not converge.

Items which are plain elements, e.g. frame bodies, are drawn with a dashed
border and linked to the item owning them.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package framedebug

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/npillmayer/flowbox/engine/frame/layout"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'flowbox.frame'.
func tracer() tracing.Trace {
	return tracing.Select("flowbox.frame")
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	BoxTmpl  *template.Template
	EdgeTmpl *template.Template
	states   map[string][]layout.LayoutState
	names    map[*layout.Item]string
}

// ToGraphViz creates a graphical representation of the items of a layout
// context. It produces a DOT file format suitable as input for Graphviz,
// given a Writer.
func ToGraphViz(ctx *layout.Context, w io.Writer) error {
	header, err := template.New("itemTree").Parse(graphHeadTmpl)
	if err != nil {
		return err
	}
	gparams := graphParamsType{
		Fontname: "Helvetica",
		states:   make(map[string][]layout.LayoutState),
		names:    make(map[*layout.Item]string),
	}
	gparams.BoxTmpl = template.Must(template.New("box").Funcs(
		template.FuncMap{
			"label": gparams.label,
		}).Parse(boxTmpl))
	gparams.EdgeTmpl = template.Must(template.New("edge").Parse(edgeTmpl))
	for _, st := range ctx.LayoutStates() {
		gparams.states[st.ItemID] = append(gparams.states[st.ItemID], st)
	}
	if err = header.Execute(w, gparams); err != nil {
		return err
	}
	items := ctx.Items()
	for _, item := range items {
		if err = gparams.box(item, w); err != nil {
			return err
		}
	}
	for _, item := range items {
		for _, child := range item.Children() {
			if err = gparams.edge(item, child, false, w); err != nil {
				return err
			}
		}
		if body := bodyOwner(item, items); body != nil {
			if err = gparams.edge(body, item, true, w); err != nil {
				return err
			}
		}
	}
	tracer().Debugf("drew %d items", len(items))
	_, err = w.Write([]byte("}\n"))
	return err
}

// Helper structs
type ibox struct {
	I     *layout.Item
	Name  string
	Plain bool
}

type iedge struct {
	N1, N2 string
	Body   bool
}

func (gparams *graphParamsType) name(item *layout.Item) string {
	name := gparams.names[item]
	if name == "" {
		name = fmt.Sprintf("node%05d", len(gparams.names)+1)
		gparams.names[item] = name
	}
	return name
}

func (gparams *graphParamsType) box(item *layout.Item, w io.Writer) error {
	b := &ibox{I: item, Name: gparams.name(item), Plain: item.Component() == nil}
	return gparams.BoxTmpl.Execute(w, b)
}

func (gparams *graphParamsType) edge(i1, i2 *layout.Item, body bool, w io.Writer) error {
	e := iedge{N1: gparams.name(i1), N2: gparams.name(i2), Body: body}
	return gparams.EdgeTmpl.Execute(w, e)
}

// bodyOwner finds the item whose element has item's element as frame body.
func bodyOwner(item *layout.Item, items []*layout.Item) *layout.Item {
	if item.Component() != nil || item.Element() == nil {
		return nil
	}
	for _, owner := range items {
		if owner == item || owner.Element() == nil {
			continue
		}
		if b := owner.Element().FrameBody(); b != nil && b.ID() == item.ID() {
			return owner
		}
	}
	return nil
}

// ---------------------------------------------------------------------------

func (gparams *graphParamsType) label(item *layout.Item) string {
	var sb strings.Builder
	sb.WriteString(item.ID())
	if item.Component() != nil {
		m := item.SizeModels()
		fmt.Fprintf(&sb, "\\n%s × %s", m.Width, m.Height)
	}
	box := item.Box()
	fmt.Fprintf(&sb, "\\n(%v, %v) %v × %v", box.X, box.Y, box.W, box.H)
	for _, st := range gparams.states[item.ID()] {
		mark := "✓"
		if !st.Done {
			mark = "✗"
		}
		fmt.Fprintf(&sb, "\\l%s %s [%d]", mark, st.ID, st.Calcs)
	}
	return "\"" + strings.ReplaceAll(sb.String(), "\"", "'") + "\\l\""
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label="" splines=true overlap=false rankdir = "TB"];
  graph [fontname = "{{ .Fontname }}" fontsize=12] ;
   node [fontname = "{{ .Fontname }}" fontsize=12] ;
   edge [fontname = "{{ .Fontname }}" fontsize=12] ;
`

const boxTmpl = `{{ if .Plain }}
{{ .Name }}	[ label={{ label .I }} shape=box style=dashed fontname="Courier" fontsize=11.0 ] ;
{{ else }}
{{ .Name }}	[ label={{ label .I }} shape=box style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const edgeTmpl = `{{ .N1 }} -> {{ .N2 }} [weight=1{{ if .Body }} style=dashed{{ end }}] ;
`
