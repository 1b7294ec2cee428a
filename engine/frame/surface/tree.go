package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/flowbox/core"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/core/percent"
	"github.com/npillmayer/flowbox/engine/frame"
	"github.com/npillmayer/flowbox/engine/frame/layouts"
	"gopkg.in/yaml.v3"
)

// NodeSpec is the description of a node in a YAML tree file.
// Dimensions are given in pixels ("100", "100px") or, for width and
// height, as percentages ("50%").
type NodeSpec struct {
	ID        string            `yaml:"id"`
	Width     string            `yaml:"width,omitempty"`
	Height    string            `yaml:"height,omitempty"`
	X         string            `yaml:"x,omitempty"`
	Y         string            `yaml:"y,omitempty"`
	MinWidth  string            `yaml:"minWidth,omitempty"`
	MaxWidth  string            `yaml:"maxWidth,omitempty"`
	MinHeight string            `yaml:"minHeight,omitempty"`
	MaxHeight string            `yaml:"maxHeight,omitempty"`
	Flex      float64           `yaml:"flex,omitempty"`
	Layout    string            `yaml:"layout,omitempty"` // hbox, vbox or fit
	Pack      string            `yaml:"pack,omitempty"`
	Align     string            `yaml:"align,omitempty"`
	Style     map[string]string `yaml:"style,omitempty"`
	Classes   []string          `yaml:"classes,omitempty"`
	Text      string            `yaml:"text,omitempty"`
	Body      bool              `yaml:"body,omitempty"` // element has a frame body
	Children  []NodeSpec        `yaml:"children,omitempty"`
}

// LoadFile reads a YAML tree file and builds the tree on a new surface.
func LoadFile(path string) (*Node, *Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, core.WrapError(err, core.EMISSING, "cannot open tree file %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML tree description and builds the tree on a new surface.
func Load(r io.Reader) (*Node, *Surface, error) {
	var spec NodeSpec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return nil, nil, core.WrapError(err, core.EINVALID, "cannot decode tree")
	}
	s := New()
	root, err := Build(spec, s)
	if err != nil {
		return nil, nil, err
	}
	return root, s, nil
}

// Build creates the nodes and elements for a tree description on surface s.
func Build(spec NodeSpec, s *Surface) (*Node, error) {
	seen := make(map[string]bool)
	return build(spec, s, seen)
}

func build(spec NodeSpec, s *Surface, seen map[string]bool) (*Node, error) {
	if spec.ID == "" {
		return nil, core.Error(core.EINVALID, "node without id")
	}
	if seen[spec.ID] {
		return nil, core.Error(core.EINVALID, "duplicate node id %q", spec.ID)
	}
	seen[spec.ID] = true
	el := s.NewElement(spec.ID)
	el.Text = spec.Text
	for k, v := range spec.Style {
		el.SetStyle(k, v)
	}
	if len(spec.Classes) > 0 {
		el.Apply(frame.Patch{AddCls: spec.Classes})
	}
	if spec.Body {
		el.AddBody()
	}
	n := NewNode(spec.ID, el)
	sizing, err := spec.sizing()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "node %q", spec.ID)
	}
	n.SetSizing(sizing)
	for _, kspec := range spec.Children {
		kid, err := build(kspec, s, seen)
		if err != nil {
			return nil, err
		}
		n.Add(kid)
	}
	if err := spec.containerLayout(n); err != nil {
		return nil, err
	}
	tracer().Debugf("built node %s with %d children", n.ID(), len(n.kids))
	return n, nil
}

func (spec NodeSpec) containerLayout(n *Node) error {
	kind := strings.ToLower(spec.Layout)
	if kind == "" {
		if len(spec.Children) == 0 {
			return nil
		}
		kind = "vbox"
	}
	switch kind {
	case "hbox", "vbox":
		stack := layouts.NewVBox(n)
		if kind == "hbox" {
			stack = layouts.NewHBox(n)
		}
		var err error
		if spec.Pack != "" {
			if stack.Pack, err = layouts.ParsePack(spec.Pack); err != nil {
				return err
			}
		}
		if spec.Align != "" {
			if stack.Align, err = layouts.ParseAlign(spec.Align); err != nil {
				return err
			}
		}
		n.SetContainerLayout(stack)
	case "fit":
		n.SetContainerLayout(layouts.NewFit(n))
	default:
		return core.Error(core.EINVALID, "node %q: unknown layout %q", spec.ID, spec.Layout)
	}
	return nil
}

func (spec NodeSpec) sizing() (frame.Sizing, error) {
	var sz frame.Sizing
	var err error
	if sz.Width, sz.PercentW, err = parseExtent(spec.Width); err != nil {
		return sz, err
	}
	if sz.Height, sz.PercentH, err = parseExtent(spec.Height); err != nil {
		return sz, err
	}
	for _, f := range []struct {
		s string
		d *dimen.DimenT
	}{{spec.X, &sz.X}, {spec.Y, &sz.Y}} {
		if *f.d, err = parseDimen(f.s); err != nil {
			return sz, err
		}
	}
	for _, f := range []struct {
		s string
		d *dimen.Dimen
	}{{spec.MinWidth, &sz.MinW}, {spec.MaxWidth, &sz.MaxW}, {spec.MinHeight, &sz.MinH}, {spec.MaxHeight, &sz.MaxH}} {
		v, err := parseDimen(f.s)
		if err != nil {
			return sz, err
		}
		*f.d = v.UnwrapOr(0)
	}
	sz.Flex = spec.Flex
	return sz, nil
}

func parseExtent(s string) (dimen.DimenT, *percent.Percent, error) {
	if s == "" {
		return dimen.None(), nil, nil
	}
	d, pcnt, err := dimen.ParseDimen(s)
	if err != nil {
		return dimen.None(), nil, fmt.Errorf("extent %q: %w", s, err)
	}
	if pcnt {
		p := percent.FromInt(int(d))
		return dimen.None(), &p, nil
	}
	return dimen.Some(d), nil, nil
}

func parseDimen(s string) (dimen.DimenT, error) {
	if s == "" {
		return dimen.None(), nil
	}
	d, pcnt, err := dimen.ParseDimen(s)
	if err != nil {
		return dimen.None(), fmt.Errorf("dimension %q: %w", s, err)
	}
	if pcnt {
		return dimen.None(), fmt.Errorf("dimension %q: percentage not allowed", s)
	}
	return dimen.Some(d), nil
}
