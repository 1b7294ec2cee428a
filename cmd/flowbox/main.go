/*
Command flowbox is an interactive shell for the layout engine.

It loads a component tree from a YAML file, lays it out and lets the user
inspect and modify the result:

	flowbox -tree testdata/panel.yaml
	flowbox > run
	flowbox > show
	flowbox > set b width 120
	flowbox > dot panel.dot

Quit with <ctrl>D or "quit".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/flowbox/core/dimen"
	"github.com/npillmayer/flowbox/core/percent"
	"github.com/npillmayer/flowbox/engine/frame/framedebug"
	"github.com/npillmayer/flowbox/engine/frame/layout"
	"github.com/npillmayer/flowbox/engine/frame/surface"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'flowbox.cli'
func tracer() tracing.Trace {
	return tracing.Select("flowbox.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.flowbox.cli":   "Info",
		"trace.flowbox.frame": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level of the engine [Debug|Info|Error]")
	treefile := flag.String("tree", "", "YAML tree file to load")
	maxcycles := flag.Int("maxcycles", 0, "Maximum number of calculation cycles per run")
	debug := flag.Bool("debug", false, "Check ownership of dimensions")
	flag.Parse()
	for _, key := range []string{"flowbox.frame", "flowbox.layout", "flowbox.layouts", "flowbox.surface"} {
		tracing.Select(key).SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	}
	pterm.Info.Println("Welcome to the flowbox layout shell")
	//
	// set up REPL
	repl, err := readline.New("flowbox > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	lconf := testconfig.Conf{"layout.debug": *debug}
	if *maxcycles > 0 {
		lconf["layout.maxcycles"] = *maxcycles
	}
	intp := &Intp{repl: repl, opts: []layout.Option{layout.WithConfiguration(lconf)}}
	if *treefile != "" {
		if err := intp.load(*treefile); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	opts    []layout.Option
	root    *surface.Node
	surface *surface.Surface
	manager *layout.Manager
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command is a parsed input line.
type Command struct {
	code int
	args []string
}

const (
	QUIT int = iota
	HELP
	LOAD
	RUN
	SHOW
	SET
	DESTROY
	DOT
	STATS
)

var commands = map[string]int{
	"quit":    QUIT,
	"help":    HELP,
	"load":    LOAD,
	"run":     RUN,
	"show":    SHOW,
	"set":     SET,
	"destroy": DESTROY,
	"dot":     DOT,
	"stats":   STATS,
}

func parseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	code, ok := commands[strings.ToLower(fields[0])]
	if !ok {
		return nil, fmt.Errorf("unknown command %q, try 'help'", fields[0])
	}
	tracer().Debugf("parse command = %v", fields)
	return &Command{code: code, args: fields[1:]}, nil
}

func (cmd *Command) arg(i int) string {
	if i < len(cmd.args) {
		return cmd.args[i]
	}
	return ""
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help()
		return false, nil
	case LOAD:
		if cmd.arg(0) == "" {
			return false, errors.New("usage: load <file>")
		}
		return false, intp.load(cmd.arg(0))
	}
	if intp.root == nil {
		return false, errors.New("no tree loaded")
	}
	switch cmd.code {
	case RUN:
		return false, intp.run(cmd.arg(0))
	case SHOW:
		return false, intp.show()
	case SET:
		return false, intp.set(cmd.arg(0), cmd.arg(1), cmd.arg(2))
	case DESTROY:
		n := intp.root.Find(cmd.arg(0))
		if n == nil {
			return false, fmt.Errorf("no node %q", cmd.arg(0))
		}
		n.Destroy()
		intp.manager.Forget(n.ID())
		return false, intp.run("")
	case DOT:
		return false, intp.dot(cmd.arg(0))
	case STATS:
		intp.stats()
	}
	return false, nil
}

func (intp *Intp) load(path string) (err error) {
	intp.root, intp.surface, err = surface.LoadFile(path)
	if err != nil {
		return err
	}
	intp.manager = layout.NewManager(intp.opts...)
	tracer().Infof("loaded tree %s", path)
	pterm.Printfln("tree '%s' loaded from %s", intp.root.ID(), path)
	return nil
}

// run lays out the subtree of the node with the given id, or the whole tree.
func (intp *Intp) run(id string) error {
	n := intp.root
	if id != "" {
		if n = intp.root.Find(id); n == nil {
			return fmt.Errorf("no node %q", id)
		}
	}
	intp.surface.ClearLog()
	if err := intp.manager.Request(n); err != nil {
		intp.unresolved(err)
		return err
	}
	st := intp.manager.LastContext().Stats()
	pterm.Success.Printfln("layout done in %d cycles, %d surface writes",
		st.Cycles, len(intp.surface.Writes()))
	return nil
}

func (intp *Intp) unresolved(err error) {
	for _, id := range unresolvedItems(intp.manager, err) {
		pterm.Warning.Printfln("layout of %s did not converge", id)
	}
}

// unresolvedItems lists the items a failed run could not lay out.
func unresolvedItems(m *layout.Manager, err error) []string {
	var cerr *layout.ConvergenceError
	if errors.As(err, &cerr) {
		return cerr.Unresolved
	}
	if ctx := m.LastContext(); ctx != nil {
		return ctx.Unresolved()
	}
	return nil
}

func (intp *Intp) show() error {
	data := pterm.TableData{{"ID", "X", "Y", "Width", "Height", "Content"}}
	intp.root.Walk(func(n *surface.Node) {
		if n.IsDestroyed() {
			return
		}
		box, ok := intp.manager.Geometry(n.ID())
		if !ok {
			data = append(data, []string{n.ID(), "-", "-", "-", "-", "-"})
			return
		}
		data = append(data, []string{n.ID(), box.X.String(), box.Y.String(),
			box.W.String(), box.H.String(),
			fmt.Sprintf("%v × %v", box.ContentW, box.ContentH)})
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// set changes the sizing of a node and requests a new layout for it.
func (intp *Intp) set(id, prop, value string) error {
	n := intp.root.Find(id)
	if n == nil {
		return fmt.Errorf("no node %q", id)
	}
	sz := n.Sizing()
	prop = strings.ToLower(prop)
	switch prop {
	case "flex":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		sz.Flex = f
	case "width", "height":
		d, pcnt, err := dimen.ParseDimen(value)
		if err != nil {
			return err
		}
		v, p := dimen.Some(d), (*percent.Percent)(nil)
		if pcnt {
			pc := percent.FromInt(int(d))
			v, p = dimen.None(), &pc
		}
		if prop == "width" {
			sz.Width, sz.PercentW = v, p
		} else {
			sz.Height, sz.PercentH = v, p
		}
	default:
		return fmt.Errorf("cannot set %q, use width, height or flex", prop)
	}
	n.SetSizing(sz)
	target := n
	if owner := n.OwnerCt(); owner != nil {
		target = owner.(*surface.Node)
	}
	return intp.run(target.ID())
}

func (intp *Intp) dot(path string) error {
	ctx := intp.manager.LastContext()
	if ctx == nil {
		return errors.New("no layout run yet")
	}
	if path == "" {
		return framedebug.ToGraphViz(ctx, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err = framedebug.ToGraphViz(ctx, f); err == nil {
		pterm.Printfln("item graph written to %s", path)
	}
	return err
}

func (intp *Intp) stats() {
	total, failed := intp.manager.Runs()
	pterm.Printfln("%d runs, %d failed, %d requests pending, %d nodes placed",
		total, failed, intp.manager.Pending(), intp.manager.Known())
	ctx := intp.manager.LastContext()
	if ctx == nil {
		return
	}
	st := ctx.Stats()
	pterm.Printfln("last run: %d cycles, %d flushes, %d calculations, %d layouts",
		st.Cycles, st.Flushes, st.Calculations, st.Layouts)
	for _, ls := range ctx.LayoutStates() {
		pterm.Printfln("  %-24s done=%-5v calcs=%d blocks=%d triggers=%d",
			ls.ID, ls.Done, ls.Calcs, ls.Blocks, ls.Triggers)
	}
}

func help() {
	pterm.Info.Println("Commands")
	pterm.Println(`
	load <file>               load a YAML tree
	run [id]                  lay out the tree, or the subtree of a node
	show                      list the geometry of every node
	set <id> <prop> <value>   change width, height or flex of a node and relayout
	destroy <id>              destroy a node and relayout
	dot [file]                write the item graph of the last run in DOT format
	stats                     print counters of the last run
	quit                      leave the shell
	`)
}
