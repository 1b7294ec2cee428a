package layout

import (
	"sync"

	"github.com/npillmayer/flowbox/engine/frame"
)

// Manager coordinates layout runs for a long-lived component tree.
//
// Layout requests may be batched: between Suspend and the matching Resume,
// requests are only queued. Resuming starts a single run covering all of
// them. Only one run is active at any time.
//
// The manager keeps the geometry committed by successful runs, so
// application code may query it between runs.
type Manager struct {
	mutex     sync.Mutex // serializes runs
	qmx       sync.Mutex // guards suspended
	opts      []Option
	suspended int
	requests  *requestQueue
	geometry  *geometryMap
	runs      int
	failed    int
	last      *Context
}

// NewManager creates a layout manager. Options are passed on to every
// context created by the manager.
func NewManager(opts ...Option) *Manager {
	return &Manager{
		opts:     opts,
		requests: newRequestQueue(),
		geometry: newGeometryMap(),
	}
}

// Suspend stops layout requests from starting runs until the matching call
// to Resume. Calls may be nested.
func (m *Manager) Suspend() {
	m.qmx.Lock()
	defer m.qmx.Unlock()
	m.suspended++
}

// Resume ends a Suspend. If this ends the outermost suspension and
// requests have been queued, a run is started.
func (m *Manager) Resume() error {
	m.qmx.Lock()
	if m.suspended > 0 {
		m.suspended--
	}
	suspended := m.suspended > 0
	m.qmx.Unlock()
	if suspended {
		return nil
	}
	return m.flushRequests()
}

// Request asks for a layout of component c. If layouts are suspended, the
// request is queued, otherwise a run is started immediately.
func (m *Manager) Request(c Component) error {
	if c == nil {
		return nil
	}
	m.requests.PushRequest(c)
	m.qmx.Lock()
	suspended := m.suspended > 0
	m.qmx.Unlock()
	if suspended {
		tracer().Debugf("layouts suspended, request for [%s] queued", c.ID())
		return nil
	}
	return m.flushRequests()
}

// flushRequests runs a layout for all queued requests.
func (m *Manager) flushRequests() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	var roots []Component
	for c := m.requests.PopRequest(); c != nil; c = m.requests.PopRequest() {
		if !c.IsDestroyed() {
			roots = append(roots, c)
		}
	}
	if len(roots) == 0 {
		return nil
	}
	ctx := NewContext(m.opts...)
	for _, c := range roots {
		ctx.Invalidate(c, nil)
	}
	m.runs++
	m.last = ctx
	err := ctx.Run()
	if ctx.state == stateFailed {
		m.failed++
		tracer().Errorf("layout run #%d failed: %v", m.runs, err)
		return err
	}
	for _, item := range ctx.Items() {
		if item.cmp == nil {
			continue
		}
		if box, ok := ctx.boxes[item.id]; ok {
			m.geometry.Put(item.id, box)
		}
	}
	return err
}

// Geometry returns the geometry committed for a component by the latest
// successful run including it.
func (m *Manager) Geometry(id string) (frame.Box, bool) {
	return m.geometry.Get(id)
}

// Forget removes the committed geometry of a component, e.g. after it has
// been destroyed.
func (m *Manager) Forget(id string) {
	m.geometry.Remove(id)
}

// Pending returns the number of layout requests queued while suspended.
func (m *Manager) Pending() int {
	return m.requests.Pending()
}

// Known returns the number of components with committed geometry.
func (m *Manager) Known() int {
	return m.geometry.Len()
}

// Runs returns the number of runs started and the number of failed runs.
func (m *Manager) Runs() (total, failed int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.runs, m.failed
}

// LastContext returns the context of the latest run, for diagnostics.
func (m *Manager) LastContext() *Context {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.last
}

// Geometry returns the geometry committed for a component by its latest
// successful layout run.
func Geometry(c Component) (frame.Box, bool) {
	return c.LastBox()
}
