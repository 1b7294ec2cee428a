package layout

import (
	"sync"

	"github.com/npillmayer/flowbox/engine/frame"
)

// geometryMap holds the committed geometry of components between runs.
type geometryMap struct {
	sync.RWMutex
	m map[string]frame.Box
}

func newGeometryMap() *geometryMap {
	return &geometryMap{
		m: make(map[string]frame.Box),
	}
}

func (gm *geometryMap) Put(id string, box frame.Box) {
	gm.Lock()
	defer gm.Unlock()
	gm.m[id] = box
}

func (gm *geometryMap) Get(id string) (frame.Box, bool) {
	gm.RLock()
	defer gm.RUnlock()
	box, ok := gm.m[id]
	return box, ok
}

func (gm *geometryMap) Remove(id string) {
	gm.Lock()
	defer gm.Unlock()
	delete(gm.m, id)
}

func (gm *geometryMap) Len() int {
	gm.RLock()
	defer gm.RUnlock()
	return len(gm.m)
}
