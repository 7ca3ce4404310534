package taglang

import (
	"maps"
	"slices"
)

// Getter is the read side of a namespace.
type Getter interface {
	Get(name string) (Entry, bool)
}

// Namespace maps names to typed entries. While a local scope is active,
// lookups and writes go to an overlay first; a nil overlay value hides the
// entry below it. Overlays of enclosing files stay readable while a nested
// file runs, and the nested file may open its own.
type Namespace struct {
	base  map[string]Entry
	outer []map[string]Entry
	local map[string]Entry
}

var _ Getter = new(Namespace)

func NewNamespace() *Namespace {
	return &Namespace{
		base: make(map[string]Entry),
	}
}

// overlays returns the active overlays, innermost first.
func (n *Namespace) overlays() []map[string]Entry {
	ret := make([]map[string]Entry, 0, len(n.outer)+1)
	if n.local != nil {
		ret = append(ret, n.local)
	}
	for i := len(n.outer) - 1; i >= 0; i-- {
		ret = append(ret, n.outer[i])
	}
	return ret
}

// innermost is the map writes go to.
func (n *Namespace) innermost() (map[string]Entry, bool) {
	if n.local != nil {
		return n.local, true
	}
	if len(n.outer) > 0 {
		return n.outer[len(n.outer)-1], true
	}
	return n.base, false
}

func (n *Namespace) Get(name string) (Entry, bool) {
	for _, overlay := range n.overlays() {
		if entry, ok := overlay[name]; ok {
			return entry, entry != nil
		}
	}
	entry, ok := n.base[name]
	return entry, ok
}

func (n *Namespace) Set(name string, entry Entry, loc Location) error {
	if entry == nil {
		return newError(KindInternal, loc, "no value given for '%s'", name)
	}

	if existing, ok := n.Get(name); ok && existing.Kind() != entry.Kind() {
		return newError(KindTypeConflict, loc,
			"attempt to overwrite value of type '%s' with new value of type '%s': %s",
			existing.Kind(), entry.Kind(), name)
	}

	switch entry.Kind() {
	case EntryTag:
		if !ValidTagName(name) {
			return newError(KindInvalidIdentifier, loc, "invalid tag format: %s", name)
		}
	case EntryVariable:
		if !ValidIdentifier(name) {
			return newError(KindInvalidIdentifier, loc, "invalid variable format: %s", name)
		}
	}

	target, _ := n.innermost()
	target[name] = entry
	return nil
}

func (n *Namespace) Unset(name string) {
	target, isOverlay := n.innermost()
	if !isOverlay {
		delete(n.base, name)
		return
	}
	if _, ok := n.Get(name); ok {
		target[name] = nil
	}
}

// EnterScope activates the overlay. It reports false when one is already
// active, in which case the existing overlay is reused.
func (n *Namespace) EnterScope() bool {
	if n.local != nil {
		return false
	}
	n.local = make(map[string]Entry)
	return true
}

func (n *Namespace) ExitScope() {
	n.local = nil
}

func (n *Namespace) InScope() bool {
	return n.local != nil
}

// Nest prepares for running a nested file: the active overlay, if any,
// becomes an enclosing one so the nested file gets its own scope. restore
// undoes it and discards whatever scope the nested file left open.
func (n *Namespace) Nest() (restore func()) {
	saved := n.local
	if saved != nil {
		n.outer = append(n.outer, saved)
	}
	n.local = nil
	return func() {
		if saved != nil {
			n.outer = n.outer[:len(n.outer)-1]
		}
		n.local = saved
	}
}

func (n *Namespace) Names() []string {
	var ret []string
	for name := range n.Snapshot() {
		ret = append(ret, name)
	}
	slices.Sort(ret)
	return ret
}

// Snapshot is a flattened, detached copy of the visible entries.
type Snapshot map[string]Entry

var _ Getter = Snapshot{}

func (s Snapshot) Get(name string) (Entry, bool) {
	entry, ok := s[name]
	return entry, ok
}

func (n *Namespace) Snapshot() Snapshot {
	ret := maps.Clone(n.base)
	if ret == nil {
		ret = make(Snapshot)
	}
	overlays := n.overlays()
	for i := len(overlays) - 1; i >= 0; i-- {
		for name, entry := range overlays[i] {
			if entry == nil {
				delete(ret, name)
			} else {
				ret[name] = entry
			}
		}
	}
	return ret
}
