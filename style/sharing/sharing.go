/*
Package sharing implements the style-sharing cache.

Sibling elements frequently carry identical styles: think of the items
of a long list. After selector matching, the cascade and computed-value
derivation for such an element would reproduce, bit for bit, the style
of an earlier sibling. The sharing cache lets the resolver detect this
and hand out the earlier sibling's ComputedValues allocation instead.

Sharing is keyed by a fingerprint of everything the derivation depends
on: element identity traits, the exact set of matched rules, and the
parent's computed style (by pointer). An element is only eligible when
nothing outside the fingerprint could influence its style, so the cache
can be wrong only by missing, never by serving a wrong style.

Two replacement strategies are provided: a small LRU list and a fixed
hash table with overwrite-on-collision.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sharing

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"

	"github.com/npillmayer/casc/dom"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'casc.style'.
func tracer() tracing.Trace {
	return tracing.Select("casc.style")
}

// Fingerprint captures everything a computed style depends on, apart
// from the device context. Two elements with equal fingerprints within
// one styling pass derive pointer-identical styles.
type Fingerprint struct {
	LocalName string
	Namespace string
	ID        string
	Classes   string // sorted and space-joined
	State     dom.ElementState
	Rules     uint64 // digest of the matched rule set
	Parent    *style.ComputedValues
}

// Eligible tells if an element may participate in style sharing.
// Elements with inline style are excluded, as are elements matched by
// any rule whose selector list uses structural pseudo-classes: their
// style depends on sibling positions the fingerprint does not see.
func Eligible[E dom.Element[E]](e E, matched []cascade.MatchedRule) bool {
	if e.HasInlineStyle() {
		return false
	}
	for _, m := range matched {
		if m.Rule.Selectors == nil {
			return false
		}
		if m.Rule.Selectors.UsesNth() {
			return false
		}
		for _, s := range m.Rule.Selectors.Selectors {
			if s.PseudoElement != "" {
				return false
			}
		}
	}
	return true
}

// NewFingerprint computes the sharing fingerprint of an element from
// its identity traits, its matched rules and its parent's computed
// style.
func NewFingerprint[E dom.Element[E]](e E, matched []cascade.MatchedRule,
	parent *style.ComputedValues) Fingerprint {
	//
	classes := append([]string(nil), e.Classes()...)
	sort.Strings(classes)
	h := fnv.New64a()
	var buf [8]byte
	for _, m := range matched {
		var listID uint32
		if m.Rule.Selectors != nil {
			listID = uint32(m.Rule.Selectors.ID())
		}
		binary.LittleEndian.PutUint32(buf[:4], listID)
		binary.LittleEndian.PutUint32(buf[4:], uint32(m.Rule.Source))
		h.Write(buf[:])
		binary.LittleEndian.PutUint32(buf[:4], uint32(m.Rule.Layer))
		buf[4] = byte(m.Rule.Origin)
		h.Write(buf[:5])
		for _, n := range m.Spec {
			binary.LittleEndian.PutUint64(buf[:], uint64(n))
			h.Write(buf[:])
		}
	}
	return Fingerprint{
		LocalName: e.LocalName(),
		Namespace: e.Namespace(),
		ID:        e.ID(),
		Classes:   strings.Join(classes, " "),
		State:     e.State(),
		Rules:     h.Sum64(),
		Parent:    parent,
	}
}

func (fp Fingerprint) hash() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%d|%d|%p",
		fp.LocalName, fp.Namespace, fp.ID, fp.Classes, fp.State, fp.Rules, fp.Parent)
	return h.Sum64()
}

// Cache is a style-sharing cache. Implementations are not safe for
// concurrent use; the styling engine holds one cache per worker.
type Cache interface {
	// Find returns the cached style for a fingerprint, if present.
	Find(key Fingerprint) (*style.ComputedValues, bool)
	// Insert stores a style under a fingerprint, possibly evicting an
	// older entry.
	Insert(key Fingerprint, v *style.ComputedValues)
}

// FindOrCreate looks up a fingerprint and, on a miss, derives the style
// via create and inserts it. A hit never re-inserts.
func FindOrCreate(c Cache, key Fingerprint, create func() *style.ComputedValues) *style.ComputedValues {
	if v, ok := c.Find(key); ok {
		tracer().Debugf("style sharing hit for <%s>", key.LocalName)
		return v
	}
	v := create()
	c.Insert(key, v)
	return v
}

// --- LRU list --------------------------------------------------------------

type lruEntry struct {
	key   Fingerprint
	value *style.ComputedValues
}

// LRU is a sharing cache with least-recently-used replacement. The
// entry list is kept in use-order: index 0 is the oldest entry and the
// eviction victim, the last index the most recently touched one.
type LRU struct {
	entries  []lruEntry
	capacity int
}

// NewLRU creates an LRU sharing cache holding at most capacity entries.
func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{capacity: capacity}
}

// Find is part of interface Cache. A hit promotes the entry to
// most-recently-used position.
func (c *LRU) Find(key Fingerprint) (*style.ComputedValues, bool) {
	for i := range c.entries {
		if c.entries[i].key == key {
			e := c.entries[i]
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.entries = append(c.entries, e)
			return e.value, true
		}
	}
	return nil, false
}

// Insert is part of interface Cache. Inserting an existing key
// refreshes its entry instead of duplicating it.
func (c *LRU) Insert(key Fingerprint, v *style.ComputedValues) {
	for i := range c.entries {
		if c.entries[i].key == key {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.entries = append(c.entries, lruEntry{key: key, value: v})
			return
		}
	}
	if len(c.entries) >= c.capacity {
		c.entries = c.entries[1:]
	}
	c.entries = append(c.entries, lruEntry{key: key, value: v})
}

// Len returns the number of cached entries.
func (c *LRU) Len() int {
	return len(c.entries)
}

// --- Fixed hash table ------------------------------------------------------

type tableEntry struct {
	key   Fingerprint
	value *style.ComputedValues
	used  bool
}

// FixedTable is a sharing cache backed by a fixed-size hash table. A
// colliding insert overwrites the previous slot occupant. Lookups are
// O(1) but the cache may forget entries earlier than an LRU would.
type FixedTable struct {
	slots []tableEntry
}

// NewFixedTable creates a hash table sharing cache with the given
// number of slots.
func NewFixedTable(capacity int) *FixedTable {
	if capacity < 1 {
		capacity = 1
	}
	return &FixedTable{slots: make([]tableEntry, capacity)}
}

// Find is part of interface Cache.
func (c *FixedTable) Find(key Fingerprint) (*style.ComputedValues, bool) {
	slot := &c.slots[key.hash()%uint64(len(c.slots))]
	if slot.used && slot.key == key {
		return slot.value, true
	}
	return nil, false
}

// Insert is part of interface Cache.
func (c *FixedTable) Insert(key Fingerprint, v *style.ComputedValues) {
	slot := &c.slots[key.hash()%uint64(len(c.slots))]
	*slot = tableEntry{key: key, value: v, used: true}
}

var _ Cache = &LRU{}
var _ Cache = &FixedTable{}
