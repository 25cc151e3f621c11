/*
Package styler computes styles for whole documents.

The styling engine walks a document tree top-down and resolves, for
every element, the CSS cascade over a compiled ruleset, deriving an
immutable ComputedValues record per element. Subtrees are independent
of each other once their root is styled, so the walk distributes work
packages over a pool of concurrent worker goroutines.

Workers read work packages from a shared channel. A package carries one
element together with its parent's computed style; a worker matches,
cascades and derives the element's style, records the result, and only
then emits packages for the element's children. This makes the one
ordering guarantee of the engine structural: no element is ever styled
before its parent, without any per-node locking.

An overall counter tracks the number of work packages in flight. As
soon as the counter drops to zero, a watchdog goroutine closes the work
channel and the workers terminate.

Each worker owns a private style-sharing cache and nth-index cache, so
the hot matching path never contends on shared state. Results are keyed
by the opaque node identity and carry the epoch of the ruleset they
were computed against; a later pass reuses results whose epoch is still
current and which have not been marked as damaged.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styler

import (
	"runtime"
	"sync"

	"github.com/npillmayer/casc/dom"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/damage"
	"github.com/npillmayer/casc/style/selector"
	"github.com/npillmayer/casc/style/sharing"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'casc.styler'.
func tracer() tracing.Trace {
	return tracing.Select("casc.styler")
}

// SharingStrategy selects the replacement policy of the per-worker
// style-sharing caches.
type SharingStrategy uint8

const (
	SharingLRU SharingStrategy = iota
	SharingTable
	SharingOff
)

// Maximum number of entries a per-worker sharing cache will hold if the
// client does not configure a capacity.
const defaultSharingCapacity = 31

// Config collects the knobs of a styling engine. The zero value is
// usable: worker count derived from available parallelism, LRU sharing
// caches, no inline style parsing.
type Config struct {
	// Workers is the number of concurrent styling workers. Zero means
	// one worker per CPU.
	Workers int
	// SharingCapacity is the entry count of each worker's sharing
	// cache.
	SharingCapacity int
	// Sharing selects the sharing cache replacement policy.
	Sharing SharingStrategy
	// Context carries the device parameters for computed-value
	// derivation (viewport size, root font size).
	Context style.Context
	// InlineParser parses the contents of a style attribute into
	// declarations. When nil, inline styles are ignored.
	InlineParser func(string) ([]cascade.Declaration, error)
}

// Result is the outcome of styling one element.
type Result struct {
	Style  *style.ComputedValues
	Damage damage.RestyleDamage
	Epoch  uint32
}

// Engine is a styling engine for documents over element type E. An
// engine holds a compiled ruleset and the styling results of the last
// pass, and may be used for any number of passes. All methods are safe
// for concurrent use.
type Engine[E dom.Element[E]] struct {
	config  Config
	mutex   sync.RWMutex
	rules   []*cascade.Rule
	epoch   uint32
	results map[dom.OpaqueNode]Result
	pending map[dom.OpaqueNode]damage.RestyleDamage
}

// New creates a styling engine.
func New[E dom.Element[E]](config Config) *Engine[E] {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.SharingCapacity <= 0 {
		config.SharingCapacity = defaultSharingCapacity
	}
	return &Engine[E]{
		config:  config,
		results: make(map[dom.OpaqueNode]Result),
		pending: make(map[dom.OpaqueNode]damage.RestyleDamage),
	}
}

// SetRules replaces the engine's ruleset and bumps the epoch. All
// previously computed styles become stale and will be recomputed on the
// next pass.
func (ng *Engine[E]) SetRules(rules []*cascade.Rule) {
	ng.mutex.Lock()
	defer ng.mutex.Unlock()
	ng.rules = rules
	ng.epoch++ // wraps, comparison is for equality only
	tracer().Infof("ruleset of %d rules installed, epoch now %d", len(rules), ng.epoch)
}

// Epoch returns the current ruleset generation.
func (ng *Engine[E]) Epoch() uint32 {
	ng.mutex.RLock()
	defer ng.mutex.RUnlock()
	return ng.epoch
}

// StyleOf returns the styling result of the last pass for an element.
// Callers should check Result.Epoch against Engine.Epoch to detect
// stale results.
func (ng *Engine[E]) StyleOf(e E) (Result, bool) {
	ng.mutex.RLock()
	defer ng.mutex.RUnlock()
	res, ok := ng.results[e.Opaque()]
	return res, ok
}

// MarkDamaged records damage for an element ahead of the next pass,
// e.g. after an attribute change or a state flip. Damage including
// selector rematch forces the element's whole subtree to be restyled.
func (ng *Engine[E]) MarkDamaged(e E, d damage.RestyleDamage) {
	ng.mutex.Lock()
	defer ng.mutex.Unlock()
	ng.pending[e.Opaque()] = ng.pending[e.Opaque()].Join(d)
}

// workPackage is the unit of work passed between styling workers.
type workPackage[E dom.Element[E]] struct {
	element E
	parent  *style.ComputedValues
	force   bool
}

// pass bundles the per-pass state of one Style run: an immutable
// snapshot of the ruleset, the work queue with its workload counter,
// and the accumulated damage.
type pass[E dom.Element[E]] struct {
	engine   *Engine[E]
	rules    []*cascade.Rule
	epoch    uint32
	queue    chan workPackage[E]
	workload sync.WaitGroup
	errors   chan error
	mutex    sync.Mutex
	damage   damage.RestyleDamage
}

// Style runs one styling pass over a document. It blocks until every
// element is styled and returns the accumulated restyle damage of the
// pass. The document's shared lock is read-held for the duration of
// the pass; mutators of the document must hold the write lock.
func (ng *Engine[E]) Style(doc dom.Document[E]) (damage.RestyleDamage, error) {
	lock := doc.SharedLock()
	lock.RLock()
	defer lock.RUnlock()
	ng.mutex.RLock()
	p := &pass[E]{
		engine: ng,
		rules:  ng.rules,
		epoch:  ng.epoch,
		queue:  make(chan workPackage[E], 128),
		errors: make(chan error, 20),
	}
	ng.mutex.RUnlock()
	var workers sync.WaitGroup
	for i := 0; i < ng.config.Workers; i++ {
		workers.Add(1)
		go func(wno int) {
			defer workers.Done()
			p.worker(wno)
		}(i + 1)
	}
	p.push(workPackage[E]{element: doc.DocumentElement()})
	go func() { // watchdog: close the queue as soon as no work is in flight
		p.workload.Wait()
		close(p.queue)
		close(p.errors)
	}()
	workers.Wait()
	var lasterror error
	for err := range p.errors {
		if err != nil {
			lasterror = err // throw away all errors but the last one
		}
	}
	tracer().Infof("styling pass done, damage %v", p.damage)
	return p.damage, lasterror
}

// push puts a work package on the pass's queue without ever blocking
// the pushing worker.
func (p *pass[E]) push(wp workPackage[E]) {
	p.workload.Add(1)
	select { // try to send it synchronously without blocking
	case p.queue <- wp:
	default: // nope, we'll have to go async
		go func(wp workPackage[E]) {
			p.queue <- wp
		}(wp)
	}
}

// workerState is the private scratch state of one styling worker.
type workerState struct {
	nth   *selector.NthCaches
	cache sharing.Cache
}

func (p *pass[E]) worker(wno int) {
	w := &workerState{nth: selector.NewNthCaches()}
	switch p.engine.config.Sharing {
	case SharingLRU:
		w.cache = sharing.NewLRU(p.engine.config.SharingCapacity)
	case SharingTable:
		w.cache = sharing.NewFixedTable(p.engine.config.SharingCapacity)
	}
	for wp := range p.queue { // get workpackages until drained
		res, childForce := p.styleElement(wp, w)
		p.mutex.Lock()
		p.damage = p.damage.Join(res.Damage)
		p.mutex.Unlock()
		for _, ch := range wp.element.ChildElements() {
			p.push(workPackage[E]{element: ch, parent: res.Style, force: childForce})
		}
		tracer().Debugf("styling worker %d finished element %v", wno, wp.element)
		p.workload.Done() // worker has finished a workpackage
	}
}

// styleElement styles one element. It reports whether the element's
// children have to be recomputed even if their own epoch is current.
func (p *pass[E]) styleElement(wp workPackage[E], w *workerState) (Result, bool) {
	ng := p.engine
	opaque := wp.element.Opaque()
	ng.mutex.RLock()
	prior, hasPrior := ng.results[opaque]
	pend := ng.pending[opaque]
	ng.mutex.RUnlock()
	if hasPrior && prior.Epoch == p.epoch && pend == damage.NoDamage && !wp.force {
		// still current, nothing to do for this element
		return Result{Style: prior.Style, Damage: damage.NoDamage, Epoch: p.epoch}, false
	}
	matched := cascade.MatchRules(p.rules, wp.element, w.nth)
	if wp.element.HasInlineStyle() && ng.config.InlineParser != nil {
		decls, err := ng.config.InlineParser(wp.element.InlineStyle())
		if err != nil {
			select { // error channel is a bounded collector, never block on it
			case p.errors <- err:
			default:
			}
		} else {
			matched = append(matched, cascade.InlineDeclarations(decls, 1<<30))
		}
	}
	var computed *style.ComputedValues
	if w.cache != nil && sharing.Eligible(wp.element, matched) {
		fp := sharing.NewFingerprint(wp.element, matched, wp.parent)
		computed = sharing.FindOrCreate(w.cache, fp, func() *style.ComputedValues {
			return style.Derive(cascade.Cascade(matched), wp.parent, ng.config.Context)
		})
	} else {
		computed = style.Derive(cascade.Cascade(matched), wp.parent, ng.config.Context)
	}
	var priorStyle *style.ComputedValues
	if hasPrior {
		priorStyle = prior.Style
	}
	res := Result{
		Style:  computed,
		Damage: damage.Diff(priorStyle, computed),
		Epoch:  p.epoch,
	}
	ng.mutex.Lock()
	ng.results[opaque] = res
	delete(ng.pending, opaque)
	ng.mutex.Unlock()
	// children styled against the old parent style have to follow suit
	childForce := priorStyle != computed || pend.Includes(damage.MatchSelectorsDamage)
	return res, childForce
}
