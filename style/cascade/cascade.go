/*
Package cascade resolves the CSS cascade for single nodes.

Clients hand the resolver the full set of rules applicable to a
document. For a given node, the resolver first collects the rules whose
selectors match the node, then runs the cascade over all their
declarations: per property, exactly one declaration wins, determined by
importance and origin first, then cascade layer, selector specificity
and source order.

The resulting ordering is total and deterministic for identical input.
Downstream caches rely on that: two nodes matching the same rules in the
same document always cascade to the same winning declarations.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cascade

import (
	"github.com/npillmayer/casc/dom"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'casc.style'.
func tracer() tracing.Trace {
	return tracing.Select("casc.style")
}

// Origin classifies where a style rule came from.
type Origin uint8

const (
	UserAgent Origin = iota
	User
	Author
)

func (o Origin) String() string {
	switch o {
	case UserAgent:
		return "user-agent"
	case User:
		return "user"
	case Author:
		return "author"
	}
	return "<unknown origin>"
}

// Declaration is a single property setting within a rule.
type Declaration struct {
	Name      string
	Value     style.Property
	Important bool
}

// Rule is one style rule: a selector list guarding a block of
// declarations, plus the cascade metadata of the stylesheet it came
// from. Layer is the ordinal of the rule's cascade layer, Source the
// position of the rule in document order across all sheets of its
// origin. Rules are immutable once compiled.
type Rule struct {
	Selectors    *selector.List
	Declarations []Declaration
	Origin       Origin
	Layer        int
	Source       int
}

// MatchedRule pairs a rule with the specificity of the selector
// alternative that matched a concrete node.
type MatchedRule struct {
	Rule *Rule
	Spec selector.Specificity
}

// MatchRules collects the rules of a ruleset whose selectors match
// element e. The relative order of the input is preserved.
func MatchRules[E dom.Element[E]](rules []*Rule, e E, nth *selector.NthCaches) []MatchedRule {
	var matched []MatchedRule
	for _, r := range rules {
		if r.Selectors == nil {
			continue
		}
		if ok, spec := selector.MatchList(r.Selectors, e, nth); ok {
			matched = append(matched, MatchedRule{Rule: r, Spec: spec})
		}
	}
	tracer().Debugf("%d of %d rules match %v", len(matched), len(rules), e)
	return matched
}

// maxSpec outweighs the specificity of any parseable selector.
var maxSpec = selector.Specificity{1 << 30, 1 << 30, 1 << 30}

// InlineDeclarations wraps the declarations of a style attribute as a
// matched pseudo-rule. Inline declarations carry author origin and
// outweigh any author stylesheet selector.
func InlineDeclarations(decls []Declaration, source int) MatchedRule {
	return MatchedRule{
		Rule: &Rule{Declarations: decls, Origin: Author, Source: source},
		Spec: maxSpec,
	}
}

// weight is the total cascade order of a single declaration.
//
// rank encodes importance and origin, highest first:
//
//	6  important author
//	5  important user
//	4  user-agent
//	3  user
//	2  author
//	1  important user-agent
//
// Importance reverses the origin order for the important half, with
// user-agent importance dropping below everything else.
type weight struct {
	rank   uint8
	layer  int
	spec   selector.Specificity
	source int
}

func rankOf(o Origin, important bool) uint8 {
	if important {
		switch o {
		case Author:
			return 6
		case User:
			return 5
		default:
			return 1
		}
	}
	switch o {
	case UserAgent:
		return 4
	case User:
		return 3
	default:
		return 2
	}
}

// outranks returns true if w strictly precedes other in the cascade.
// Later cascade layers win, then higher specificity, then later source
// order.
func (w weight) outranks(other weight) bool {
	if w.rank != other.rank {
		return w.rank > other.rank
	}
	if w.layer != other.layer {
		return w.layer > other.layer
	}
	if w.spec != other.spec {
		return other.spec.Less(w.spec)
	}
	return w.source > other.source
}

// Cascade resolves the matched rules for one node into the winning
// specified value per property. Shorthand properties have to be split
// before compilation; Cascade sees only atomic property names.
func Cascade(matched []MatchedRule) map[string]style.Property {
	type winner struct {
		value style.Property
		w     weight
	}
	winners := make(map[string]winner)
	for _, m := range matched {
		for _, d := range m.Rule.Declarations {
			w := weight{
				rank:   rankOf(m.Rule.Origin, d.Important),
				layer:  m.Rule.Layer,
				spec:   m.Spec,
				source: m.Rule.Source,
			}
			if current, ok := winners[d.Name]; ok && current.w.outranks(w) {
				continue
			}
			// on a full tie the later declaration of the same rule wins
			winners[d.Name] = winner{value: d.Value, w: w}
		}
	}
	values := make(map[string]style.Property, len(winners))
	for name, win := range winners {
		values[name] = win.value
	}
	return values
}
