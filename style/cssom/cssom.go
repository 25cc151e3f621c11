/*
Package cssom bridges stylesheet implementations and the styling engine.

In order to de-couple implementations of CSS-stylesheets from the
styling engine, we introduce an interface for CSS stylesheets. Clients
of the styling engine will have to provide a concrete implementation of
this interface (e.g., see package douceuradapter).

Having this interface imposes a performance hit. However, this
implementation of CSS-styling will never trade modularity and clarity
for performance. Clients in need for a production grade browser engine
(where performance is key) should opt for headless versions of the main
browser projects.

Compile translates the rules of a stylesheet into the compiled rule
objects the cascade resolver works on: selectors parsed once, shorthand
properties split into their atomic parts, source order recorded.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssom

import (
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'casc.style'.
func tracer() tracing.Trace {
	return tracing.Select("casc.style")
}

// StyleSheet is an interface to abstract away a stylesheet-implementation.
//
// See interface Rule.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []Rule          // all the rules of a stylesheet
}

// Rule is the type stylesheets consist of.
//
// See interface StyleSheet.
type Rule interface {
	Selector() string            // the prelude / selectors of the rule
	Properties() []string        // property keys, e.g. "margin-top"
	Value(string) style.Property // property value for key, e.g. "15px"
	IsImportant(string) bool     // is property key marked as important?
}

// Compile translates a stylesheet into rules for the cascade resolver.
// origin and layer become the cascade metadata of every compiled rule;
// source numbering starts at firstSource and continues in document
// order. Rules with unparseable selectors are dropped, as CSS requires.
//
// Compile returns the compiled rules together with the next free source
// number, for compiling a subsequent sheet of the same origin.
func Compile(sheet StyleSheet, origin cascade.Origin, layer int, firstSource int) ([]*cascade.Rule, int) {
	if sheet == nil || sheet.Empty() {
		return nil, firstSource
	}
	var rules []*cascade.Rule
	source := firstSource
	for _, r := range sheet.Rules() {
		list, err := selector.Parse(r.Selector())
		if err != nil {
			tracer().Infof("dropping rule with selector %q: %v", r.Selector(), err)
			continue
		}
		rules = append(rules, &cascade.Rule{
			Selectors:    list,
			Declarations: CompileDeclarations(r),
			Origin:       origin,
			Layer:        layer,
			Source:       source,
		})
		source++
	}
	tracer().Debugf("compiled %d rules of %s sheet", len(rules), origin)
	return rules, source
}

// CompileDeclarations flattens the declarations of one rule, splitting
// shorthand properties into their atomic parts.
func CompileDeclarations(r Rule) []cascade.Declaration {
	var decls []cascade.Declaration
	for _, key := range r.Properties() {
		value := r.Value(key)
		important := r.IsImportant(key)
		if kv, err := style.SplitCompoundProperty(key, value); err == nil {
			for _, part := range kv {
				decls = append(decls, cascade.Declaration{
					Name:      part.Key,
					Value:     part.Value,
					Important: important,
				})
			}
			continue
		}
		decls = append(decls, cascade.Declaration{Name: key, Value: value, Important: important})
	}
	return decls
}
