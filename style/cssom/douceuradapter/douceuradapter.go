/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet.

It binds the CSS parser of aymerick/douceur to the styling engine:
stylesheets parsed by douceur satisfy cssom.StyleSheet and can be
compiled into cascade rules, and inline style attributes are parsed
into declaration lists.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/casc/style"
	"github.com/npillmayer/casc/style/cascade"
	"github.com/npillmayer/casc/style/cssom"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to the documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css css.Stylesheet
}

// Wrap a douceur css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper.
func Wrap(css *css.Stylesheet) *CSSStyles {
	return &CSSStyles{*css}
}

// Parse parses CSS source text into a stylesheet.
func Parse(csstext string) (*CSSStyles, error) {
	sheet, err := parser.Parse(csstext)
	if err != nil {
		return nil, err
	}
	return Wrap(sheet), nil
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.css.Rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	othercss := other.(*CSSStyles)
	sheet.css.Rules = append(sheet.css.Rules, othercss.css.Rules...)
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []cssom.Rule {
	rules := make([]cssom.Rule, len(sheet.css.Rules))
	for i := range sheet.css.Rules {
		rules[i] = Rule(*sheet.css.Rules[i])
	}
	return rules
}

var _ cssom.StyleSheet = &CSSStyles{}

// Rule is an adapter for interface cssom.Rule.
type Rule css.Rule

// Selector returns the prelude / selectors of the rule.
func (r Rule) Selector() string {
	return r.Prelude
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

// Value returns the property value for a given key within this rule,
// e.g. "15px".
func (r Rule) Value(key string) style.Property {
	for _, d := range r.Declarations {
		if d.Property == key {
			return style.Property(d.Value)
		}
	}
	return ""
}

// IsImportant returns true if a style key is marked as important ("!").
func (r Rule) IsImportant(key string) bool {
	for _, d := range r.Declarations {
		if d.Property == key {
			return d.Important
		}
	}
	return false
}

var _ cssom.Rule = Rule{}

// ParseInline parses the contents of a style attribute into cascade
// declarations, splitting shorthand properties. Unparseable attribute
// values yield an error and no declarations.
func ParseInline(styleattr string) ([]cascade.Declaration, error) {
	parsed, err := parser.ParseDeclarations(styleattr)
	if err != nil {
		return nil, err
	}
	var decls []cascade.Declaration
	for _, d := range parsed {
		if kv, err := style.SplitCompoundProperty(d.Property, style.Property(d.Value)); err == nil {
			for _, part := range kv {
				decls = append(decls, cascade.Declaration{
					Name:      part.Key,
					Value:     part.Value,
					Important: d.Important,
				})
			}
			continue
		}
		decls = append(decls, cascade.Declaration{
			Name:      d.Property,
			Value:     style.Property(d.Value),
			Important: d.Important,
		})
	}
	return decls, nil
}

// ExtractStyleElements visits <head> and <body> elements in an HTML
// parse tree and searches for embedded <style>s. It returns the content
// of style-elements as style sheets.
func ExtractStyleElements(htmldoc *html.Node) []*CSSStyles {
	var sheets []*CSSStyles
	sheets = append(sheets, extractStyles(findElement(atom.Head, htmldoc))...)
	sheets = append(sheets, extractStyles(findElement(atom.Body, htmldoc))...)
	return sheets
}

func extractStyles(h *html.Node) []*CSSStyles {
	if h == nil {
		return nil
	}
	var sheets []*CSSStyles
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.DataAtom == atom.Style && ch.FirstChild != nil {
			sheet, err := parser.Parse(ch.FirstChild.Data)
			if err != nil {
				continue
			}
			sheets = append(sheets, Wrap(sheet))
		}
	}
	return sheets
}

func findElement(a atom.Atom, h *html.Node) *html.Node {
	if h == nil {
		return nil
	}
	if h.DataAtom == a {
		return h
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if r := findElement(a, ch); r != nil {
			return r
		}
	}
	return nil
}
