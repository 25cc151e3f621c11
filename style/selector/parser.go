package selector

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse parses the prelude of a style rule into a selector list.
// Parsing happens once, upstream of all matching; the returned list is
// immutable and carries its stable identity.
func Parse(input string) (*List, error) {
	parts := splitTop(input, ',')
	if len(parts) == 0 {
		return nil, errors.New("empty selector")
	}
	selectors := make([]Selector, 0, len(parts))
	for _, part := range parts {
		sel, err := parseSelector(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)
	}
	list := newList(selectors)
	tracer().Debugf("parsed selector list #%d: %s", list.ID(), list)
	return list, nil
}

// splitTop splits s at occurences of sep outside of parentheses and
// brackets. Empty fields are dropped.
func splitTop(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case sep:
			if depth == 0 {
				if p := strings.TrimSpace(s[start:i]); p != "" {
					parts = append(parts, p)
				}
				start = i + 1
			}
		}
	}
	if p := strings.TrimSpace(s[start:]); p != "" {
		parts = append(parts, p)
	}
	return parts
}

func parseSelector(s string) (Selector, error) {
	var sel Selector
	if s == "" {
		return sel, errors.New("empty selector")
	}
	compounds, combinators, err := tokenize(s)
	if err != nil {
		return sel, err
	}
	for i, text := range compounds {
		compound, pseudoElement, err := parseCompound(text, &sel)
		if err != nil {
			return sel, err
		}
		if pseudoElement != "" && i != len(compounds)-1 {
			return sel, fmt.Errorf("pseudo-element ::%s not on subject compound", pseudoElement)
		}
		sel.PseudoElement = pseudoElement
		sel.Compounds = append(sel.Compounds, compound)
	}
	sel.Combinators = combinators
	return sel, nil
}

// tokenize splits a complex selector into compound texts and the
// combinators joining them. Whitespace inside parentheses or brackets
// (e.g. in ":nth-child(2n+1 of li)") is not a combinator.
func tokenize(s string) ([]string, []Combinator, error) {
	var compounds []string
	var combinators []Combinator
	pendingWS := false
	pendingComb := Combinator(0)
	havePendingComb := false
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n':
			pendingWS = true
			i++
		case c == '>' || c == '+' || c == '~':
			if havePendingComb || len(compounds) == 0 {
				return nil, nil, fmt.Errorf("dangling combinator in %q", s)
			}
			switch c {
			case '>':
				pendingComb = Child
			case '+':
				pendingComb = NextSibling
			case '~':
				pendingComb = SubsequentSibling
			}
			havePendingComb = true
			pendingWS = false
			i++
		default:
			start := i
			depth := 0
			for i < len(s) {
				c = s[i]
				if c == '(' || c == '[' {
					depth++
				} else if c == ')' || c == ']' {
					depth--
				} else if depth == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '>' || c == '+' || c == '~') {
					break
				}
				i++
			}
			if depth != 0 {
				return nil, nil, fmt.Errorf("unbalanced brackets in %q", s)
			}
			if len(compounds) > 0 {
				if havePendingComb {
					combinators = append(combinators, pendingComb)
				} else if pendingWS {
					combinators = append(combinators, Descendant)
				} else {
					return nil, nil, fmt.Errorf("missing combinator in %q", s)
				}
			}
			compounds = append(compounds, s[start:i])
			pendingWS = false
			havePendingComb = false
		}
	}
	if havePendingComb {
		return nil, nil, fmt.Errorf("dangling combinator in %q", s)
	}
	if len(compounds) == 0 {
		return nil, nil, errors.New("empty selector")
	}
	return compounds, combinators, nil
}

func parseCompound(text string, sel *Selector) (Compound, string, error) {
	var c Compound
	pseudoElement := ""
	i := 0
	for i < len(text) {
		switch text[i] {
		case '*':
			i++
		case '#':
			name, n := readIdent(text[i+1:])
			if name == "" {
				return c, "", fmt.Errorf("bad id selector in %q", text)
			}
			c.ID = name
			sel.Spec[0]++
			i += 1 + n
		case '.':
			name, n := readIdent(text[i+1:])
			if name == "" {
				return c, "", fmt.Errorf("bad class selector in %q", text)
			}
			c.Classes = append(c.Classes, name)
			sel.Spec[1]++
			i += 1 + n
		case '[':
			end := strings.IndexByte(text[i:], ']')
			if end < 0 {
				return c, "", fmt.Errorf("unterminated attribute selector in %q", text)
			}
			attr, err := parseAttrTest(text[i+1 : i+end])
			if err != nil {
				return c, "", err
			}
			c.Attrs = append(c.Attrs, attr)
			sel.Spec[1]++
			i += end + 1
		case ':':
			if i+1 < len(text) && text[i+1] == ':' {
				name, n := readIdent(text[i+2:])
				if name == "" {
					return c, "", fmt.Errorf("bad pseudo-element in %q", text)
				}
				pseudoElement = strings.ToLower(name)
				sel.Spec[2]++
				i += 2 + n
				continue
			}
			name, n := readIdent(text[i+1:])
			if name == "" {
				return c, "", fmt.Errorf("bad pseudo-class in %q", text)
			}
			i += 1 + n
			args := ""
			if i < len(text) && text[i] == '(' {
				depth := 0
				j := i
				for ; j < len(text); j++ {
					if text[j] == '(' {
						depth++
					} else if text[j] == ')' {
						depth--
						if depth == 0 {
							break
						}
					}
				}
				if depth != 0 {
					return c, "", fmt.Errorf("unterminated pseudo-class arguments in %q", text)
				}
				args = text[i+1 : j]
				i = j + 1
			}
			pseudo, err := parsePseudo(strings.ToLower(name), args, sel)
			if err != nil {
				return c, "", err
			}
			c.Pseudos = append(c.Pseudos, pseudo)
			sel.Spec[1]++
		default:
			name, n := readIdent(text[i:])
			if name == "" || i != 0 {
				return c, "", fmt.Errorf("unexpected %q in selector %q", text[i], text)
			}
			c.Tag = strings.ToLower(name)
			sel.Spec[2]++
			i += n
		}
	}
	return c, pseudoElement, nil
}

func parsePseudo(name, args string, sel *Selector) (Pseudo, error) {
	simple := map[string]PseudoKind{
		"first-child":   PseudoFirstChild,
		"last-child":    PseudoLastChild,
		"only-child":    PseudoOnlyChild,
		"first-of-type": PseudoFirstOfType,
		"last-of-type":  PseudoLastOfType,
		"only-of-type":  PseudoOnlyOfType,
		"empty":         PseudoEmpty,
		"root":          PseudoRoot,
		"hover":         PseudoHover,
		"active":        PseudoActive,
		"focus":         PseudoFocus,
		"enabled":       PseudoEnabled,
		"disabled":      PseudoDisabled,
		"checked":       PseudoChecked,
		"visited":       PseudoVisited,
		"link":          PseudoLink,
		"target":        PseudoTarget,
	}
	if kind, ok := simple[name]; ok {
		if args != "" {
			return Pseudo{}, fmt.Errorf(":%s takes no arguments", name)
		}
		if kind.isStructural() {
			sel.usesNth = true
		}
		return Pseudo{Kind: kind}, nil
	}
	var kind PseudoKind
	switch name {
	case "nth-child":
		kind = PseudoNthChild
	case "nth-last-child":
		kind = PseudoNthLastChild
	case "nth-of-type":
		kind = PseudoNthOfType
	case "nth-last-of-type":
		kind = PseudoNthLastOfType
	default:
		return Pseudo{}, fmt.Errorf("unsupported pseudo-class :%s", name)
	}
	sel.usesNth = true
	expr := args
	var of *List
	if kind == PseudoNthChild || kind == PseudoNthLastChild {
		if idx := indexOfClause(args); idx >= 0 {
			expr = strings.TrimSpace(args[:idx])
			inner, err := Parse(args[idx+4:])
			if err != nil {
				return Pseudo{}, err
			}
			of = inner
			// the qualifying list contributes the specificity of its
			// most specific selector
			sel.Spec = sel.Spec.add(inner.MaxSpecificity())
		}
	}
	a, b, err := parseNth(expr)
	if err != nil {
		return Pseudo{}, err
	}
	return Pseudo{Kind: kind, A: a, B: b, Of: of}, nil
}

// indexOfClause finds a top-level " of " inside nth-child arguments.
func indexOfClause(s string) int {
	depth := 0
	for i := 0; i+4 <= len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
		if depth == 0 && s[i:i+4] == " of " {
			return i
		}
	}
	return -1
}

// parseNth parses an An+B expression, including the "odd" and "even"
// shorthands.
func parseNth(s string) (int, int, error) {
	s = strings.ToLower(strings.ReplaceAll(s, " ", ""))
	switch s {
	case "odd":
		return 2, 1, nil
	case "even":
		return 2, 0, nil
	case "":
		return 0, 0, errors.New("empty An+B expression")
	}
	idx := strings.IndexByte(s, 'n')
	if idx < 0 {
		b, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, fmt.Errorf("bad An+B expression %q", s)
		}
		return 0, b, nil
	}
	a := 1
	switch apart := s[:idx]; apart {
	case "", "+":
	case "-":
		a = -1
	default:
		var err error
		if a, err = strconv.Atoi(apart); err != nil {
			return 0, 0, fmt.Errorf("bad An+B expression %q", s)
		}
	}
	b := 0
	if bpart := s[idx+1:]; bpart != "" {
		var err error
		if b, err = strconv.Atoi(bpart); err != nil {
			return 0, 0, fmt.Errorf("bad An+B expression %q", s)
		}
	}
	return a, b, nil
}

func parseAttrTest(s string) (AttrTest, error) {
	s = strings.TrimSpace(s)
	for _, op := range [...]string{"~=", "|=", "^=", "$=", "*=", "="} {
		if idx := strings.Index(s, op); idx >= 0 {
			name := strings.TrimSpace(s[:idx])
			value := strings.TrimSpace(s[idx+len(op):])
			value = strings.Trim(value, `"'`)
			if name == "" {
				return AttrTest{}, fmt.Errorf("bad attribute selector [%s]", s)
			}
			return AttrTest{Name: name, Op: op, Value: value}, nil
		}
	}
	if s == "" {
		return AttrTest{}, errors.New("empty attribute selector")
	}
	return AttrTest{Name: s}, nil
}

// readIdent reads a CSS identifier prefix of s and returns it together
// with its length in bytes.
func readIdent(s string) (string, int) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
			c == '-' || c == '_' {
			i++
			continue
		}
		break
	}
	return s[:i], i
}
