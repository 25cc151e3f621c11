package style

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// Property is a raw specified value for a CSS property. For example, with
//
//	color: black
//
// a property value of "black" is set. The main purpose of wrapping
// the raw string value into type Property is to provide a set of
// convenient helpers.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

func (p Property) String() string {
	return string(p)
}

// IsInitial denotes if a property is of inheritence-type "initial".
func (p Property) IsInitial() bool {
	return p == "initial"
}

// IsInherit denotes if a property is of inheritence-type "inherit".
func (p Property) IsInherit() bool {
	return p == "inherit"
}

// IsUnset denotes if a property is of inheritence-type "unset".
func (p Property) IsUnset() bool {
	return p == "unset"
}

// IsEmpty checks wether a property is empty, i.e. the null-string.
func (p Property) IsEmpty() bool {
	return p == ""
}

// KeyValue is a container for a style property.
type KeyValue struct {
	Key   string
	Value Property
}

// --- Property table --------------------------------------------------------

// propertyDef describes the cascade behavior of one property: wether the
// property inherits from the parent element when no declaration wins the
// cascade, and the initial value used otherwise.
type propertyDef struct {
	inherited bool
	initial   Property
}

// propertyTable is the catalogue of properties this engine computes.
// CSS defines a whole lot more; this is the representative subset the
// computed-value machinery is exercised with.
var propertyTable = map[string]propertyDef{
	// inherited properties
	"color":               {true, "black"},
	"direction":           {true, "ltr"},
	"white-space":         {true, "normal"},
	"letter-spacing":      {true, "normal"},
	"word-spacing":        {true, "normal"},
	"visibility":          {true, "visible"},
	"cursor":              {true, "auto"},
	"font-size":           {true, "16px"},
	"list-style-type":     {true, "disc"},
	"list-style-position": {true, "outside"},
	// reset properties
	"display":          {false, "inline"},
	"position":         {false, "static"},
	"float":            {false, "none"},
	"width":            {false, "auto"},
	"height":           {false, "auto"},
	"margin-top":       {false, "0"},
	"margin-right":     {false, "0"},
	"margin-bottom":    {false, "0"},
	"margin-left":      {false, "0"},
	"padding-top":      {false, "0"},
	"padding-right":    {false, "0"},
	"padding-bottom":   {false, "0"},
	"padding-left":     {false, "0"},
	"outline-color":    {false, "currentcolor"},
	"outline-style":    {false, "none"},
	"outline-width":    {false, "medium"},
	"background-color": {false, "transparent"},
	"opacity":          {false, "1"},
	"column-count":     {false, "auto"},
	"column-width":     {false, "auto"},
}

// IsKnown denotes if key is a property this engine computes.
func IsKnown(key string) bool {
	_, ok := propertyTable[key]
	return ok
}

// IsInherited returns wether the standard behaviour for a property is to
// inherit the parent's computed value when no declaration won the cascade.
func IsInherited(key string) bool {
	return propertyTable[key].inherited
}

// Initial returns the initial value of a property, i.e. the value a reset
// property computes to when no declaration won the cascade.
func Initial(key string) Property {
	return propertyTable[key].initial
}

// Keys returns all property keys known to the engine.
func Keys() []string {
	keys := make([]string, 0, len(propertyTable))
	for k := range propertyTable {
		keys = append(keys, k)
	}
	return keys
}

// --- Compound properties ---------------------------------------------------

// SplitCompoundProperty splits up a shortcut property into its individual
// components. Returns a slice of key-value pairs representing the
// individual (fine grained) style properties.
// Example:
//
//	SplitCompoundProperty("padding", "3px")
//
// will return
//
//	"padding-top"    => "3px"
//	"padding-right"  => "3px"
//	"padding-bottom" => "3px"
//	"padding-left"   => "3px"
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := strings.Fields(value.String())
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "list-style":
		if len(fields) != 2 {
			break
		}
		return []KeyValue{
			{"list-style-type", Property(fields[0])},
			{"list-style-position", Property(fields[1])},
		}, nil
	}
	return nil, fmt.Errorf("not recognized as compound property: %s", key)
}

// CSS logic to distribute individual values from compound shortcuts:
// 1 value sets all four sides, 2 values set vertical/horizontal pairs,
// 3 values set top/horizontal/bottom, 4 values go clockwise from top.
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s-%s", pre, suf)
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	switch l {
	case 1:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	case 2:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
	case 3:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
	case 4:
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}
