package extract

import "strings"

const (
	classLabel = "colLabel"
	classValue = "colValue"
)

// ResolveValueFor finds the value paired with a portlet field element.
//
// It climbs to the nearest ancestor classed colLabel (giving up at <body>),
// then scans that ancestor's parent for colValue children; the last one wins.
// A value cell holding an <input> is an editable control, not data.
func ResolveValueFor(e Node) (string, bool) {
	for {
		e = e.Parent()
		if e == nil || e.Tag() == "body" {
			return "", false
		}
		if e.HasClass(classLabel) {
			break
		}
	}

	row := e.Parent()
	if row == nil {
		return "", false
	}

	var value Node
	for _, c := range row.Children() {
		if c.HasClass(classValue) {
			value = c
		}
	}
	if value == nil || value.ContainsInput() {
		return "", false
	}
	return strings.TrimSpace(value.Text()), true
}

// ResolveTitleFor returns the heading of an identity key/value group: the first
// <h3 title="..."> among the children of the group's grandparent.
func ResolveTitleFor(e Node) (string, bool) {
	parent := e.Parent()
	if parent == nil {
		return "", false
	}
	container := parent.Parent()
	if container == nil {
		return "", false
	}
	for _, c := range container.Children() {
		if c.Tag() != "h3" {
			continue
		}
		if _, ok := c.Attr("title"); !ok {
			continue
		}
		return strings.TrimSpace(c.Text()), true
	}
	return "", false
}
