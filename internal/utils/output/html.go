package output

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// renderTable builds a two-column HTML table of rows. Values are set as
// text nodes, so markup in extracted data is escaped by the renderer.
func renderTable(rows []Row) (string, error) {
	table := element(atom.Table)

	thead := element(atom.Thead)
	thead.AppendChild(tableRow(atom.Th, "Field", "Value"))
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, r := range rows {
		tbody.AppendChild(tableRow(atom.Td, r.Key, r.Value))
	}
	table.AppendChild(tbody)

	var buf bytes.Buffer
	if err := html.Render(&buf, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func tableRow(cell atom.Atom, values ...string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		c := element(cell)
		c.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		tr.AppendChild(c)
	}
	return tr
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}
