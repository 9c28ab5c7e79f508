package extract_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/motorreg/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nodeByID(t *testing.T, markup, id string) extract.Node {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	sel := doc.Find("#" + id)
	require.Equal(t, 1, sel.Length(), "fixture must contain #%s", id)
	return extract.NewNode(sel.Get(0))
}

func TestResolveValueFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
		found  bool
	}{
		{
			name:   "nested label",
			markup: `<div><div class="colLabel"><p><b id="f">Mærke</b></p></div><div class="colValue">  VW  </div></div>`,
			want:   "VW",
			found:  true,
		},
		{
			name:   "value text spans elements",
			markup: `<div><div class="colLabel"><span id="f"></span></div><div class="colValue"><b>1.4</b> <i>TSI</i></div></div>`,
			want:   "1.4 TSI",
			found:  true,
		},
		{
			name:   "last value cell wins",
			markup: `<div><div class="colValue">a</div><div class="colLabel"><span id="f"></span></div><div class="colValue">b</div><div class="colValue">c</div></div>`,
			want:   "c",
			found:  true,
		},
		{
			name:   "input in value cell",
			markup: `<div><div class="colLabel"><span id="f"></span></div><div class="colValue"><label><input name="q"></label></div></div>`,
		},
		{
			name:   "no value cell",
			markup: `<div><div class="colLabel"><span id="f"></span></div><div class="other">x</div></div>`,
		},
		{
			name:   "value cell elsewhere",
			markup: `<div><div class="colLabel"><span id="f"></span></div></div><div class="colValue">x</div>`,
		},
		{
			name:   "no label ancestor",
			markup: `<div><span id="f"></span></div>`,
		},
		{
			name:   "label class among several",
			markup: `<div><div class="cell colLabel wide"><span id="f"></span></div><div class="colValue wide">ok</div></div>`,
			want:   "ok",
			found:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extract.ResolveValueFor(nodeByID(t, tt.markup, "f"))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveTitleFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
		found  bool
	}{
		{
			name:   "first titled heading",
			markup: `<section><h3>plain</h3><h2 title="x">wrong tag</h2><h3 title="Ejer"> Ejer </h3><h3 title="Bruger">Bruger</h3><div><div id="kv"></div></div></section>`,
			want:   "Ejer",
			found:  true,
		},
		{
			name:   "empty title attribute still counts",
			markup: `<section><h3 title="">Leasing</h3><div><div id="kv"></div></div></section>`,
			want:   "Leasing",
			found:  true,
		},
		{
			name:   "heading at wrong level",
			markup: `<section><div><h3 title="Ejer">Ejer</h3><div id="kv"></div></div></section>`,
		},
		{
			name:   "no heading",
			markup: `<section><div><div id="kv"></div></div></section>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := extract.ResolveTitleFor(nodeByID(t, tt.markup, "kv"))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewNode(t *testing.T) {
	t.Parallel()

	assert.Nil(t, extract.NewNode(nil))

	n := nodeByID(t, `<div class="a  b"><span id="s" data-x="1">hi <em>there</em><!-- c --></span></div>`, "s")
	assert.Equal(t, "span", n.Tag())
	assert.True(t, n.Parent().HasClass("b"))
	assert.False(t, n.Parent().HasClass("c"))

	v, ok := n.Attr("data-x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = n.Attr("missing")
	assert.False(t, ok)

	children := n.Children()
	require.Len(t, children, 1)
	assert.Equal(t, "em", children[0].Tag())
	assert.Equal(t, "hi there", n.Text())
	assert.False(t, n.ContainsInput())
}
