package extract_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/motorreg/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page renders a minimal registry page with the given selected tab title.
func page(selectedTab, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Motorregister</title></head>
<body>
<div id="visKTTabset">
	<ul class="h-tab-btns">
		<li id="li-visKTTabset-0"><a href="#"><span class="title">Køretøj</span></a></li>
		<li id="li-visKTTabset-1" class="selected"><a href="#"><span class="title">%s</span></a></li>
	</ul>
</div>
%s
</body>
</html>`, selectedTab, body)
}

func portlet(id, valueCell string) string {
	return fmt.Sprintf(`<div class="row">
	<div class="colLabel"><span id="%s">Label</span></div>
	%s
</div>`, id, valueCell)
}

func identity(title, group string) string {
	return fmt.Sprintf(`<div class="bluebox">
	<div class="section">
		<h3>No title attribute</h3>
		<h3 title="%[1]s">%[1]s</h3>
		%[2]s
	</div>
</div>`, title, group)
}

func TestExtract_MissingTab(t *testing.T) {
	t.Parallel()

	rec, err := extract.New(nil).ExtractString(`<html><body><div id="visKTTabset"><ul class="h-tab-btns"><li><span class="title">Køretøj</span></li></ul></div></body></html>`)

	require.ErrorIs(t, err, extract.ErrTabNotFound)
	assert.Nil(t, rec)

	result, err := extract.ResultFor(rec, err)
	require.NoError(t, err)

	b, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error": true, "message": "Failed to find selected tab"}`, string(b))
	assert.True(t, extract.IsErrorResult(result))
}

func TestExtract_InspectionFlags(t *testing.T) {
	t.Parallel()

	t.Run("never inspected and not called", func(t *testing.T) {
		t.Parallel()

		html := page("Syn", `<p>Køretøjet har aldrig været synet.</p><p>Køretøjet er ikke indkaldt til syn.</p>`)
		rec, err := extract.New(nil).ExtractString(html)
		require.NoError(t, err)

		never, ok := rec.Bool(extract.KeyNeverInspected)
		require.True(t, ok)
		assert.True(t, never)

		called, ok := rec.Bool(extract.KeyCalledForInspection)
		require.True(t, ok)
		assert.False(t, called)
	})

	t.Run("inspected and called", func(t *testing.T) {
		t.Parallel()

		rec, err := extract.New(nil).ExtractString(page("Syn", `<p>Seneste syn: 2024-01-01</p>`))
		require.NoError(t, err)

		assert.Equal(t, false, rec[extract.KeyNeverInspected])
		assert.Equal(t, true, rec[extract.KeyCalledForInspection])
	})

	t.Run("flags only on inspection tab", func(t *testing.T) {
		t.Parallel()

		rec, err := extract.New(nil).ExtractString(page("Køretøj", `<p>Køretøjet har aldrig været synet.</p>`))
		require.NoError(t, err)

		assert.NotContains(t, rec, extract.KeyNeverInspected)
		assert.NotContains(t, rec, extract.KeyCalledForInspection)
	})
}

func TestExtract_PortletFields(t *testing.T) {
	t.Parallel()

	body := portlet("ptr-dmr:portlet.Foo-Bar.Baz", `<div class="colValue"> 123 </div>`) +
		portlet("ptr-dmr:portlet.KtHstrskVsnng.Dato", `<div class="colValue">2020</div>`) +
		portlet("ptr-dmr:portlet.Editable", `<div class="colValue"><input type="text" value="x"></div>`) +
		portlet("ptr-dmr:portlet.Multi", `<div class="colValue">first</div><div class="colValue">last</div>`) +
		portlet("ptr-dmr:portlet.Empty", `<div class="colValue">   </div>`) +
		portlet("ptr-dmr:portlet.NoValue", `<div class="other">ignored</div>`) +
		`<span id="ptr-dmr:portlet.Orphan">no label ancestor</span>`

	rec, err := extract.New(nil).ExtractString(page("Tekniske oplysninger", body))
	require.NoError(t, err)

	assert.Equal(t, "123", rec["ptr_dmr_portlet_Foo_Bar_Baz"])
	assert.Equal(t, "last", rec["ptr_dmr_portlet_Multi"])
	assert.Equal(t, "", rec["ptr_dmr_portlet_Empty"])

	for key := range rec {
		assert.NotContains(t, key, "HstrskVsnng")
	}
	assert.NotContains(t, rec, "ptr_dmr_portlet_Editable")
	assert.NotContains(t, rec, "ptr_dmr_portlet_NoValue")
	assert.NotContains(t, rec, "ptr_dmr_portlet_Orphan")
}

func TestExtract_PortletsIgnoredOnOtherTabs(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"Forsikring", "Afgifter og tilladelser", "Noget andet"} {
		rec, err := extract.New(nil).ExtractString(page(title, portlet("ptr-dmr:portlet.A", `<div class="colValue">1</div>`)))
		require.NoError(t, err, title)
		assert.Empty(t, rec, title)
	}
}

func TestExtract_IdentityGroups(t *testing.T) {
	t.Parallel()

	body := identity("Ejer", `<div class="group">
		<div class="keyvalue"><span class="key">Navn:</span><span class="value">Jane Doe</span></div>
		<div class="keyvalue"><span class="key">Post&shy;nummer,  og by:</span><span class="value"> 2100 København Ø </span></div>
		<div class="keyvalue"><span class="key">Første</span><span class="key">Anden</span><span class="value">A</span><span class="value">B</span></div>
		<div class="keyvalue"><span class="key">Uden værdi</span></div>
		<div class="keyvalue"><div class="key">Ikke span</div><span class="value">skip</span></div>
		<div class="keyvalue"></div>
	</div>`) + identity("Bruger&shy;oplysninger", `<div class="group">
		<div class="keyvalue"><span class="key">CVR</span><span class="value">12345678</span></div>
	</div>`)

	rec, err := extract.New(nil).ExtractString(page("Forsikring", body))
	require.NoError(t, err)

	owner, ok := rec["Ejer"].(map[string]string)
	require.True(t, ok, "Ejer should be a group")
	assert.Equal(t, map[string]string{
		"Navn":             "Jane Doe",
		"Postnummer_og_by": "2100 København Ø",
		"Første":           "A",
	}, owner)

	assert.Equal(t, map[string]string{"CVR": "12345678"}, rec["Brugeroplysninger"])
}

func TestExtract_IdentityWithoutTitle(t *testing.T) {
	t.Parallel()

	body := `<div class="bluebox"><div class="section"><div class="group">
		<div class="keyvalue"><span class="key">Navn</span><span class="value">x</span></div>
	</div></div></div>`

	rec, err := extract.New(nil).ExtractString(page("Køretøj", body))
	require.NoError(t, err)
	assert.Empty(t, rec)
}

func TestExtract_IdentityOverwritesScalar(t *testing.T) {
	t.Parallel()

	// A heading that collides with an earlier scalar key replaces it with a group.
	body := identity(extract.KeyNeverInspected, `<div class="group">
		<div class="keyvalue"><span class="key">Dato</span><span class="value">2001</span></div>
	</div>`)

	rec, err := extract.New(nil).ExtractString(page("Syn", body))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Dato": "2001"}, rec[extract.KeyNeverInspected])
	assert.Equal(t, true, rec[extract.KeyCalledForInspection])
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	html := page("Køretøj",
		portlet("ptr-dmr:portlet.Stelnummer", `<div class="colValue">WVWZZZ</div>`)+
			identity("Ejer", `<div class="group"><div class="keyvalue"><span class="key">Navn:</span><span class="value">Jane Doe</span></div></div>`))

	x := extract.New(nil)
	first, err := x.ExtractString(html)
	require.NoError(t, err)
	second, err := x.ExtractString(html)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "WVWZZZ", first["ptr_dmr_portlet_Stelnummer"])
}

func TestSelectedTab(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page("Tekniske oplysninger", "")))
	require.NoError(t, err)

	tab, err := extract.New(nil).SelectedTab(doc)
	require.NoError(t, err)
	assert.Equal(t, extract.TabTechnicalDetails, tab)

	empty, err := goquery.NewDocumentFromReader(strings.NewReader("<p>nothing</p>"))
	require.NoError(t, err)
	tab, err = extract.New(nil).SelectedTab(empty)
	assert.ErrorIs(t, err, extract.ErrTabNotFound)
	assert.Equal(t, extract.TabUnknown, tab)
}
