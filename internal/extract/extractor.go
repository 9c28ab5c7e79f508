// Package extract turns a rendered Motorregister page into a flat Record.
package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/rs/zerolog"
)

const (
	portletIDPrefix = "ptr-dmr:portlet"
	historyFieldTag = "HstrskVsnng"

	phraseNeverInspected     = "Køretøjet har aldrig været synet."
	phraseNotCalledToInspect = "Køretøjet er ikke indkaldt til syn."

	KeyNeverInspected      = "never_inspected"
	KeyCalledForInspection = "called_for_inspection"

	softHyphen = "\u00ad"
)

var (
	selectedTabSel = cascadia.MustCompile("#visKTTabset .h-tab-btns li.selected span.title")
	portletSel     = cascadia.MustCompile(`[id^="` + portletIDPrefix + `"]`)
	identitySel    = cascadia.MustCompile(".bluebox .keyvalue")

	portletKeyReplacer = strings.NewReplacer(":", "_", "-", "_", ".", "_")
	identityKeyCleaner = strings.NewReplacer(softHyphen, "", ":", "", ",", "")
	whitespaceRun      = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
)

// Extractor reads one page snapshot at a time. It holds no per-page state,
// so a single Extractor can be reused.
type Extractor struct {
	logger zerolog.Logger
}

// New creates an Extractor. A nil logger disables logging.
func New(logger *zerolog.Logger) *Extractor {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Extractor{logger: l}
}

// ExtractHTML parses r as HTML and extracts it.
func (x *Extractor) ExtractHTML(r io.Reader) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return x.Extract(doc)
}

// ExtractString is ExtractHTML for an in-memory page.
func (x *Extractor) ExtractString(s string) (Record, error) {
	return x.ExtractHTML(strings.NewReader(s))
}

// Extract reads the selected tab, its portlet fields and the identity panel
// from doc. The only reported failure is ErrTabNotFound; any other missing
// piece is left out of the record.
func (x *Extractor) Extract(doc *goquery.Document) (Record, error) {
	tab, err := x.SelectedTab(doc)
	if err != nil {
		return nil, err
	}

	out := Record{}

	if tab == TabInspection {
		body, _ := doc.Find("body").Html()
		out[KeyNeverInspected] = strings.Contains(body, phraseNeverInspected)
		out[KeyCalledForInspection] = !strings.Contains(body, phraseNotCalledToInspect)
	}

	if tab.HasPortletFields() {
		x.extractPortlets(doc, out)
	}

	x.extractIdentity(doc, out)

	x.logger.Debug().
		Str("tab", tab.String()).
		Int("keys", len(out)).
		Msg("Extraction completed")

	return out, nil
}

// SelectedTab classifies the tab currently selected on the page.
func (x *Extractor) SelectedTab(doc *goquery.Document) (Tab, error) {
	titles := doc.FindMatcher(selectedTabSel)
	if titles.Length() == 0 {
		x.logger.Debug().Msg("No selected tab on page")
		return TabUnknown, ErrTabNotFound
	}

	title := titles.First().Text()
	tab := ClassifyTab(title)
	x.logger.Debug().
		Str("title", strings.TrimSpace(title)).
		Str("tab", tab.String()).
		Msg("Classified selected tab")
	return tab, nil
}

func (x *Extractor) extractPortlets(doc *goquery.Document, out Record) {
	fields := 0
	doc.FindMatcher(portletSel).Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		key := PortletKey(id)
		if strings.Contains(key, historyFieldTag) {
			return
		}
		value, ok := ResolveValueFor(NewNode(sel.Get(0)))
		if !ok {
			return
		}
		out[key] = value
		fields++
	})
	x.logger.Debug().Int("fields", fields).Msg("Portlet fields extracted")
}

func (x *Extractor) extractIdentity(doc *goquery.Document, out Record) {
	doc.FindMatcher(identitySel).Each(func(_ int, sel *goquery.Selection) {
		node := NewNode(sel.Get(0))
		title, ok := ResolveTitleFor(node)
		if !ok {
			return
		}
		children := node.Children()
		if len(children) == 0 {
			return
		}

		var key, value *string
		for _, c := range children {
			if c.Tag() != "span" {
				continue
			}
			if key == nil && c.HasClass("key") {
				k := strings.TrimSpace(c.Text())
				key = &k
			}
			if value == nil && c.HasClass("value") {
				v := strings.TrimSpace(c.Text())
				value = &v
			}
		}
		if key == nil || value == nil {
			return
		}

		out.Group(CleanTitle(title))[CleanIdentityKey(*key)] = *value
	})
}

// PortletKey derives the output key of a portlet field from its element id.
func PortletKey(id string) string {
	return portletKeyReplacer.Replace(id)
}

// CleanTitle trims an identity heading and drops soft hyphens.
func CleanTitle(title string) string {
	return strings.ReplaceAll(strings.TrimSpace(title), softHyphen, "")
}

// CleanIdentityKey drops soft hyphens, colons and commas and joins words with underscores.
func CleanIdentityKey(key string) string {
	return whitespaceRun.ReplaceAllString(identityKeyCleaner.Replace(key), "_")
}

var defaultExtractor = New(nil)

// Extract runs a non-logging Extractor over doc.
func Extract(doc *goquery.Document) (Record, error) {
	return defaultExtractor.Extract(doc)
}
