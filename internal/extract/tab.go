package extract

import "strings"

// Tab identifies the registry section that is currently selected in the tab bar.
type Tab string

const (
	TabVehicle          Tab = "vehicle"
	TabTechnicalDetails Tab = "technical_details"
	TabInspection       Tab = "inspection"
	TabInsurance        Tab = "insurance"
	TabPermissions      Tab = "permissions"
	TabUnknown          Tab = "unknown"
)

// tabLabels is checked in order; the first label contained in the tab title wins.
var tabLabels = []struct {
	label string
	tab   Tab
}{
	{"Køretøj", TabVehicle},
	{"Tekniske oplysninger", TabTechnicalDetails},
	{"Syn", TabInspection},
	{"Forsikring", TabInsurance},
	{"tilladelser", TabPermissions},
}

// ClassifyTab maps the visible title of the selected tab to a Tab.
func ClassifyTab(title string) Tab {
	for _, l := range tabLabels {
		if strings.Contains(title, l.label) {
			return l.tab
		}
	}
	return TabUnknown
}

// HasPortletFields reports whether the tab lays its data out as portlet label/value rows.
func (t Tab) HasPortletFields() bool {
	switch t {
	case TabVehicle, TabTechnicalDetails, TabInspection:
		return true
	}
	return false
}

func (t Tab) String() string {
	return string(t)
}
