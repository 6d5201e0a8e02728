package dashboard

import "strings"

// Tab identifies one dashboard section.
type Tab int

const (
	Overview Tab = iota
	Leaves
	Timesheets
	Allocations
	Profile
)

// AllTabs lists every tab in display order.
var AllTabs = []Tab{Overview, Leaves, Timesheets, Allocations, Profile}

var tabNames = [...]string{"Overview", "Leaves", "Timesheets", "Allocations", "Profile"}

func (t Tab) String() string {
	if !t.Valid() {
		return "Unknown"
	}
	return tabNames[t]
}

// Valid reports whether t is one of the defined tabs.
func (t Tab) Valid() bool {
	return t >= Overview && t <= Profile
}

// ParseTab resolves a tab by case-insensitive name.
func ParseTab(name string) (Tab, bool) {
	name = strings.TrimSpace(name)
	for _, t := range AllTabs {
		if strings.EqualFold(name, t.String()) {
			return t, true
		}
	}
	return Overview, false
}

// TabController tracks the active tab. The zero value starts on Overview.
type TabController struct {
	active Tab
}

// Active returns the selected tab.
func (c *TabController) Active() Tab { return c.active }

// Select activates t. Values outside the enumeration are ignored.
func (c *TabController) Select(t Tab) bool {
	if !t.Valid() {
		return false
	}
	c.active = t
	return true
}

// Next moves to the following tab, wrapping around.
func (c *TabController) Next() Tab {
	c.active = (c.active + 1) % Tab(len(AllTabs))
	return c.active
}

// Prev moves to the preceding tab, wrapping around.
func (c *TabController) Prev() Tab {
	c.active = (c.active + Tab(len(AllTabs)) - 1) % Tab(len(AllTabs))
	return c.active
}
