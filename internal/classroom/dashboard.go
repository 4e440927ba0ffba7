package classroom

import "fmt"

// Tab identifies a dashboard section.
type Tab string

const (
	TabStudents Tab = "students"
	TabGallery  Tab = "gallery"
	TabSlides   Tab = "slides"
)

// Tabs lists the dashboard sections in display order.
var Tabs = []Tab{TabStudents, TabGallery, TabSlides}

// Dashboard is the admin dashboard state. Tab selection is local and never persisted.
type Dashboard struct {
	active Tab
}

// NewDashboard opens on the students tab.
func NewDashboard() *Dashboard {
	return &Dashboard{active: TabStudents}
}

// Active returns the selected tab.
func (d *Dashboard) Active() Tab {
	return d.active
}

// Select switches tabs.
func (d *Dashboard) Select(tab Tab) error {
	for _, t := range Tabs {
		if t == tab {
			d.active = tab
			return nil
		}
	}
	return fmt.Errorf("unknown tab %q", tab)
}
