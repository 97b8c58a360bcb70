// Package navigation holds the menu state shared by every page.
package navigation

const (
	// SectionLibrary is the file listing and upload page.
	SectionLibrary = "library"

	// SectionSettings is the network settings page.
	SectionSettings = "settings"
)

// MenuItem is one entry of the top menu.
type MenuItem struct {
	Title   string
	URL     string
	Section string
}

// Menu lists the top menu entries in display order.
var Menu = []MenuItem{ //nolint:gochecknoglobals
	{Title: "Library", URL: "/", Section: SectionLibrary},
	{Title: "Settings", URL: "/settings", Section: SectionSettings},
}

// Context represents the navigation context for a page.
type Context struct {
	PageTitle     string
	ActiveSection string
	Items         []MenuItem
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		Items:         Menu,
	}
}

// IsActive checks if the given section is the current one.
func (c *Context) IsActive(section string) bool {
	return c.ActiveSection == section
}
