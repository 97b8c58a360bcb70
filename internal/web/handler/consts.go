package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// WildcardPath matches every path below the root.
	WildcardPath = "/*"

	// ErrNilFatalLogMsg is used if app, cfg or env pointer is nil.
	ErrNilFatalLogMsg = "app, cfg or env is nil"
)
