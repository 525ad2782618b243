package tui

// FoldWidth is the narrowest terminal that shows both panes side by side.
const FoldWidth = 100

// Pane widths when unfolded.
const (
	ApplicationsPaneWidth = 38
	paneGap               = 2
)

// UI element constants
const (
	IndentSpaces        = "  "
	CheckboxUnchecked   = "[ ]"
	CheckboxChecked     = "[✓]"
	CursorMarker        = "> "
	SelectedMarker      = "● "
	WindowControlMarker = "[x]"
	BackMarker          = "‹ Back"
	ResetLabel          = "Reset"
	UnsupportedLabel    = "unsupported"
	EmptyApplications   = "No applications found"
	EmptyPermissions    = "No permissions available"
	PlaceholderSearch   = "Search applications"
	PlaceholderText     = "e.g., ~/Music;xdg-download"
)

// Scrolling behavior constants
const (
	// ScrollOffsetMargin is the minimum number of rows to keep between cursor and viewport edges
	// Similar to vim's 'scrolloff' setting - provides smooth scrolling with buffer zone
	ScrollOffsetMargin = 3

	// chromeLines are the header, search, help and status lines around a pane body.
	chromeLines = 7
)
