package styles

// Symbols holds the status markers used by ls and status.
type Symbols struct {
	Active   string
	Saved    string
	Running  string
	Stopped  string
	NotFound string
}

var defaultSymbols = Symbols{
	Active:   "●",
	Saved:    "○",
	Running:  "▶",
	Stopped:  "■",
	NotFound: "✕",
}

var nerdfontSymbols = Symbols{
	Active:   "", // nf-oct-container
	Saved:    "", // nf-oct-package
	Running:  "", // nf-fa-play
	Stopped:  "", // nf-fa-stop
	NotFound: "", // nf-oct-x
}

var currentSymbols = defaultSymbols

// SetNerdfont switches between the ASCII-safe and nerd font symbol sets.
func SetNerdfont(enabled bool) {
	if enabled {
		currentSymbols = nerdfontSymbols
	} else {
		currentSymbols = defaultSymbols
	}
}

// CurrentSymbols returns the current symbol set
func CurrentSymbols() Symbols {
	return currentSymbols
}

// FormatContainerState renders a container state with its symbol and color.
// Known states are "running", "stopped" and "not created".
func FormatContainerState(state string) string {
	switch state {
	case "running":
		return SuccessStyle.Render(currentSymbols.Running + " running")
	case "stopped", "exited", "created", "paused":
		return WarningStyle.Render(currentSymbols.Stopped + " " + state)
	case "":
		return ""
	default:
		return MutedStyle.Render(currentSymbols.NotFound + " " + state)
	}
}

// FormatActive renders the marker for an instance row.
func FormatActive(active bool) string {
	if active {
		return AccentStyle.Render(currentSymbols.Active)
	}
	return MutedStyle.Render(currentSymbols.Saved)
}
