package signals

import (
	"strings"

	"admission-assistant-be/internal/constant"
)

// Signals are the control flags a model reply can carry as literal marker
// lines (COMPLETION_STATUS=..., SHOW_REGISTER_BUTTON=...). Missing markers
// default to false.
type Signals struct {
	CompletionStatus   bool
	ShowRegisterButton bool
}

// Extract scans responseText line by line for the marker substrings. The
// line-scoped scan tolerates markers buried anywhere in a verbose reply
// without being confused by lookalike substrings inside prose; the last
// matching line wins when a marker is duplicated.
func Extract(responseText string) Signals {
	var s Signals
	for _, line := range strings.Split(responseText, "\n") {
		if v, ok := markerValue(line, constant.CompletionStatusMarker); ok {
			s.CompletionStatus = v
		}
		if v, ok := markerValue(line, constant.ShowRegisterButtonMarker); ok {
			s.ShowRegisterButton = v
		}
	}
	return s
}

// Strip removes marker lines from responseText so control tokens never leak
// into the user-visible transcript.
func Strip(responseText string) string {
	lines := strings.Split(responseText, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := markerValue(line, constant.CompletionStatusMarker); ok {
			continue
		}
		if _, ok := markerValue(line, constant.ShowRegisterButtonMarker); ok {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func markerValue(line, marker string) (bool, bool) {
	if strings.Contains(line, marker+"=true") {
		return true, true
	}
	if strings.Contains(line, marker+"=false") {
		return false, true
	}
	return false, false
}
