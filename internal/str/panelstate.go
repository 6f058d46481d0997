//    HipparchiaTopicRuns
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package str

const (
	LEFT  = "left"
	RIGHT = "right"
)

// PanelState - which run a panel shows; owned by whoever drives the panel (a viewer session, the report command)
type PanelState struct {
	Side     string
	RunIndex int
}

// ViewerSession - one browser's pair of panels
type ViewerSession struct {
	ID    string
	Left  PanelState
	Right PanelState
}

// Panel - the state for one side
func (s ViewerSession) Panel(side string) (PanelState, bool) {
	switch side {
	case LEFT:
		return s.Left, true
	case RIGHT:
		return s.Right, true
	default:
		return PanelState{}, false
	}
}

// WithPanel - a copy of the session with one side replaced
func (s ViewerSession) WithPanel(ps PanelState) ViewerSession {
	switch ps.Side {
	case LEFT:
		s.Left = ps
	case RIGHT:
		s.Right = ps
	}
	return s
}
