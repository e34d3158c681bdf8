package types

// Project types reported by project detection.
const (
	ProjectTypeNode    = "Node.js"
	ProjectTypeStatic  = "Static"
	ProjectTypeUnknown = ""
)

// ProjectType describes how a detected project is set up and run.
// The zero value means the project shape was not recognized.
type ProjectType struct {
	Type            string `json:"type"`
	SetupCommand    string `json:"setupCommand"`
	FollowupMessage string `json:"followupMessage"`
}

// IsRecognized reports whether detection matched a known project shape.
func (p ProjectType) IsRecognized() bool {
	return p.Type != ProjectTypeUnknown
}
