package models

// StackEntry is one technology shown in the "tech stack" strip.
type StackEntry struct {
	Name string
	SVG  string
	Spin bool
}
