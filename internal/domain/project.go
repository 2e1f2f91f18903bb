package domain

// ProjectSpec describes a project to scaffold.
type ProjectSpec struct {
	Root         string
	Name         string
	Language     string
	ComputerName string
}
