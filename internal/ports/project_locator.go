package ports

// ProjectLocator finds a managed project root starting from an arbitrary path.
type ProjectLocator interface {
	FindRoot(start string) (string, error)
}
