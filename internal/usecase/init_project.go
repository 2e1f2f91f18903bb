package usecase

import (
	"path/filepath"
	"strings"

	"github.com/aalvaropc/vexmason/internal/domain"
	"github.com/aalvaropc/vexmason/internal/ports"
)

type InitProject struct {
	initializer ports.ProjectInitializer
}

func NewInitProject(initializer ports.ProjectInitializer) *InitProject {
	return &InitProject{initializer: initializer}
}

// Execute scaffolds a project. The name defaults to the directory name and
// the language to python.
func (uc *InitProject) Execute(spec domain.ProjectSpec, force bool) error {
	if strings.TrimSpace(spec.Name) == "" {
		spec.Name = filepath.Base(filepath.Clean(spec.Root))
	}
	if spec.Language == "" {
		spec.Language = "python"
	}
	if spec.ComputerName == "" {
		spec.ComputerName = domain.UnknownComputer
	}
	return uc.initializer.Init(spec, force)
}
