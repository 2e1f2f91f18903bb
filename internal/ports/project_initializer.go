package ports

import "github.com/aalvaropc/vexmason/internal/domain"

type ProjectInitializer interface {
	Init(spec domain.ProjectSpec, force bool) error
}
