package ports

import (
	"context"

	"github.com/aalvaropc/vexmason/internal/domain"
)

// Compiler runs the external source transform. When req.Output is empty the
// transformed text is returned with ok=true.
type Compiler interface {
	Compile(ctx context.Context, req domain.CompileRequest) (text string, ok bool, err error)
}
