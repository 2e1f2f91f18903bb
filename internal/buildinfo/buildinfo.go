package buildinfo

import (
	"fmt"

	"github.com/aalvaropc/vexmason/internal/domain"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("vexmason %s (commit=%s, date=%s, config=%s)", Version, Commit, Date, domain.CurrentConfigVersion)
}
