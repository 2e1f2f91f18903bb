package usecase

import (
	"path/filepath"
	"testing"

	"github.com/aalvaropc/vexmason/internal/domain"
)

type recordingInitializer struct {
	spec  domain.ProjectSpec
	force bool
}

func (r *recordingInitializer) Init(spec domain.ProjectSpec, force bool) error {
	r.spec, r.force = spec, force
	return nil
}

func TestInitProject_Defaults(t *testing.T) {
	rec := &recordingInitializer{}
	root := filepath.Join(t.TempDir(), "claw-bot")

	if err := NewInitProject(rec).Execute(domain.ProjectSpec{Root: root}, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.spec.Name != "claw-bot" || rec.spec.Language != "python" || rec.spec.ComputerName != domain.UnknownComputer {
		t.Fatalf("unexpected defaults %+v", rec.spec)
	}
	if !rec.force {
		t.Fatalf("expected force to be forwarded")
	}
}
