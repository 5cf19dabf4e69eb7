package build

import (
	"log/slog"

	"github.com/starford/sowilo/internal/vcs"
)

func newDater(s Settings, logger *slog.Logger) *vcs.Dater {
	if !s.UseGit {
		return vcs.NewDater(nil)
	}
	return vcs.NewDater(vcs.Open(s.SourceDir, logger))
}
