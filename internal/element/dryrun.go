package element

import (
	"log/slog"

	"github.com/notishift/notishift/internal/geometry"
)

// dryRunAccessor passes reads through to the wrapped Accessor but logs
// position writes instead of applying them.
type dryRunAccessor struct {
	Accessor
	logger *slog.Logger
}

// NewDryRun wraps acc so that SetPosition only logs the would-be move.
func NewDryRun(acc Accessor, logger *slog.Logger) Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &dryRunAccessor{Accessor: acc, logger: logger}
}

func (d *dryRunAccessor) SetPosition(h Handle, p geometry.Point) error {
	d.logger.Info("dry-run: would move element", "x", p.X, "y", p.Y)
	return nil
}
