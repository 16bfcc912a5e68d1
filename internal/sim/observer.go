package sim

import (
	"github.com/charmbracelet/log"
	"github.com/san-kum/marblebox/internal/physics"
)

// ContactLogger logs every step that resolved at least one contact, at
// debug level.
type ContactLogger struct {
	logger *log.Logger
}

func NewContactLogger(l *log.Logger) *ContactLogger {
	return &ContactLogger{logger: l}
}

func (c *ContactLogger) OnStep(tick uint64, w *physics.World) {
	n := w.Contacts()
	if n == 0 {
		return
	}
	c.logger.Debug("contacts", "tick", tick, "count", n, "energy", w.KineticEnergy())
}
