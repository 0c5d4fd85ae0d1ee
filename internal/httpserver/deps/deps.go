package deps

import (
	"time"

	"github.com/flarehq/flare/internal/catalog"
	"github.com/flarehq/flare/internal/logger"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	Catalog        *catalog.Service // catalog reads, CRUD, reorder
	RefreshTrigger chan struct{}    // manual discovery refresh (nil if scheduler disabled)
}
