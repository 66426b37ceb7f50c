package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/index"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/market"
	"github.com/MrSnakeDoc/marketboard/internal/store"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	AllowedHosts   []string           // Host headers allowed on /api routes
	AllowedCIDRS   []string           // client IPs/CIDRs allowed on every route
	TrustProxy     bool               // true if running behind a trusted reverse proxy
	Market         *market.Service    // listing commands and views
	Slot           store.Slot         // persistence slot, probed by readyz/infra
	MemoryIndex    *index.MemoryIndex // committed listing sequence
	Backend        string             // "file" | "redis"
	MaxImportBytes int64              // request body limit for POST /api/import
	ReloadTrigger  chan struct{}      // manual slot reload; nil disables POST /api/reload
	WriteBurst     int                // per-client burst on write routes (0 = no limit)
	WritePerMin    int                // per-client refill on write routes
	// WriteLimit is shared by every write route; NewRouter builds it from
	// WriteBurst/WritePerMin when nil.
	WriteLimit func(http.Handler) http.Handler
}
