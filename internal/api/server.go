package api

import (
	"context"

	"github.com/vytor/wordflash/internal/services"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	WordService   services.WordService
	StatsService  services.StatsService
	ImportService services.ImportService
	DB            Pinger
}
