package store

import (
	"context"
	"fmt"

	"github.com/verte-zerg/typeboard/internal/model"
)

// OpenRepository opens the repository selected by cfg.Driver.
func OpenRepository(ctx context.Context, cfg model.StoreConfig) (Repository, error) {
	switch cfg.Driver {
	case "", model.DriverSQLite:
		if cfg.Path == "" {
			return nil, fmt.Errorf("sqlite path is empty")
		}
		return Open(cfg.Path)
	case model.DriverMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q (valid: %s, %s)", cfg.Driver, model.DriverSQLite, model.DriverMongo)
	}
}

var (
	_ Repository = (*Store)(nil)
	_ Repository = (*MongoStore)(nil)
)
