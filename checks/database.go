package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/sitehealth/health"
)

// DefaultLatencyThreshold applies when no latency threshold is configured.
const DefaultLatencyThreshold = 250 * time.Millisecond

// DatabaseConnection runs a trivial query against the site database.
type DatabaseConnection struct {
	health.Base
	db health.Optional[health.Database]
}

// NewDatabaseConnection creates the core.database_connection check.
func NewDatabaseConnection(db health.Optional[health.Database]) *DatabaseConnection {
	return &DatabaseConnection{
		Base: health.NewBase(ProviderSlug, "database_connection", health.CategoryDatabase, "Database connection"),
		db:   db,
	}
}

// Perform executes SELECT 1.
func (c *DatabaseConnection) Perform(ctx context.Context) (health.Result, error) {
	db, err := c.db.Require("database")
	if err != nil {
		return health.Result{}, err
	}

	if _, err := db.ExecContext(ctx, "SELECT 1"); err != nil {
		return c.Critical(fmt.Sprintf("The database connection failed: %v", err)), nil
	}
	return c.Good("The database connection is working correctly."), nil
}

// DatabaseLatency pings the site database and compares the round trip with
// a threshold.
type DatabaseLatency struct {
	health.Base
	db        health.Optional[health.Database]
	threshold time.Duration
	since     func(time.Time) time.Duration
}

// NewDatabaseLatency creates the core.database_latency check. A
// non-positive threshold uses DefaultLatencyThreshold.
func NewDatabaseLatency(db health.Optional[health.Database], threshold time.Duration) *DatabaseLatency {
	if threshold <= 0 {
		threshold = DefaultLatencyThreshold
	}
	return &DatabaseLatency{
		Base:      health.NewBase(ProviderSlug, "database_latency", health.CategoryDatabase, "Database latency"),
		db:        db,
		threshold: threshold,
		since:     time.Since,
	}
}

// Perform pings the database.
func (c *DatabaseLatency) Perform(ctx context.Context) (health.Result, error) {
	db, err := c.db.Require("database")
	if err != nil {
		return health.Result{}, err
	}

	start := time.Now()
	if err := db.PingContext(ctx); err != nil {
		return c.Critical(fmt.Sprintf("The database did not answer a ping: %v", err)), nil
	}

	if c.since(start) > c.threshold {
		return c.Warning(fmt.Sprintf("The database answers slower than %s. Pages that query it will be slow.", c.threshold)), nil
	}
	return c.Good(fmt.Sprintf("The database answers within %s.", c.threshold)), nil
}
