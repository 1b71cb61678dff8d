package metrics

import (
	"context"
	"log"
	"time"

	"tradebook-backend/internal/repositories"

	"github.com/robfig/cron/v3"
)

// MetricsUpdater refreshes the business gauges on a cron schedule
type MetricsUpdater struct {
	metrics *Metrics
	repos   *repositories.Repositories
	cron    *cron.Cron
	spec    string
}

// NewMetricsUpdater creates a new metrics updater. The spec is a standard
// cron expression; empty defaults to once a minute.
func NewMetricsUpdater(metrics *Metrics, repos *repositories.Repositories, spec string) *MetricsUpdater {
	if spec == "" {
		spec = "* * * * *"
	}
	return &MetricsUpdater{
		metrics: metrics,
		repos:   repos,
		cron:    cron.New(),
		spec:    spec,
	}
}

// Start refreshes the gauges immediately, then on every cron tick
func (u *MetricsUpdater) Start() error {
	u.updateMetrics()

	if _, err := u.cron.AddFunc(u.spec, u.updateMetrics); err != nil {
		return err
	}
	u.cron.Start()
	return nil
}

// Stop stops the refresh schedule
func (u *MetricsUpdater) Stop() {
	u.cron.Stop()
}

func (u *MetricsUpdater) updateMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	users, err := u.repos.User.Count(ctx)
	if err != nil {
		log.Printf("metrics: failed to count users: %v", err)
		return
	}
	trades, err := u.repos.Trade.Count(ctx)
	if err != nil {
		log.Printf("metrics: failed to count trades: %v", err)
		return
	}
	collections, err := u.repos.Collection.Count(ctx)
	if err != nil {
		log.Printf("metrics: failed to count collections: %v", err)
		return
	}

	u.metrics.UpdateBusinessMetrics(users, trades, collections)
}
