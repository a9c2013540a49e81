package background

import (
	"context"
	"fmt"
	"log"
	"time"

	"stockwatch/internal/jobs"

	"github.com/go-co-op/gocron/v2"
)

const stockSweepJobName = "stock-sweep"

// JobScheduler runs the optional catalog sweep
type JobScheduler struct {
	scheduler gocron.Scheduler
	sweep     *jobs.StockSweepService
	interval  time.Duration
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewJobScheduler creates a scheduler with the sweep registered every interval
func NewJobScheduler(sweep *jobs.StockSweepService, interval time.Duration) (*JobScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", interval)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobScheduler{
		scheduler: scheduler,
		sweep:     sweep,
		interval:  interval,
		ctx:       ctx,
		cancel:    cancel,
	}
	if err := js.registerJobs(); err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler (stock sweep every %s)", js.interval)
	js.scheduler.Start()
}

// Stop cancels a running sweep and waits for it to return.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

// JobNames lists registered jobs
func (js *JobScheduler) JobNames() []string {
	var names []string
	for _, j := range js.scheduler.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

func (js *JobScheduler) registerJobs() error {
	// a slow sweep is rescheduled rather than overlapped
	_, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.sweep.ScheduledSweep, js.ctx),
		gocron.WithName(stockSweepJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create stock sweep job: %w", err)
	}
	return nil
}
