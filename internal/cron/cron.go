package cron

import (
	"context"
	"sync"
	"time"

	"github.com/caarlos0/env/v6"
	cronv3 "github.com/robfig/cron/v3"

	"github.com/alex-pober/actslaw-rag/config"
	"github.com/alex-pober/actslaw-rag/interfaces"
	cron_config "github.com/alex-pober/actslaw-rag/internal/cron/config"
	"github.com/alex-pober/actslaw-rag/internal/logger"
	"github.com/alex-pober/actslaw-rag/internal/tracing"
)

const groupContent = "content"

var jobLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{
	locks: map[string]*sync.Mutex{
		groupContent: new(sync.Mutex),
	},
}

// CronManager owns the background jobs of the service. The one job that
// matters is the render-handle janitor: viewers are expected to release
// handles after streaming, but a closed tab or crashed client leaks
// them, and leaked handles pin document bytes in memory.
type CronManager struct {
	cfg     *config.Config
	log     logger.Logger
	cron    *cronv3.Cron
	stopCh  chan struct{}
	jobIDs  map[string]cronv3.EntryID
	handles interfaces.RenderHandleStore
}

func NewCronManager(cfg *config.Config, log logger.Logger, handles interfaces.RenderHandleStore) *CronManager {
	return &CronManager{
		cfg:     cfg,
		log:     log,
		stopCh:  make(chan struct{}),
		jobIDs:  make(map[string]cronv3.EntryID),
		handles: handles,
	}
}

// Start initializes and starts the cron scheduler.
func (cm *CronManager) Start() {
	cm.log.Info("Starting cron manager")
	cronOptions := []cronv3.Option{
		cronv3.WithSeconds(),
		cronv3.WithChain(
			cronv3.SkipIfStillRunning(cronv3.DefaultLogger),
			cronv3.Recover(cronv3.DefaultLogger),
		),
	}
	c := cronv3.New(cronOptions...)
	cm.registerJobs(c)
	c.Start()
	cm.cron = c
}

// Stop gracefully stops the cron manager.
func (cm *CronManager) Stop() {
	if cm.cron != nil {
		cm.log.Info("Stopping cron manager")
		ctx := cm.cron.Stop()
		<-ctx.Done()
	}
	close(cm.stopCh)
}

func (cm *CronManager) registerJobs(c *cronv3.Cron) {
	var cronConfig cron_config.Config
	if err := env.Parse(&cronConfig); err != nil {
		cm.log.Fatalf("Failed to parse cron config from environment: %v", err)
	}

	if cronConfig.CronScheduleHandleJanitor != "" {
		id, err := c.AddFunc(cronConfig.CronScheduleHandleJanitor, func() {
			defer tracing.RecoverAndLogToJaeger(cm.log)
			jobLocks.locks[groupContent].Lock()
			defer jobLocks.locks[groupContent].Unlock()
			cm.sweepExpiredHandles()
		})
		if err != nil {
			cm.log.Fatalf("Could not add handle janitor cron job: %v", err)
		}
		cm.jobIDs["handle_janitor"] = id
		cm.log.Infof("Registered handle janitor job with schedule: %s", cronConfig.CronScheduleHandleJanitor)
	}
}

func (cm *CronManager) sweepExpiredHandles() {
	ctx := context.Background()

	span, _ := tracing.StartTracerSpan(ctx, "CronManager.sweepExpiredHandles")
	defer span.Finish()
	tracing.TagComponentCronJob(span)

	ttl := time.Duration(cm.cfg.ContentConfig.HandleTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	released := cm.handles.ReleaseExpired(ttl)
	span.LogKV("released", released, "remaining", cm.handles.Len())
	if released > 0 {
		cm.log.Infof("Handle janitor released %d expired render handles", released)
	}
}
