package scheduler

import (
	"context"
	"fmt"
	"time"

	"subscription_notifier/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// JobScheduler owns the process-wide cron engine. It is constructed once at
// boot and stopped on shutdown; a missed trigger (process down) is simply
// skipped, there is no catch-up. Each trigger runs its job synchronously on
// the cron goroutine.
type JobScheduler struct {
	cronEngine   *cron.Cron
	notifService *app.NotificationService
	reportSvc    *app.ReportService
	logger       *logrus.Logger
	location     *time.Location
	notifySpec   string
	reportSpec   string
}

func NewJobScheduler(
	notifService *app.NotificationService,
	reportSvc *app.ReportService,
	logger *logrus.Logger,
	timezone string, // IANA name governing trigger evaluation
	notifyHour, notifyMinute int,
	reportHour, reportMinute int,
) (*JobScheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", timezone, err)
	}

	return &JobScheduler{
		cronEngine:   cron.New(cron.WithLocation(location)),
		notifService: notifService,
		reportSvc:    reportSvc,
		logger:       logger,
		location:     location,
		notifySpec:   fmt.Sprintf("%d %d * * *", notifyMinute, notifyHour),
		reportSpec:   fmt.Sprintf("%d %d * * *", reportMinute, reportHour),
	}, nil
}

func (s *JobScheduler) Start() error {
	s.logger.Info("Starting job scheduler...")

	// Daily reminder run
	_, err := s.cronEngine.AddFunc(s.notifySpec, func() {
		s.logger.Info("Cron job triggered for expiration reminders.")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if _, err := s.notifService.RunDaily(ctx, time.Now().In(s.location)); err != nil {
			// Store failure: this run is lost, the process stays up and the
			// next trigger proceeds normally.
			s.logger.Errorf("Reminder run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("adding reminder cron job (%s): %w", s.notifySpec, err)
	}

	// Daily report snapshot
	_, err = s.cronEngine.AddFunc(s.reportSpec, func() {
		s.logger.Info("Cron job triggered for daily report.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if _, err := s.reportSvc.Generate(ctx, app.ReportKindDaily, time.Now().In(s.location)); err != nil {
			s.logger.Errorf("Daily report generation failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("adding report cron job (%s): %w", s.reportSpec, err)
	}

	s.cronEngine.Start()
	s.logger.Infof("Job scheduler started: reminders at %q, daily report at %q (%s).",
		s.notifySpec, s.reportSpec, s.location)
	return nil
}

func (s *JobScheduler) Stop() {
	s.logger.Info("Stopping job scheduler...")
	ctx := s.cronEngine.Stop() // Stops new triggers, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Job scheduler gracefully stopped.")
}
