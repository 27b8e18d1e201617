// File: /jobs/announcement_expiry_job.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"etkinlik-api/repositories"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// AnnouncementExpiryJob switches off announcements whose end date has passed,
// so the active flag shown in the admin panel matches what users see.
type AnnouncementExpiryJob struct {
	announcements *repositories.AnnouncementRepository
	log           *logrus.Logger
	cron          *cron.Cron
	schedule      string
	now           func() time.Time
}

func NewAnnouncementExpiryJob(announcements *repositories.AnnouncementRepository, schedule string, log *logrus.Logger) *AnnouncementExpiryJob {
	return &AnnouncementExpiryJob{
		announcements: announcements,
		log:           log,
		cron:          cron.New(),
		schedule:      schedule,
		now:           time.Now,
	}
}

// Start registers the schedule, runs one pass immediately and starts the scheduler.
func (j *AnnouncementExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return fmt.Errorf("invalid announcement expiry schedule %q: %w", j.schedule, err)
	}
	j.Run()
	j.cron.Start()
	j.log.WithField("schedule", j.schedule).Info("announcement expiry job started")
	return nil
}

// Stop waits for a running pass to finish.
func (j *AnnouncementExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info("announcement expiry job stopped")
}

func (j *AnnouncementExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.announcements.DeactivateExpired(ctx, j.now())
	if err != nil {
		j.log.WithError(err).Error("announcement expiry failed")
		return
	}
	if n > 0 {
		j.log.WithField("deactivated", n).Info("expired announcements deactivated")
	}
}
