package job

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs on a five-field cron schedule.
type ScheduledTask interface {
	Name() string
	Schedule() string
	Handle(ctx context.Context) error
}

// executor runs a task with a raw payload.
type executor func(ctx context.Context, payload json.RawMessage) error

func scheduled(t ScheduledTask) executor {
	return func(ctx context.Context, _ json.RawMessage) error { return t.Handle(ctx) }
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// cronSchedule adapts a cron schedule to river.PeriodicSchedule.
type cronSchedule struct{ cron.Schedule }

func (s cronSchedule) Next(t time.Time) time.Time { return s.Schedule.Next(t) }

func parseSchedule(expr string) (cronSchedule, error) {
	s, err := cronParser.Parse(expr)
	if err != nil {
		return cronSchedule{}, errors.Join(ErrInvalidSchedule, err)
	}
	return cronSchedule{s}, nil
}
