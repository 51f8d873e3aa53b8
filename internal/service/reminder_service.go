package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// ReminderService builds per-user digests of overdue and soon-due tasks.
// There is no delivery channel; the scheduler logs the digest.
type ReminderService struct {
	taskRepo *repository.TaskRepository
	window   time.Duration
}

func NewReminderService(taskRepo *repository.TaskRepository, window time.Duration) *ReminderService {
	return &ReminderService{taskRepo: taskRepo, window: window}
}

// Digest returns one summary line block per user who has overdue tasks
// or tasks due within the reminder window, sorted by username.
func (s *ReminderService) Digest(ctx context.Context, now time.Time) ([]string, error) {
	overdue, err := s.taskRepo.ListOverdue(ctx, now)
	if err != nil {
		return nil, err
	}
	dueSoon, err := s.taskRepo.ListDueBetween(ctx, now, now.Add(s.window))
	if err != nil {
		return nil, err
	}

	type bucket struct {
		username string
		overdue  []model.Task
		dueSoon  []model.Task
	}
	buckets := make(map[uint]*bucket)
	ensure := func(task model.Task) *bucket {
		b, ok := buckets[task.UserID]
		if !ok {
			b = &bucket{username: fmt.Sprintf("user %d", task.UserID)}
			if task.User != nil {
				b.username = task.User.Username
			}
			buckets[task.UserID] = b
		}
		return b
	}
	for _, task := range overdue {
		b := ensure(task)
		b.overdue = append(b.overdue, task)
	}
	for _, task := range dueSoon {
		b := ensure(task)
		b.dueSoon = append(b.dueSoon, task)
	}

	ordered := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].username < ordered[j].username })

	var digests []string
	for _, b := range ordered {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s: %d overdue, %d due within %s", b.username, len(b.overdue), len(b.dueSoon), s.window)
		for _, task := range b.overdue {
			fmt.Fprintf(&sb, "\n  overdue: %q (due %s)", task.Title, task.DueDate.Format("2006-01-02"))
		}
		for _, task := range b.dueSoon {
			fmt.Fprintf(&sb, "\n  due soon: %q (due %s)", task.Title, task.DueDate.Format("2006-01-02"))
		}
		digests = append(digests, sb.String())
	}
	return digests, nil
}
