package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwrk-planet/activity-service/internal/domain"
	"github.com/cwrk-planet/activity-service/internal/metrics"
)

type ActivityRepository interface {
	List(ctx context.Context) (map[string]domain.Activity, error)
	Get(ctx context.Context, name string) (domain.Activity, error)
	// Join and Leave call commit, when non-nil, before the activity is
	// unlocked; commits for one activity run in mutation order.
	Join(ctx context.Context, name, email string, commit func(domain.Activity)) (domain.Activity, error)
	Leave(ctx context.Context, name, email string, commit func(domain.Activity)) (domain.Activity, error)
}

// Notifier receives roster changes after a successful signup or unregister.
// Publish runs while the activity is locked and must not call back into the service.
type Notifier interface {
	Publish(ev RosterEvent)
}

const unknownActivity = "unknown"

const (
	EventSignedUp     = "participant_signed_up"
	EventUnregistered = "participant_unregistered"
)

type RosterEvent struct {
	Type         string
	Activity     string
	Email        string
	Participants []string
}

type Confirmation struct {
	Activity string
	Email    string
	action   string
}

func (c Confirmation) Message() string {
	return c.Email + " " + c.action + " " + c.Activity
}

type SignupService struct {
	repo     ActivityRepository
	notifier Notifier
}

func NewSignupService(repo ActivityRepository) *SignupService {
	return &SignupService{repo: repo}
}

func (s *SignupService) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *SignupService) ListActivities(ctx context.Context) (map[string]domain.Activity, error) {
	return s.repo.List(ctx)
}

func (s *SignupService) GetActivity(ctx context.Context, name string) (domain.Activity, error) {
	return s.repo.Get(ctx, name)
}

// Signup adds email to the activity roster.
func (s *SignupService) Signup(ctx context.Context, name, email string) (*Confirmation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		err := s.requireEmail(ctx, name)
		metrics.Signups.WithLabelValues(labelFor(name, err), resultOf(err)).Inc()
		return nil, fmt.Errorf("join %q: %w", name, err)
	}

	a, err := s.repo.Join(ctx, name, email, s.committer(EventSignedUp, name, email))
	if err != nil {
		metrics.Signups.WithLabelValues(labelFor(name, err), resultOf(err)).Inc()
		slog.DebugContext(ctx, "signup rejected", "activity", name, "email", email, "err", err)
		return nil, fmt.Errorf("join %q: %w", name, err)
	}

	metrics.Signups.WithLabelValues(name, metrics.ResultOK).Inc()
	slog.InfoContext(ctx, "student signed up", "activity", name, "email", email,
		"participants", len(a.Participants), "max", a.MaxParticipants)

	return &Confirmation{Activity: name, Email: email, action: "signed up for"}, nil
}

// Unregister removes email from the activity roster.
func (s *SignupService) Unregister(ctx context.Context, name, email string) (*Confirmation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		err := s.requireEmail(ctx, name)
		metrics.Unregistrations.WithLabelValues(labelFor(name, err), resultOf(err)).Inc()
		return nil, fmt.Errorf("leave %q: %w", name, err)
	}

	a, err := s.repo.Leave(ctx, name, email, s.committer(EventUnregistered, name, email))
	if err != nil {
		metrics.Unregistrations.WithLabelValues(labelFor(name, err), resultOf(err)).Inc()
		slog.DebugContext(ctx, "unregister rejected", "activity", name, "email", email, "err", err)
		return nil, fmt.Errorf("leave %q: %w", name, err)
	}

	metrics.Unregistrations.WithLabelValues(name, metrics.ResultOK).Inc()
	slog.InfoContext(ctx, "student unregistered", "activity", name, "email", email,
		"participants", len(a.Participants))

	return &Confirmation{Activity: name, Email: email, action: "unregistered from"}, nil
}

// committer records the new roster size and publishes the event under the activity lock.
func (s *SignupService) committer(typ, name, email string) func(domain.Activity) {
	return func(a domain.Activity) {
		metrics.Participants.WithLabelValues(name).Set(float64(len(a.Participants)))
		if s.notifier != nil {
			s.notifier.Publish(RosterEvent{Type: typ, Activity: name, Email: email, Participants: a.Participants})
		}
	}
}

// requireEmail reports why a request without an email is rejected; an unknown
// activity takes precedence over the missing email.
func (s *SignupService) requireEmail(ctx context.Context, name string) error {
	if _, err := s.repo.Get(ctx, name); err != nil {
		return err
	}
	return domain.ErrEmailRequired
}

// labelFor keeps unknown names out of the label space.
func labelFor(name string, err error) string {
	if errors.Is(err, domain.ErrActivityNotFound) {
		return unknownActivity
	}
	return name
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, domain.ErrAlreadySignedUp):
		return metrics.ResultDuplicate
	case errors.Is(err, domain.ErrNotSignedUp):
		return metrics.ResultNotSignedUp
	case errors.Is(err, domain.ErrActivityFull):
		return metrics.ResultFull
	case errors.Is(err, domain.ErrEmailRequired):
		return metrics.ResultInvalid
	default:
		return metrics.ResultError
	}
}
