package service

import (
	"context"
	"reflect"
	"sort"

	"go.uber.org/zap"

	"github.com/tictac1213/JobNotification/config"
	"github.com/tictac1213/JobNotification/internal/model"
	"github.com/tictac1213/JobNotification/internal/repository"
	"github.com/tictac1213/JobNotification/pkg/mailer"
)

// Email preference keys accepted by the audience selector.
const (
	PrefTaskReminders           = "taskReminders"
	PrefNewCompanyNotifications = "newCompanyNotifications"
	PrefApprovalNotifications   = "approvalNotifications"
)

// NotifierService selects audiences and dispatches notification emails.
// Every entry point degrades to "no email sent" on delivery failure; only
// store errors are reported back to the caller, which is expected to log and
// swallow them so a mail problem never fails the triggering operation.
type NotifierService interface {
	CompanyCreated(ctx context.Context, company *model.Company) error
	CompanyUpdated(ctx context.Context, oldCompany, newCompany *model.Company) error
	TaskCreated(ctx context.Context, task *model.Task) error
	StudentApproved(ctx context.Context, user *model.User)
	TaskReminder(ctx context.Context, task *model.Task, company *model.Company, threshold string) error
}

type notifierService struct {
	cfg    *config.Config
	repo   *repository.Repository
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewNotifierService creates the NotifierService.
func NewNotifierService(cfg *config.Config, repo *repository.Repository, m mailer.Mailer, logger *zap.Logger) NotifierService {
	return &notifierService{cfg: cfg, repo: repo, mailer: m, logger: logger}
}

// ────────────────────── Audience selection ──────────────────────

// optedIn reads the user's preference for the given key.
func optedIn(user *model.User, prefKey string) bool {
	switch prefKey {
	case PrefTaskReminders:
		return user.TaskReminders
	case PrefNewCompanyNotifications:
		return user.NewCompanyNotifications
	case PrefApprovalNotifications:
		return user.ApprovalNotifications
	default:
		return false
	}
}

// capCohort keeps the first cap users of the candidate set by registration
// time. The rank is positional within this candidate set, recomputed per
// call, not a stable global registration rank.
func capCohort(candidates []model.User, cap int) []model.User {
	sorted := make([]model.User, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})
	if len(sorted) > cap {
		sorted = sorted[:cap]
	}
	return sorted
}

// selectAudience returns the eligible, registration-capped, opted-in
// recipients for a constraint set. The cohort cap is applied to the eligible
// candidate set before the opt-out filter, so an opted-out user still
// occupies a cohort slot. Empty results are not an error.
func (s *notifierService) selectAudience(ctx context.Context, elig model.Eligibility, prefKey string) ([]model.User, error) {
	candidates, err := s.repo.User.FindEligible(ctx, elig)
	if err != nil {
		return nil, err
	}

	cohort := capCohort(candidates, s.cfg.Scheduler.CohortCap)

	audience := make([]model.User, 0, len(cohort))
	for i := range cohort {
		if optedIn(&cohort[i], prefKey) {
			audience = append(audience, cohort[i])
		}
	}
	return audience, nil
}

// ────────────────────── Dispatch ──────────────────────

// dispatch sends one email to one recipient. Transport failures are logged
// and reported as false, never propagated, so one bad address cannot abort
// a batch.
func (s *notifierService) dispatch(ctx context.Context, user *model.User, subject, body string) bool {
	sendCtx := ctx
	if timeout := s.cfg.Mail.SendTimeout; timeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if err := s.mailer.Send(sendCtx, user.Email, subject, body); err != nil {
		s.logger.Warn("email dispatch failed",
			zap.String("to", user.Email),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return false
	}
	return true
}

// ────────────────────── Event entry points ──────────────────────

func (s *notifierService) CompanyCreated(ctx context.Context, company *model.Company) error {
	audience, err := s.selectAudience(ctx, company.Eligibility, PrefNewCompanyNotifications)
	if err != nil {
		return err
	}

	sent := 0
	for i := range audience {
		subject, body := newCompanyEmail(audience[i].Name, company, s.cfg.Server.FrontendURL)
		if s.dispatch(ctx, &audience[i], subject, body) {
			sent++
		}
	}

	s.logger.Info("new company notifications sent",
		zap.String("company", company.Name),
		zap.Int("audience", len(audience)),
		zap.Int("sent", sent),
	)
	return nil
}

// CompanyUpdated notifies the recomputed audience of the new company state,
// but only when at least one notification-relevant field actually changed.
func (s *notifierService) CompanyUpdated(ctx context.Context, oldCompany, newCompany *model.Company) error {
	if !companyChanged(oldCompany, newCompany) {
		return nil
	}

	audience, err := s.selectAudience(ctx, newCompany.Eligibility, PrefNewCompanyNotifications)
	if err != nil {
		return err
	}

	sent := 0
	for i := range audience {
		subject, body := companyUpdateEmail(audience[i].Name, newCompany, s.cfg.Server.FrontendURL)
		if s.dispatch(ctx, &audience[i], subject, body) {
			sent++
		}
	}

	s.logger.Info("company update notifications sent",
		zap.String("company", newCompany.Name),
		zap.Int("audience", len(audience)),
		zap.Int("sent", sent),
	)
	return nil
}

// companyChanged compares the fields whose edits warrant a notification.
func companyChanged(oldCompany, newCompany *model.Company) bool {
	return oldCompany.Name != newCompany.Name ||
		oldCompany.Role != newCompany.Role ||
		oldCompany.Description != newCompany.Description ||
		oldCompany.Status != newCompany.Status ||
		oldCompany.Compensation != newCompany.Compensation ||
		!reflect.DeepEqual(oldCompany.Eligibility, newCompany.Eligibility) ||
		!reflect.DeepEqual(oldCompany.Documents, newCompany.Documents)
}

func (s *notifierService) TaskCreated(ctx context.Context, task *model.Task) error {
	company := task.Company
	if company == nil {
		loaded, err := s.repo.Company.GetByID(ctx, task.CompanyID)
		if err != nil {
			return err
		}
		company = loaded
	}

	audience, err := s.selectAudience(ctx, company.Eligibility, PrefTaskReminders)
	if err != nil {
		return err
	}

	sent := 0
	for i := range audience {
		subject, body := newTaskEmail(audience[i].Name, task, company.Name, s.cfg.Server.FrontendURL)
		if s.dispatch(ctx, &audience[i], subject, body) {
			sent++
		}
	}

	s.logger.Info("new task notifications sent",
		zap.String("task", task.Title),
		zap.Int("audience", len(audience)),
		zap.Int("sent", sent),
	)
	return nil
}

// StudentApproved notifies exactly the approved user, subject to their own
// opt-out. The cohort cap runs against the singleton set, which the user
// trivially passes.
func (s *notifierService) StudentApproved(ctx context.Context, user *model.User) {
	if !optedIn(user, PrefApprovalNotifications) {
		s.logger.Debug("approval notification skipped, user opted out",
			zap.String("email", user.Email))
		return
	}

	cohort := capCohort([]model.User{*user}, s.cfg.Scheduler.CohortCap)
	if len(cohort) == 0 {
		return
	}

	subject, body := approvalEmail(user.Name, s.cfg.Server.FrontendURL)
	if s.dispatch(ctx, user, subject, body) {
		s.logger.Info("approval notification sent", zap.String("email", user.Email))
	}
}

// TaskReminder sends one threshold's reminder for a task to the eligible
// audience. The caller owns flag marking; it must mark after this returns
// nil even when individual dispatches failed.
func (s *notifierService) TaskReminder(ctx context.Context, task *model.Task, company *model.Company, threshold string) error {
	audience, err := s.selectAudience(ctx, company.Eligibility, PrefTaskReminders)
	if err != nil {
		return err
	}

	sent := 0
	for i := range audience {
		subject, body := taskReminderEmail(audience[i].Name, task, company.Name, threshold, s.cfg.Server.FrontendURL)
		if s.dispatch(ctx, &audience[i], subject, body) {
			sent++
		}
	}

	s.logger.Info("task reminders sent",
		zap.String("task", task.Title),
		zap.String("threshold", threshold),
		zap.Int("audience", len(audience)),
		zap.Int("sent", sent),
	)
	return nil
}
