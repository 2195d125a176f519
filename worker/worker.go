// Package worker runs the scheduled jobs, currently just the weekly budget
// summary email.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/devin-voegele/moneymap/budget"
	"github.com/devin-voegele/moneymap/db"
	"github.com/devin-voegele/moneymap/logger"
	"github.com/devin-voegele/moneymap/mailer"
)

// ErrNotificationsDisabled is returned when the user opted out of weekly
// summary email.
var ErrNotificationsDisabled = errors.New("email notifications disabled for this user")

// SendWeeklySummary computes the user's monthly figures and mails the digest.
// Users who disabled notifications get ErrNotificationsDisabled.
func SendWeeklySummary(ctx context.Context, store *db.Store, mail *mailer.Client, userID string) error {
	user, err := store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	profile, err := store.GetProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if profile == nil || !profile.EmailNotifications || !profile.WeeklyEmailEnabled {
		return ErrNotificationsDisabled
	}
	currency := profile.Currency
	if currency == "" {
		currency = "EUR"
	}

	incomes, err := store.ListIncomes(ctx, userID)
	if err != nil {
		return err
	}
	fixedCosts, err := store.ListFixedCosts(ctx, userID)
	if err != nil {
		return err
	}
	subscriptions, err := store.ListSubscriptions(ctx, userID)
	if err != nil {
		return err
	}

	var totalIncome, totalExpenses float64
	for _, inc := range incomes {
		totalIncome += budget.MonthlyEquivalent(inc.Amount, inc.Frequency)
	}
	for _, cost := range fixedCosts {
		totalExpenses += budget.MonthlyEquivalent(cost.Amount, cost.Frequency)
	}
	for _, sub := range subscriptions {
		totalExpenses += budget.MonthlyEquivalent(sub.Amount, sub.Frequency)
	}
	freeMoney := totalIncome - totalExpenses

	name := user.Name
	if name == "" {
		name = "there"
	}
	return mail.SendWeeklySummary(ctx, user.Email, name, mailer.Summary{
		TotalIncome:   budget.FormatCurrency(totalIncome, currency),
		TotalExpenses: budget.FormatCurrency(totalExpenses, currency),
		FreeMoney:     budget.FormatCurrency(freeMoney, currency),
		SavingsRate:   budget.SavingsRate(totalIncome, totalExpenses),
	})
}

// Scheduler drives the weekly summary job on a cron spec.
type Scheduler struct {
	cron  *cron.Cron
	store *db.Store
	mail  *mailer.Client
}

func NewScheduler(store *db.Store, mail *mailer.Client) *Scheduler {
	return &Scheduler{
		cron:  cron.New(),
		store: store,
		mail:  mail,
	}
}

// Start registers the weekly summary job and launches the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runWeeklySummaries); err != nil {
		return err
	}
	s.cron.Start()
	logger.Get().Info("worker started", zap.String("weekly_summary_spec", spec))
	return nil
}

// Stop waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runWeeklySummaries() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	userIDs, err := s.store.ListWeeklyEmailRecipients(ctx)
	if err != nil {
		logger.Get().Error("failed to list weekly email recipients", zap.Error(err))
		return
	}

	sent := 0
	for _, userID := range userIDs {
		err := SendWeeklySummary(ctx, s.store, s.mail, userID)
		if err == ErrNotificationsDisabled {
			continue
		}
		if err != nil {
			logger.Get().Error("failed to send weekly summary", zap.Error(err), zap.String("user_id", userID))
			continue
		}
		sent++
	}
	logger.Get().Info("weekly summaries sent", zap.Int("count", sent), zap.Int("recipients", len(userIDs)))
}
