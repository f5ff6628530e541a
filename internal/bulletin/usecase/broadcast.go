package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"engineering-sync/internal/auth"
	"engineering-sync/internal/bulletin"
	"engineering-sync/internal/mailer"
	"engineering-sync/internal/model"
	"engineering-sync/internal/render"
	"engineering-sync/internal/subscription"
)

const (
	bulletinSubjectFormat = "\U0001F4F0 My Bulletin – %s"
	manageSubjectFormat   = "\U0001F4F0 Manage Your Subscriptions – %s"
)

// Broadcast enriches the category graph, personalizes it per recipient, and
// delivers one bulletin each. A failed delivery is counted and logged but
// never stops the cycle.
func (uc *implUseCase) Broadcast(ctx context.Context) (bulletin.BroadcastReport, error) {
	report := bulletin.BroadcastReport{CycleID: uuid.NewString()}

	categories := uc.GetAllCategoriesWithTasks(ctx)
	uc.syncCategories(ctx, categories)

	emails, err := uc.recipientSet(ctx)
	if err != nil {
		return report, err
	}
	if len(emails) == 0 {
		return report, bulletin.ErrNoRecipients
	}
	report.Recipients = len(emails)
	uc.l.Infof(ctx, "cycle %s: broadcasting to %d recipients", report.CycleID, len(emails))

	sender := strings.ToLower(strings.TrimSpace(uc.cfg.SenderEmail))
	dateStr := render.DateStamp(time.Now())

	for _, email := range emails {
		if email == sender && sender != "" {
			uc.l.Infof(ctx, "cycle %s: skipping sender address %s", report.CycleID, email)
			report.Skipped++
			continue
		}
		if err := uc.sendOne(ctx, email, categories, dateStr); err != nil {
			uc.l.Errorf(ctx, "cycle %s: delivery to %s failed: %v", report.CycleID, email, err)
			report.Failed++
			continue
		}
		report.Sent++
	}

	uc.l.Infof(ctx, "cycle %s: broadcast done (sent=%d failed=%d skipped=%d)",
		report.CycleID, report.Sent, report.Failed, report.Skipped)
	return report, nil
}

func (uc *implUseCase) sendOne(ctx context.Context, email string, categories []model.Category, dateStr string) error {
	user, err := uc.repo.GetOrCreateUser(ctx, email)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}
	subs, err := uc.repo.GetUserSubscriptions(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("load subscriptions: %w", err)
	}

	personal := subscription.Resolve(categories, subs)

	manageToken, err := uc.tokens.Generate(email, auth.PurposeManage)
	if err != nil {
		return fmt.Errorf("mint manage token: %w", err)
	}
	unsubToken, err := uc.tokens.Generate(email, auth.PurposeUnsubscribe)
	if err != nil {
		return fmt.Errorf("mint unsubscribe token: %w", err)
	}

	total := 0
	for _, cat := range personal {
		total += len(cat.Tasks)
	}
	content, err := render.Bulletin(render.BulletinData{
		Date:           dateStr,
		Categories:     personal,
		TotalTasks:     total,
		ManageURL:      fmt.Sprintf("%s/manage/%s", uc.cfg.BaseURL, manageToken),
		UnsubscribeURL: fmt.Sprintf("%s/unsubscribe/%s", uc.cfg.BaseURL, unsubToken),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf(bulletinSubjectFormat, dateStr)
	if len(personal) == 0 {
		subject = fmt.Sprintf(manageSubjectFormat, dateStr)
	}
	return uc.sender.Send(ctx, email, subject, content.Content)
}

// recipientSet unions the configured extra recipients with every user in the
// store, normalized and deduplicated, in deterministic order.
func (uc *implUseCase) recipientSet(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, email := range mailer.SplitRecipients(uc.cfg.ExtraRecipients) {
		seen[strings.ToLower(email)] = true
	}

	users, err := uc.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipients: %w", err)
	}
	for _, u := range users {
		seen[strings.ToLower(strings.TrimSpace(u.Email))] = true
	}
	delete(seen, "")

	emails := make([]string, 0, len(seen))
	for email := range seen {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails, nil
}

// syncCategories mirrors the live category listing into the store so the
// manage page can offer streams nobody has subscribed to yet.
func (uc *implUseCase) syncCategories(ctx context.Context, categories []model.Category) {
	if uc.repo == nil || len(categories) == 0 {
		return
	}
	refs := make([]subscription.CategoryRef, 0, len(categories))
	for _, cat := range categories {
		refs = append(refs, subscription.CategoryRef{ID: cat.CategoryID, Name: cat.CategoryName})
	}
	if err := uc.repo.SyncCategories(ctx, refs); err != nil {
		uc.l.Warnf(ctx, "category sync failed: %v", err)
	}
}
