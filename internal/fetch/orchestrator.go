// Package fetch orchestrates notification fetching across accounts.
package fetch

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/logging"
	"github.com/atlassify/atlassify/internal/notification"
	"github.com/atlassify/atlassify/internal/product"
	"github.com/atlassify/atlassify/internal/settings"
)

// ErrFetchInFlight means a full fetch cycle is already running; the new
// request is a no-op.
var ErrFetchInFlight = errors.New("fetch already in flight")

// API is the transport surface the orchestrator needs.
type API interface {
	ListNotifications(ctx context.Context, token string, opts atlassian.ListOptions) (*atlassian.NotificationFeed, error)
	ExpandGroup(ctx context.Context, token string, groupID string, size int) ([]string, error)
	MarkRead(ctx context.Context, token string, ids []string) error
	MarkUnread(ctx context.Context, token string, ids []string) error
}

// Orchestrator fans one notification-list request out per account and merges
// the per-account results. A status flag prevents overlapping cycles.
type Orchestrator struct {
	api      API
	inferrer *product.Inferrer
	inFlight atomic.Bool
}

// NewOrchestrator creates an orchestrator using the given transport.
func NewOrchestrator(api API, inferrer *product.Inferrer) *Orchestrator {
	return &Orchestrator{api: api, inferrer: inferrer}
}

// FetchAll fetches notifications for every account concurrently. Accounts
// fail independently: a failing account yields an error-tagged entry while
// the others' data is unaffected. Result order follows input account order.
// Returns ErrFetchInFlight when a cycle is already running.
func (o *Orchestrator) FetchAll(ctx context.Context, accounts []domain.Account, st settings.State) ([]domain.AccountNotifications, error) {
	if !o.inFlight.CompareAndSwap(false, true) {
		return nil, ErrFetchInFlight
	}
	defer o.inFlight.Store(false)

	results := make([]domain.AccountNotifications, len(accounts))
	fs := st.Filters()

	var wg sync.WaitGroup
	for i, account := range accounts {
		wg.Add(1)
		go func(i int, account domain.Account) {
			defer wg.Done()
			results[i] = o.fetchAccount(ctx, account, st, fs)
		}(i, account)
	}
	wg.Wait()

	stabilizeOrder(results)
	return results, nil
}

// fetchAccount runs one account's list request, transform, and filter pass.
func (o *Orchestrator) fetchAccount(ctx context.Context, account domain.Account, st settings.State, fs domain.FilterSet) domain.AccountNotifications {
	feed, err := o.api.ListNotifications(ctx, account.Credential, atlassian.ListOptions{
		PageSize:   st.MaxPerAccount,
		UnreadOnly: st.FetchOnlyUnread,
		Flatten:    true,
	})
	if err != nil {
		classified := atlassian.Classify(err)
		logging.Error("notification fetch failed",
			"account", account.Username,
			"kind", classified.Kind,
			"error", err)
		return domain.AccountNotifications{Account: account, Error: classified}
	}

	notifs := notification.ToDomainSlice(ctx, account, feed.Nodes, o.inferrer)
	notifs = domain.FilterNotifications(notifs, fs)

	return domain.AccountNotifications{
		Account:       account,
		Notifications: notifs,
		// The API's own page-info flag always reports more pages, so a
		// full page is the signal that another page exists.
		HasMoreNotifications: len(feed.Nodes) == st.MaxPerAccount,
	}
}

// stabilizeOrder assigns each notification a sequence index over the merged
// result set, newest first. The index survives regrouping and refiltering in
// the presentation layer.
func stabilizeOrder(results []domain.AccountNotifications) {
	var all []*domain.Notification
	for i := range results {
		for j := range results[i].Notifications {
			all = append(all, &results[i].Notifications[j])
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdatedAt.After(all[j].UpdatedAt)
	})
	for i, n := range all {
		n.Order = i
	}
}

// ResolveNotificationIDs expands the given notifications into the flat list
// of underlying notification ids for bulk mark operations. Non-grouped
// notifications contribute their own id; group heads are expanded through
// the API. An expansion failure is logged and contributes no ids.
func (o *Orchestrator) ResolveNotificationIDs(ctx context.Context, account domain.Account, notifs []domain.Notification) []string {
	singles, grouped := domain.SplitByGroupSize(notifs)

	ids := make([]string, 0, len(notifs))
	for _, n := range singles {
		ids = append(ids, n.ID)
	}
	for _, n := range grouped {
		memberIDs, err := o.api.ExpandGroup(ctx, account.Credential, n.Group.ID, n.Group.Size)
		if err != nil {
			logging.Error("notification group expansion failed",
				"account", account.Username,
				"group", n.Group.ID,
				"error", err)
			continue
		}
		ids = append(ids, memberIDs...)
	}
	return ids
}

// MarkRead marks the given notifications (expanding groups) as read.
func (o *Orchestrator) MarkRead(ctx context.Context, account domain.Account, notifs []domain.Notification) error {
	ids := o.ResolveNotificationIDs(ctx, account, notifs)
	if len(ids) == 0 {
		return nil
	}
	return o.api.MarkRead(ctx, account.Credential, ids)
}

// MarkUnread marks the given notifications (expanding groups) as unread.
func (o *Orchestrator) MarkUnread(ctx context.Context, account domain.Account, notifs []domain.Notification) error {
	ids := o.ResolveNotificationIDs(ctx, account, notifs)
	if len(ids) == 0 {
		return nil
	}
	return o.api.MarkUnread(ctx, account.Credential, ids)
}
