package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/product"
	"github.com/atlassify/atlassify/internal/settings"
)

// fakeAPI serves canned feeds keyed by credential token.
type fakeAPI struct {
	mu      sync.Mutex
	feeds   map[string]*atlassian.NotificationFeed
	errs    map[string]error
	expands map[string][]string

	expandErr  error
	marked     []string
	unmarked   []string
	listDelay  time.Duration
	listActive int
}

func (f *fakeAPI) ListNotifications(ctx context.Context, token string, opts atlassian.ListOptions) (*atlassian.NotificationFeed, error) {
	f.mu.Lock()
	f.listActive++
	f.mu.Unlock()
	if f.listDelay > 0 {
		time.Sleep(f.listDelay)
	}
	if err := f.errs[token]; err != nil {
		return nil, err
	}
	if feed := f.feeds[token]; feed != nil {
		return feed, nil
	}
	return &atlassian.NotificationFeed{}, nil
}

func (f *fakeAPI) ExpandGroup(ctx context.Context, token string, groupID string, size int) ([]string, error) {
	if f.expandErr != nil {
		return nil, f.expandErr
	}
	return f.expands[groupID], nil
}

func (f *fakeAPI) MarkRead(ctx context.Context, token string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, ids...)
	return nil
}

func (f *fakeAPI) MarkUnread(ctx context.Context, token string, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unmarked = append(f.unmarked, ids...)
	return nil
}

type noopTenantAPI struct{}

func (noopTenantAPI) CloudID(ctx context.Context, token, hostname string) (string, error) {
	return "", nil
}

func (noopTenantAPI) JiraProjectType(ctx context.Context, token, cloudID, projectKey string) (string, error) {
	return "", nil
}

func feedNode(id string, ts time.Time) atlassian.NotificationNode {
	return atlassian.NotificationNode{
		GroupSize: 1,
		HeadNotification: atlassian.HeadNotification{
			NotificationID: id,
			Timestamp:      ts,
			ReadState:      "unread",
			Category:       "direct",
			Content:        atlassian.Content{Message: "msg " + id},
			AnalyticsAttributes: []atlassian.AttributePair{
				{Key: "registrationProduct", Value: "confluence"},
			},
		},
	}
}

func feedOf(nodes ...atlassian.NotificationNode) *atlassian.NotificationFeed {
	return &atlassian.NotificationFeed{Nodes: nodes}
}

func testSettings() settings.State {
	s := settings.Default()
	s.MaxPerAccount = 3
	return s
}

func account(id, token string) domain.Account {
	return domain.Account{ID: id, Username: id + "@example.com", Credential: token}
}

func newTestOrchestrator(api *fakeAPI) *Orchestrator {
	return NewOrchestrator(api, product.NewInferrer(noopTenantAPI{}))
}

func TestFetchAll_AccountIsolation(t *testing.T) {
	ts := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		feeds: map[string]*atlassian.NotificationFeed{
			"tok-b": feedOf(feedNode("b1", ts)),
		},
		errs: map[string]error{
			"tok-a": &atlassian.APIError{StatusCode: 401},
		},
	}
	o := newTestOrchestrator(api)

	results, err := o.FetchAll(context.Background(),
		[]domain.Account{account("a", "tok-a"), account("b", "tok-b")}, testSettings())
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Result order follows input account order, not completion order.
	assert.Equal(t, "a", results[0].Account.ID)
	assert.Equal(t, "b", results[1].Account.ID)

	require.Error(t, results[0].Error)
	var classified *atlassian.ClassifiedError
	require.ErrorAs(t, results[0].Error, &classified)
	assert.Equal(t, atlassian.ErrorKindBadCredentials, classified.Kind)
	assert.Empty(t, results[0].Notifications)
	assert.False(t, results[0].HasMoreNotifications)

	assert.NoError(t, results[1].Error)
	require.Len(t, results[1].Notifications, 1)
	assert.Equal(t, "b1", results[1].Notifications[0].ID)
}

func TestFetchAll_PaginationHeuristic(t *testing.T) {
	ts := time.Now().UTC()
	t.Run("full page means more", func(t *testing.T) {
		api := &fakeAPI{feeds: map[string]*atlassian.NotificationFeed{
			"tok": feedOf(feedNode("1", ts), feedNode("2", ts), feedNode("3", ts)),
		}}
		o := newTestOrchestrator(api)
		results, err := o.FetchAll(context.Background(), []domain.Account{account("a", "tok")}, testSettings())
		require.NoError(t, err)
		assert.True(t, results[0].HasMoreNotifications)
	})

	t.Run("short page means no more", func(t *testing.T) {
		api := &fakeAPI{feeds: map[string]*atlassian.NotificationFeed{
			"tok": feedOf(feedNode("1", ts), feedNode("2", ts)),
		}}
		o := newTestOrchestrator(api)
		results, err := o.FetchAll(context.Background(), []domain.Account{account("a", "tok")}, testSettings())
		require.NoError(t, err)
		assert.False(t, results[0].HasMoreNotifications)
	})
}

func TestFetchAll_AppliesFilters(t *testing.T) {
	ts := time.Now().UTC()
	read := feedNode("read", ts)
	read.HeadNotification.ReadState = "read"
	api := &fakeAPI{feeds: map[string]*atlassian.NotificationFeed{
		"tok": feedOf(feedNode("unread", ts), read),
	}}
	o := newTestOrchestrator(api)

	st := testSettings()
	st.FilterReadStates = []string{"unread"}

	results, err := o.FetchAll(context.Background(), []domain.Account{account("a", "tok")}, st)
	require.NoError(t, err)
	require.Len(t, results[0].Notifications, 1)
	assert.Equal(t, "unread", results[0].Notifications[0].ID)
}

func TestFetchAll_SingleFlightGuard(t *testing.T) {
	api := &fakeAPI{listDelay: 50 * time.Millisecond}
	o := newTestOrchestrator(api)
	accounts := []domain.Account{account("a", "tok")}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = o.FetchAll(context.Background(), accounts, testSettings())
		}(i)
	}
	wg.Wait()

	inFlight := 0
	for _, err := range errs {
		if errors.Is(err, ErrFetchInFlight) {
			inFlight++
		}
	}
	assert.Equal(t, 1, inFlight, "exactly one of the overlapping cycles is a no-op")

	// A later cycle runs normally again.
	_, err := o.FetchAll(context.Background(), accounts, testSettings())
	assert.NoError(t, err)
}

func TestFetchAll_StabilizesOrder(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeAPI{feeds: map[string]*atlassian.NotificationFeed{
		"tok-a": feedOf(feedNode("old", base.Add(-2*time.Hour)), feedNode("newest", base)),
		"tok-b": feedOf(feedNode("mid", base.Add(-time.Hour))),
	}}
	o := newTestOrchestrator(api)

	results, err := o.FetchAll(context.Background(),
		[]domain.Account{account("a", "tok-a"), account("b", "tok-b")}, testSettings())
	require.NoError(t, err)

	orders := map[string]int{}
	for _, r := range results {
		for _, n := range r.Notifications {
			orders[n.ID] = n.Order
		}
	}
	assert.Equal(t, 0, orders["newest"])
	assert.Equal(t, 1, orders["mid"])
	assert.Equal(t, 2, orders["old"])
}

func TestResolveNotificationIDs(t *testing.T) {
	api := &fakeAPI{expands: map[string][]string{"g1": {"m1", "m2", "m3"}}}
	o := newTestOrchestrator(api)

	notifs := []domain.Notification{
		{ID: "single", Group: domain.NotificationGroup{Size: 1}},
		{ID: "head", Group: domain.NotificationGroup{ID: "g1", Size: 3}},
	}

	ids := o.ResolveNotificationIDs(context.Background(), account("a", "tok"), notifs)
	assert.Equal(t, []string{"single", "m1", "m2", "m3"}, ids)
}

func TestResolveNotificationIDs_ExpansionFailureDegrades(t *testing.T) {
	api := &fakeAPI{expandErr: errors.New("boom")}
	o := newTestOrchestrator(api)

	notifs := []domain.Notification{
		{ID: "single", Group: domain.NotificationGroup{Size: 1}},
		{ID: "head", Group: domain.NotificationGroup{ID: "g1", Size: 2}},
	}

	ids := o.ResolveNotificationIDs(context.Background(), account("a", "tok"), notifs)
	assert.Equal(t, []string{"single"}, ids, "failed expansion contributes no ids")
}

func TestMarkRead(t *testing.T) {
	api := &fakeAPI{expands: map[string][]string{"g1": {"m1", "m2"}}}
	o := newTestOrchestrator(api)

	notifs := []domain.Notification{
		{ID: "single", Group: domain.NotificationGroup{Size: 1}},
		{ID: "head", Group: domain.NotificationGroup{ID: "g1", Size: 2}},
	}
	require.NoError(t, o.MarkRead(context.Background(), account("a", "tok"), notifs))
	assert.Equal(t, []string{"single", "m1", "m2"}, api.marked)
}

func TestMarkRead_NothingToMark(t *testing.T) {
	api := &fakeAPI{expandErr: errors.New("boom")}
	o := newTestOrchestrator(api)

	notifs := []domain.Notification{
		{ID: "head", Group: domain.NotificationGroup{ID: "g1", Size: 2}},
	}
	require.NoError(t, o.MarkRead(context.Background(), account("a", "tok"), notifs))
	assert.Empty(t, api.marked, "no mutation when every id resolution failed")
}
