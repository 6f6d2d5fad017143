package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atlassify/atlassify/internal/product"
)

func notif(opts func(n *Notification)) Notification {
	n := Notification{
		ID:        "n1",
		Message:   "Alice commented on an issue",
		ReadState: ReadStateUnread,
		Category:  CategoryDirect,
		Actor:     Actor{DisplayName: "Alice"},
		Product:   product.Lookup(product.Jira),
		Group:     NotificationGroup{Size: 1},
	}
	if opts != nil {
		opts(&n)
	}
	return n
}

func TestFilterSet_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		fs   FilterSet
		want bool
	}{
		{"empty set", FilterSet{}, true},
		{"time sensitive", FilterSet{TimeSensitive: []TimeSensitive{TimeSensitiveMention}}, false},
		{"category", FilterSet{Categories: []Category{CategoryDirect}}, false},
		{"actor", FilterSet{Actors: []ActorType{ActorTypeUser}}, false},
		{"read state", FilterSet{ReadStates: []ReadState{ReadStateUnread}}, false},
		{"product", FilterSet{Products: []product.Name{product.Jira}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fs.IsEmpty())
		})
	}
}

func TestMatchesFilters_AndAcrossOrWithin(t *testing.T) {
	mentionUnread := notif(func(n *Notification) {
		n.Message = "Bob mentioned you on a page"
	})
	commentUnread := notif(func(n *Notification) {
		n.Message = "Bob commented on a page"
	})
	commentRead := notif(func(n *Notification) {
		n.Message = "Bob commented on a page"
		n.ReadState = ReadStateRead
	})
	plainUnread := notif(func(n *Notification) {
		n.Message = "Build finished"
	})

	fs := FilterSet{
		TimeSensitive: []TimeSensitive{TimeSensitiveMention, TimeSensitiveComment},
		ReadStates:    []ReadState{ReadStateUnread},
	}

	// (mention OR comment) AND unread.
	assert.True(t, MatchesFilters(&mentionUnread, fs))
	assert.True(t, MatchesFilters(&commentUnread, fs))
	assert.False(t, MatchesFilters(&commentRead, fs), "read fails the read-state dimension")
	assert.False(t, MatchesFilters(&plainUnread, fs), "neither mention nor comment")
}

func TestMatchesFilters_UnconstrainedDimensionPasses(t *testing.T) {
	n := notif(nil)
	assert.True(t, MatchesFilters(&n, FilterSet{}))

	// Only product constrained; everything else vacuously passes.
	assert.True(t, MatchesFilters(&n, FilterSet{Products: []product.Name{product.Jira}}))
	assert.False(t, MatchesFilters(&n, FilterSet{Products: []product.Name{product.Bitbucket}}))
}

func TestFilterNotifications(t *testing.T) {
	notifs := []Notification{
		notif(func(n *Notification) { n.ID = "a"; n.Message = "Bob mentioned you" }),
		notif(func(n *Notification) { n.ID = "b"; n.Message = "Build finished" }),
		notif(func(n *Notification) {
			n.ID = "c"
			n.Message = "Bob mentioned you"
			n.ReadState = ReadStateRead
		}),
	}

	t.Run("empty filter returns input", func(t *testing.T) {
		got := FilterNotifications(notifs, FilterSet{})
		assert.Len(t, got, 3)
	})

	t.Run("multi-dimension", func(t *testing.T) {
		fs := FilterSet{
			TimeSensitive: []TimeSensitive{TimeSensitiveMention},
			ReadStates:    []ReadState{ReadStateUnread},
		}
		got := FilterNotifications(notifs, fs)
		assert.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})
}

func TestCategoryFilter(t *testing.T) {
	direct := notif(nil)
	watching := notif(func(n *Notification) { n.Category = CategoryWatching })

	fs := FilterSet{Categories: []Category{CategoryWatching}}
	assert.True(t, CategoryFilter.HasFilters(fs))
	assert.False(t, CategoryFilter.HasFilters(FilterSet{}))
	assert.True(t, CategoryFilter.IsFilterSet(fs, CategoryWatching))
	assert.False(t, CategoryFilter.IsFilterSet(fs, CategoryDirect))
	assert.True(t, CategoryFilter.FilterNotification(&watching, CategoryWatching))
	assert.False(t, CategoryFilter.FilterNotification(&direct, CategoryWatching))
}

func TestActorFilter(t *testing.T) {
	human := notif(nil)
	bot := notif(func(n *Notification) { n.Actor.DisplayName = "Automation for Jira" })

	assert.True(t, ActorFilter.FilterNotification(&bot, ActorTypeAutomation))
	assert.False(t, ActorFilter.FilterNotification(&bot, ActorTypeUser))
	assert.True(t, ActorFilter.FilterNotification(&human, ActorTypeUser))
	assert.False(t, ActorFilter.FilterNotification(&human, ActorTypeAutomation))
}

func TestFilterCount(t *testing.T) {
	notifs := []Notification{
		notif(nil),
		notif(func(n *Notification) { n.ReadState = ReadStateRead }),
		notif(nil),
	}
	assert.Equal(t, 2, ReadStateFilter.FilterCount(notifs, ReadStateUnread))
	assert.Equal(t, 1, ReadStateFilter.FilterCount(notifs, ReadStateRead))
}

func TestTypeDetails(t *testing.T) {
	assert.Equal(t, "Mention", TimeSensitiveFilter.TypeDetails(TimeSensitiveMention).Title)
	assert.Equal(t, "Unread", ReadStateFilter.TypeDetails(ReadStateUnread).Title)
	assert.Equal(t, "Jira", ProductFilter.TypeDetails(product.Jira).Title)
	assert.Equal(t, "Automation", ActorFilter.TypeDetails(ActorTypeAutomation).Title)
}

func TestProductFilterValues(t *testing.T) {
	assert.Len(t, ProductFilter.Values, len(product.All()))
}
