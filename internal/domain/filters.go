package domain

import (
	"strings"

	"github.com/atlassify/atlassify/internal/product"
)

// TimeSensitive classifies a notification by how urgently it usually needs
// attention, derived from the notification message.
type TimeSensitive string

const (
	TimeSensitiveMention TimeSensitive = "mention"
	TimeSensitiveComment TimeSensitive = "comment"
)

// ActorType classifies who triggered a notification.
type ActorType string

const (
	ActorTypeUser       ActorType = "user"
	ActorTypeAutomation ActorType = "automation"
)

// FilterSet holds the active filter values per dimension. An empty slice
// means the dimension is unconstrained.
type FilterSet struct {
	TimeSensitive []TimeSensitive
	Categories    []Category
	Actors        []ActorType
	ReadStates    []ReadState
	Products      []product.Name
}

// IsEmpty returns true if no dimension has an active filter value.
func (fs FilterSet) IsEmpty() bool {
	return len(fs.TimeSensitive) == 0 &&
		len(fs.Categories) == 0 &&
		len(fs.Actors) == 0 &&
		len(fs.ReadStates) == 0 &&
		len(fs.Products) == 0
}

// TypeDetails is display metadata for one filter value.
type TypeDetails struct {
	Title       string
	Description string
}

// Filter is one independent filter dimension. All dimensions expose the
// same contract over their own value type.
type Filter[V comparable] struct {
	// Values enumerates the dimension's value set in display order.
	Values []V

	details func(V) TypeDetails
	active  func(FilterSet) []V
	matches func(*Notification, V) bool
}

// HasFilters reports whether the dimension has at least one active value.
func (f *Filter[V]) HasFilters(fs FilterSet) bool {
	return len(f.active(fs)) > 0
}

// IsFilterSet reports whether a specific value is active.
func (f *Filter[V]) IsFilterSet(fs FilterSet, v V) bool {
	for _, a := range f.active(fs) {
		if a == v {
			return true
		}
	}
	return false
}

// FilterNotification reports whether the notification matches one value.
func (f *Filter[V]) FilterNotification(n *Notification, v V) bool {
	return f.matches(n, v)
}

// FilterCount counts notifications matching one value.
func (f *Filter[V]) FilterCount(notifs []Notification, v V) int {
	count := 0
	for i := range notifs {
		if f.matches(&notifs[i], v) {
			count++
		}
	}
	return count
}

// TypeDetails returns display metadata for a value.
func (f *Filter[V]) TypeDetails(v V) TypeDetails {
	return f.details(v)
}

// matchesAny implements the OR-within-dimension rule: a notification passes
// an active dimension when it matches at least one active value.
func (f *Filter[V]) matchesAny(n *Notification, fs FilterSet) bool {
	for _, v := range f.active(fs) {
		if f.matches(n, v) {
			return true
		}
	}
	return false
}

// dimension erases the value type so all dimensions fit one registry.
type dimension interface {
	hasFilters(fs FilterSet) bool
	passes(n *Notification, fs FilterSet) bool
}

func (f *Filter[V]) hasFilters(fs FilterSet) bool { return f.HasFilters(fs) }
func (f *Filter[V]) passes(n *Notification, fs FilterSet) bool {
	return f.matchesAny(n, fs)
}

// TimeSensitiveFilter filters by mention/comment urgency markers in the
// notification message.
var TimeSensitiveFilter = &Filter[TimeSensitive]{
	Values: []TimeSensitive{TimeSensitiveMention, TimeSensitiveComment},
	details: func(v TimeSensitive) TypeDetails {
		switch v {
		case TimeSensitiveMention:
			return TypeDetails{Title: "Mention", Description: "Someone mentioned you"}
		case TimeSensitiveComment:
			return TypeDetails{Title: "Comment", Description: "Someone commented or replied"}
		default:
			return TypeDetails{}
		}
	},
	active: func(fs FilterSet) []TimeSensitive { return fs.TimeSensitive },
	matches: func(n *Notification, v TimeSensitive) bool {
		msg := strings.ToLower(n.Message)
		switch v {
		case TimeSensitiveMention:
			return strings.Contains(msg, "mention")
		case TimeSensitiveComment:
			return strings.Contains(msg, "comment") || strings.Contains(msg, "replied")
		default:
			return false
		}
	},
}

// CategoryFilter filters by the API's direct/watching classification.
var CategoryFilter = &Filter[Category]{
	Values: []Category{CategoryDirect, CategoryWatching},
	details: func(v Category) TypeDetails {
		switch v {
		case CategoryDirect:
			return TypeDetails{Title: "Direct", Description: "Notifications directed at you"}
		case CategoryWatching:
			return TypeDetails{Title: "Watching", Description: "Activity on items you watch"}
		default:
			return TypeDetails{}
		}
	},
	active: func(fs FilterSet) []Category { return fs.Categories },
	matches: func(n *Notification, v Category) bool {
		return n.Category == v
	},
}

// ActorFilter filters by who triggered a notification.
var ActorFilter = &Filter[ActorType]{
	Values: []ActorType{ActorTypeUser, ActorTypeAutomation},
	details: func(v ActorType) TypeDetails {
		switch v {
		case ActorTypeUser:
			return TypeDetails{Title: "User", Description: "Triggered by a person"}
		case ActorTypeAutomation:
			return TypeDetails{Title: "Automation", Description: "Triggered by an automation rule or app"}
		default:
			return TypeDetails{}
		}
	},
	active: func(fs FilterSet) []ActorType { return fs.Actors },
	matches: func(n *Notification, v ActorType) bool {
		switch v {
		case ActorTypeAutomation:
			return n.IsAutomationActor()
		case ActorTypeUser:
			return !n.IsAutomationActor()
		default:
			return false
		}
	},
}

// ReadStateFilter filters by read/unread state.
var ReadStateFilter = &Filter[ReadState]{
	Values: []ReadState{ReadStateUnread, ReadStateRead},
	details: func(v ReadState) TypeDetails {
		switch v {
		case ReadStateUnread:
			return TypeDetails{Title: "Unread", Description: "Unread notifications"}
		case ReadStateRead:
			return TypeDetails{Title: "Read", Description: "Read notifications"}
		default:
			return TypeDetails{}
		}
	},
	active: func(fs FilterSet) []ReadState { return fs.ReadStates },
	matches: func(n *Notification, v ReadState) bool {
		return n.ReadState == v
	},
}

// ProductFilter filters by the resolved product.
var ProductFilter = &Filter[product.Name]{
	Values: productNames(),
	details: func(v product.Name) TypeDetails {
		p := product.Lookup(v)
		return TypeDetails{Title: p.DisplayLabel}
	},
	active: func(fs FilterSet) []product.Name { return fs.Products },
	matches: func(n *Notification, v product.Name) bool {
		return n.Product.Name == v
	},
}

func productNames() []product.Name {
	products := product.All()
	names := make([]product.Name, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

// dimensions is the filter registry. Combination is AND across dimensions.
var dimensions = []dimension{
	TimeSensitiveFilter,
	CategoryFilter,
	ActorFilter,
	ReadStateFilter,
	ProductFilter,
}

// MatchesFilters reports whether a notification passes every constrained
// dimension. A dimension with no active values imposes no constraint.
func MatchesFilters(n *Notification, fs FilterSet) bool {
	for _, d := range dimensions {
		if d.hasFilters(fs) && !d.passes(n, fs) {
			return false
		}
	}
	return true
}

// FilterNotifications filters a slice of notifications against the filter
// set. Returns a new slice containing only matching notifications.
func FilterNotifications(notifs []Notification, fs FilterSet) []Notification {
	if fs.IsEmpty() {
		return notifs
	}
	result := make([]Notification, 0, len(notifs))
	for i := range notifs {
		if MatchesFilters(&notifs[i], fs) {
			result = append(result, notifs[i])
		}
	}
	return result
}
