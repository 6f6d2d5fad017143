// Package domain provides the domain layer for Atlassian notifications.
// It contains the canonical notification model, filtering, and grouping.
package domain

import (
	"strings"
	"time"

	"github.com/atlassify/atlassify/internal/product"
)

// Account is one authenticated Atlassian identity. Fetch and error state are
// tracked per account; accounts never share credentials.
type Account struct {
	ID        string
	Username  string
	Name      string
	AvatarURL string
	// Credential is the bearer token for API calls. It is loaded from the
	// OS keyring at runtime and never persisted alongside the account row.
	Credential string
}

// ReadState represents whether a notification has been read.
type ReadState string

const (
	ReadStateRead   ReadState = "read"
	ReadStateUnread ReadState = "unread"
)

// IsValid checks if the read state is valid.
func (s ReadState) IsValid() bool {
	switch s {
	case ReadStateRead, ReadStateUnread:
		return true
	default:
		return false
	}
}

// String returns the string representation of the read state.
func (s ReadState) String() string {
	return string(s)
}

// Category is the logical classification assigned by the API.
type Category string

const (
	CategoryDirect   Category = "direct"
	CategoryWatching Category = "watching"
)

// IsValid checks if the category is valid.
func (c Category) IsValid() bool {
	switch c {
	case CategoryDirect, CategoryWatching:
		return true
	default:
		return false
	}
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// Actor is the user or app that triggered a notification.
type Actor struct {
	DisplayName string
	AvatarURL   string
}

// Entity is the primary linked object of a notification. URL and IconURL
// may be empty when the API omits them.
type Entity struct {
	Title   string
	URL     string
	IconURL string
}

// Path is the optional parent-container breadcrumb of a notification, such
// as the project or space that contains the entity.
type Path struct {
	Title   string
	URL     string
	IconURL string
}

// NotificationGroup describes the cluster of related events a head
// notification stands in for. Size is always at least 1.
type NotificationGroup struct {
	ID               string
	Size             int
	AdditionalActors []Actor
}

// Notification is the canonical notification record. Every notification
// belongs to exactly one account and exactly one resolved product.
type Notification struct {
	ID        string
	Order     int
	Message   string
	ReadState ReadState
	UpdatedAt time.Time
	Category  Category
	URL       string
	Entity    Entity
	Path      *Path
	Actor     Actor
	Product   product.Product
	Account   Account
	Group     NotificationGroup
}

// IsRead reports whether the notification has been read.
func (n *Notification) IsRead() bool {
	return n.ReadState == ReadStateRead
}

// IsGroup reports whether the notification is the head of a group of
// multiple underlying events.
func (n *Notification) IsGroup() bool {
	return n.Group.Size > 1
}

// AccountNotifications is the per-account result of one fetch cycle. It is
// recreated wholesale on every cycle; a non-nil Error means the account's
// fetch failed and Notifications is empty.
type AccountNotifications struct {
	Account              Account
	Notifications        []Notification
	HasMoreNotifications bool
	Error                error
}

// automationActorMarkers identify notifications triggered by apps rather
// than people.
var automationActorMarkers = []string{
	"automation for jira",
	"automation",
	"(bot)",
}

// IsAutomationActor reports whether the notification was triggered by an
// automation rule or app rather than a person.
func (n *Notification) IsAutomationActor() bool {
	name := strings.ToLower(n.Actor.DisplayName)
	for _, marker := range automationActorMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// CountUnread counts unread notifications across per-account results.
// Accounts with a fetch error contribute nothing.
func CountUnread(results []AccountNotifications) int {
	count := 0
	for _, r := range results {
		for _, n := range r.Notifications {
			if !n.IsRead() {
				count++
			}
		}
	}
	return count
}

// AnyHasMore reports whether any account has further pages available.
func AnyHasMore(results []AccountNotifications) bool {
	for _, r := range results {
		if r.HasMoreNotifications {
			return true
		}
	}
	return false
}

// AllErrored reports whether every account's fetch failed. An empty result
// set is not considered errored.
func AllErrored(results []AccountNotifications) bool {
	if len(results) == 0 {
		return false
	}
	for _, r := range results {
		if r.Error == nil {
			return false
		}
	}
	return true
}
