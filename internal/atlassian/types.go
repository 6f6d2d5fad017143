package atlassian

import "time"

// AttributePair is one key/value entry from a notification's analytics
// attributes. The API exposes these as an untyped list; FindAttribute gives
// typed access by key name.
type AttributePair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FindAttribute returns the value for the given attribute key, or the empty
// string when the key is absent.
func FindAttribute(attrs []AttributePair, key string) string {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Actor is the user (or app) that triggered a notification.
type Actor struct {
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarURL"`
}

// Entity is a linked object referenced by a notification, such as the issue,
// page, or pull request it concerns. URL and IconURL may be empty.
type Entity struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	IconURL string `json:"iconUrl"`
}

// Content is the displayable payload of a head notification.
type Content struct {
	Type    string   `json:"type"`
	Message string   `json:"message"`
	URL     string   `json:"url"`
	Entity  *Entity  `json:"entity"`
	Path    []Entity `json:"path"`
	Actor   *Actor   `json:"actor"`
}

// HeadNotification is the representative record for one notification (or for
// a collapsed group of related notifications).
type HeadNotification struct {
	NotificationID      string          `json:"notificationId"`
	Timestamp           time.Time       `json:"timestamp"`
	ReadState           string          `json:"readState"`
	Category            string          `json:"category"`
	Content             Content         `json:"content"`
	AnalyticsAttributes []AttributePair `json:"analyticsAttributes"`
}

// NotificationNode is one entry of the notification feed. GroupSize > 1
// means the head notification stands in for multiple underlying events.
type NotificationNode struct {
	GroupID          string           `json:"groupId"`
	GroupSize        int              `json:"groupSize"`
	AdditionalActors []Actor          `json:"additionalActors"`
	HeadNotification HeadNotification `json:"headNotification"`
}

// NotificationFeed is the parsed result of one notification-list query.
type NotificationFeed struct {
	Nodes []NotificationNode
	// ResponseSize echoes the page-size ceiling the server applied, as
	// reported in the response extensions.
	ResponseSize int
}

// User is the authenticated identity behind a credential.
type User struct {
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Picture   string `json:"picture"`
}

// ListOptions parameterizes a notification-list query.
type ListOptions struct {
	PageSize   int
	UnreadOnly bool
	Flatten    bool
}
