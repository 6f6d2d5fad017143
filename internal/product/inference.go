package product

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/logging"
)

// Analytics attribute keys carried on raw notifications.
const (
	attrRegistrationProduct = "registrationProduct"
	attrSubProduct          = "subProduct"
)

// rovoMessageMarker flags AI-generated post-office notifications.
const rovoMessageMarker = "Rovo Dev"

// TenantAPI is the network surface the inferrer needs for ambiguous-Jira
// resolution.
type TenantAPI interface {
	CloudID(ctx context.Context, token string, hostname string) (string, error)
	JiraProjectType(ctx context.Context, token string, cloudID, projectKey string) (string, error)
}

// Inferrer maps raw notification attributes to a catalog entry. The two
// caches live for the lifetime of the inferrer and deduplicate concurrent
// lookups for the same hostname or project key.
type Inferrer struct {
	api          TenantAPI
	cloudIDs     *FlightCache
	projectTypes *FlightCache
}

// NewInferrer creates an Inferrer backed by the given API.
func NewInferrer(api TenantAPI) *Inferrer {
	return &Inferrer{
		api:          api,
		cloudIDs:     NewFlightCache(),
		projectTypes: NewFlightCache(),
	}
}

// Reset clears both lookup caches.
func (i *Inferrer) Reset() {
	i.cloudIDs.Reset()
	i.projectTypes.Reset()
}

// Infer resolves the owning product for a raw notification. It is total:
// any combination of attribute values resolves to some catalog entry, and
// lookup failures degrade to a default instead of propagating.
func (i *Inferrer) Infer(ctx context.Context, token string, node *atlassian.NotificationNode) Product {
	attrs := node.HeadNotification.AnalyticsAttributes
	registration := strings.ToLower(atlassian.FindAttribute(attrs, attrRegistrationProduct))
	subProduct := strings.ToLower(atlassian.FindAttribute(attrs, attrSubProduct))

	switch registration {
	case "bitbucket":
		return Lookup(Bitbucket)
	case "compass":
		return Lookup(Compass)
	case "confluence":
		return Lookup(Confluence)
	case "opsgenie":
		return Lookup(JiraServiceManagement)
	case "people-and-teams-collective":
		return Lookup(Teams)
	case "team-central":
		return Lookup(Home)
	case "jira":
		switch subProduct {
		case "core", "software":
			return Lookup(Jira)
		case "servicedesk":
			return Lookup(JiraServiceManagement)
		default:
			return i.resolveAmbiguousJira(ctx, token, node)
		}
	case "post-office":
		if strings.Contains(node.HeadNotification.Content.Message, rovoMessageMarker) {
			return Lookup(RovoDev)
		}
		return Lookup(Unknown)
	default:
		return Lookup(Unknown)
	}
}

// resolveAmbiguousJira disambiguates a Jira notification whose sub-product
// attribute is missing or unrecognized. It resolves the tenant cloud id from
// the path entity's hostname, then the project type from the project key.
// Any failure along the way degrades to plain Jira.
func (i *Inferrer) resolveAmbiguousJira(ctx context.Context, token string, node *atlassian.NotificationNode) Product {
	path := node.HeadNotification.Content.Path
	if len(path) == 0 {
		return Lookup(Jira)
	}

	projectType, err := i.lookupProjectType(ctx, token, path[0])
	if err != nil {
		logging.Warn("jira sub-product resolution failed",
			"notification", node.HeadNotification.NotificationID,
			"error", err)
		return Lookup(Jira)
	}

	switch projectType {
	case "product_discovery":
		return Lookup(JiraProductDiscovery)
	case "service_desk":
		return Lookup(JiraServiceManagement)
	default:
		// business, software, customer_service all surface as Jira.
		return Lookup(Jira)
	}
}

// lookupProjectType resolves the project type key behind a path entity,
// going hostname -> cloud id -> project type with both steps memoized.
func (i *Inferrer) lookupProjectType(ctx context.Context, token string, entity atlassian.Entity) (string, error) {
	parsed, err := url.Parse(entity.URL)
	if err != nil {
		return "", fmt.Errorf("parse path entity url: %w", err)
	}
	hostname := parsed.Hostname()
	if hostname == "" {
		return "", fmt.Errorf("path entity url %q has no hostname", entity.URL)
	}

	cloudID, err := i.cloudIDs.Do(ctx, hostname, func() (string, error) {
		return i.api.CloudID(ctx, token, hostname)
	})
	if err != nil {
		return "", fmt.Errorf("resolve cloud id for %q: %w", hostname, err)
	}

	// The project key is the issue-key prefix of the path entity title.
	projectKey := strings.SplitN(entity.Title, "-", 2)[0]

	projectType, err := i.projectTypes.Do(ctx, projectKey, func() (string, error) {
		return i.api.JiraProjectType(ctx, token, cloudID, projectKey)
	})
	if err != nil {
		return "", fmt.Errorf("resolve project type for %q: %w", projectKey, err)
	}
	return projectType, nil
}
