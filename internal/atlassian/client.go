// Package atlassian implements the transport client for the Atlassian
// notifications GraphQL gateway and the Jira REST API.
package atlassian

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultGraphQLURL is the Atlassian GraphQL gateway endpoint.
	DefaultGraphQLURL = "https://team.atlassian.com/gateway/api/graphql"
	// DefaultAPIBaseURL is the base URL for tenant-scoped REST calls.
	DefaultAPIBaseURL = "https://api.atlassian.com"
)

// Client talks to the Atlassian API. Credentials are provided per call so a
// single client serves every account.
type Client struct {
	GraphQLURL string
	APIBaseURL string
	HTTPClient *http.Client
}

// NewClient creates a client with default endpoints.
func NewClient() *Client {
	return &Client{
		GraphQLURL: DefaultGraphQLURL,
		APIBaseURL: DefaultAPIBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data       json.RawMessage `json:"data"`
	Errors     []graphqlIssue  `json:"errors"`
	Extensions struct {
		Notifications struct {
			ResponseSize int `json:"response_size"`
		} `json:"notifications"`
	} `json:"extensions"`
}

type graphqlIssue struct {
	Message string `json:"message"`
}

// graphql posts one GraphQL document and decodes the data envelope into out.
// A non-2xx status yields an APIError; a 200 with an errors array yields a
// GraphQLError.
func (c *Client) graphql(ctx context.Context, token string, doc string, vars map[string]any, out any) (*graphqlResponse, error) {
	body, err := json.Marshal(graphqlRequest{Query: doc, Variables: vars})
	if err != nil {
		return nil, fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read graphql response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		gerr := &GraphQLError{}
		for _, e := range envelope.Errors {
			gerr.Messages = append(gerr.Messages, e.Message)
		}
		return nil, gerr
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return nil, fmt.Errorf("decode graphql data: %w", err)
		}
	}
	return &envelope, nil
}

// ListNotifications fetches one page of the notification feed.
func (c *Client) ListNotifications(ctx context.Context, token string, opts ListOptions) (*NotificationFeed, error) {
	readState := "unread"
	if !opts.UnreadOnly {
		readState = ""
	}
	vars := map[string]any{
		"first": opts.PageSize,
		"flat":  opts.Flatten,
	}
	if readState != "" {
		vars["readState"] = readState
	}

	var data struct {
		Notifications struct {
			NotificationFeed struct {
				Nodes []NotificationNode `json:"nodes"`
			} `json:"notificationFeed"`
		} `json:"notifications"`
	}
	envelope, err := c.graphql(ctx, token, notificationFeedQuery, vars, &data)
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{
		Nodes:        data.Notifications.NotificationFeed.Nodes,
		ResponseSize: envelope.Extensions.Notifications.ResponseSize,
	}, nil
}

// ExpandGroup resolves a notification group into the ids of its members.
func (c *Client) ExpandGroup(ctx context.Context, token string, groupID string, size int) ([]string, error) {
	var data struct {
		Notifications struct {
			NotificationGroup struct {
				Nodes []struct {
					HeadNotification struct {
						NotificationID string `json:"notificationId"`
					} `json:"headNotification"`
				} `json:"nodes"`
			} `json:"notificationGroup"`
		} `json:"notifications"`
	}
	vars := map[string]any{"groupId": groupID, "first": size}
	if _, err := c.graphql(ctx, token, notificationGroupQuery, vars, &data); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(data.Notifications.NotificationGroup.Nodes))
	for _, n := range data.Notifications.NotificationGroup.Nodes {
		ids = append(ids, n.HeadNotification.NotificationID)
	}
	return ids, nil
}

// MarkRead marks the given notification ids as read.
func (c *Client) MarkRead(ctx context.Context, token string, ids []string) error {
	_, err := c.graphql(ctx, token, markAsReadMutation, map[string]any{"notificationIDs": ids}, nil)
	return err
}

// MarkUnread marks the given notification ids as unread.
func (c *Client) MarkUnread(ctx context.Context, token string, ids []string) error {
	_, err := c.graphql(ctx, token, markAsUnreadMutation, map[string]any{"notificationIDs": ids}, nil)
	return err
}

// CloudID resolves a tenant hostname to its Atlassian cloud id.
func (c *Client) CloudID(ctx context.Context, token string, hostname string) (string, error) {
	var data struct {
		TenantContexts []struct {
			CloudID string `json:"cloudId"`
		} `json:"tenantContexts"`
	}
	vars := map[string]any{"hostNames": []string{hostname}}
	if _, err := c.graphql(ctx, token, tenantContextQuery, vars, &data); err != nil {
		return "", err
	}
	if len(data.TenantContexts) == 0 || data.TenantContexts[0].CloudID == "" {
		return "", fmt.Errorf("no cloud id for hostname %q", hostname)
	}
	return data.TenantContexts[0].CloudID, nil
}

// JiraProjectType fetches the project type key for a Jira project.
func (c *Client) JiraProjectType(ctx context.Context, token string, cloudID, projectKey string) (string, error) {
	endpoint := fmt.Sprintf("%s/ex/jira/%s/rest/api/3/project/%s",
		c.APIBaseURL, url.PathEscape(cloudID), url.PathEscape(projectKey))

	var project struct {
		ProjectTypeKey string `json:"projectTypeKey"`
	}
	if err := c.rest(ctx, token, endpoint, &project); err != nil {
		return "", err
	}
	return project.ProjectTypeKey, nil
}

// Me fetches the profile of the authenticated user behind the token.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user struct {
		AccountID string `json:"account_id"`
		Email     string `json:"email"`
		Name      string `json:"name"`
		Picture   string `json:"picture"`
	}
	if err := c.rest(ctx, token, c.APIBaseURL+"/me", &user); err != nil {
		return nil, err
	}
	return &User{
		AccountID: user.AccountID,
		Email:     user.Email,
		Name:      user.Name,
		Picture:   user.Picture,
	}, nil
}

// rest performs an authenticated GET and decodes the JSON response into out.
func (c *Client) rest(ctx context.Context, token string, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
