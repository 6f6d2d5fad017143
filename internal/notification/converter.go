// Package notification converts raw API notification records into the
// canonical domain model.
package notification

import (
	"context"
	"sync"

	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/product"
)

// ToDomain converts one raw feed node into a domain notification for the
// given account. Optional fields (entity, path, actor, icons) may be absent
// from the payload; they map to zero values rather than defaults.
func ToDomain(ctx context.Context, account domain.Account, node *atlassian.NotificationNode, inferrer *product.Inferrer) domain.Notification {
	head := node.HeadNotification

	n := domain.Notification{
		ID:        head.NotificationID,
		Message:   head.Content.Message,
		ReadState: domain.ReadState(head.ReadState),
		UpdatedAt: head.Timestamp,
		Category:  domain.Category(head.Category),
		URL:       head.Content.URL,
		Product:   inferrer.Infer(ctx, account.Credential, node),
		Account:   account,
		Group: domain.NotificationGroup{
			ID:               node.GroupID,
			Size:             node.GroupSize,
			AdditionalActors: toActors(node.AdditionalActors),
		},
	}
	if n.Group.Size < 1 {
		n.Group.Size = 1
	}

	if e := head.Content.Entity; e != nil {
		n.Entity = domain.Entity{Title: e.Title, URL: e.URL, IconURL: e.IconURL}
	}
	if len(head.Content.Path) > 0 {
		p := head.Content.Path[0]
		n.Path = &domain.Path{Title: p.Title, URL: p.URL, IconURL: p.IconURL}
	}
	if a := head.Content.Actor; a != nil {
		n.Actor = domain.Actor{DisplayName: a.DisplayName, AvatarURL: a.AvatarURL}
	}
	return n
}

// toActors converts raw API actors into domain actors.
func toActors(actors []atlassian.Actor) []domain.Actor {
	if len(actors) == 0 {
		return nil
	}
	out := make([]domain.Actor, len(actors))
	for i, a := range actors {
		out[i] = domain.Actor{DisplayName: a.DisplayName, AvatarURL: a.AvatarURL}
	}
	return out
}

// ToDomainSlice converts a feed page for an account. Records are converted
// concurrently since product inference may hit the network; output order
// matches input order.
func ToDomainSlice(ctx context.Context, account domain.Account, nodes []atlassian.NotificationNode, inferrer *product.Inferrer) []domain.Notification {
	notifs := make([]domain.Notification, len(nodes))

	var wg sync.WaitGroup
	for i := range nodes {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			notifs[i] = ToDomain(ctx, account, &nodes[i], inferrer)
		}(i)
	}
	wg.Wait()
	return notifs
}
