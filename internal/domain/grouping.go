package domain

import (
	"sort"

	"github.com/atlassify/atlassify/internal/product"
)

// ProductGroup is all notifications for one product.
type ProductGroup struct {
	Product       product.Product
	Notifications []Notification
}

// UnreadCount counts the unread notifications in the group.
func (g *ProductGroup) UnreadCount() int {
	count := 0
	for i := range g.Notifications {
		if !g.Notifications[i].IsRead() {
			count++
		}
	}
	return count
}

// GroupByProduct groups notifications by their resolved product. Group order
// is first-seen order over the input; relative order within a group is
// preserved. Callers that want alphabetical order apply
// SortGroupsAlphabetically afterwards.
func GroupByProduct(notifs []Notification) []ProductGroup {
	index := make(map[product.Name]int)
	groups := make([]ProductGroup, 0)

	for _, n := range notifs {
		i, ok := index[n.Product.Name]
		if !ok {
			i = len(groups)
			index[n.Product.Name] = i
			groups = append(groups, ProductGroup{Product: n.Product})
		}
		groups[i].Notifications = append(groups[i].Notifications, n)
	}
	return groups
}

// SortGroupsAlphabetically orders groups by product display label.
func SortGroupsAlphabetically(groups []ProductGroup) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Product.DisplayLabel < groups[j].Product.DisplayLabel
	})
}

// SplitByGroupSize partitions notifications into singles (group size <= 1)
// and group heads (size > 1).
func SplitByGroupSize(notifs []Notification) (singles, grouped []Notification) {
	for _, n := range notifs {
		if n.IsGroup() {
			grouped = append(grouped, n)
		} else {
			singles = append(singles, n)
		}
	}
	return singles, grouped
}
