package domain

import "sort"

// SortChronologically orders notifications newest first. The sort is stable
// so records sharing a timestamp keep their fetch order.
func SortChronologically(notifs []Notification) {
	sort.SliceStable(notifs, func(i, j int) bool {
		return notifs[i].UpdatedAt.After(notifs[j].UpdatedAt)
	})
}

// SortUnreadFirst orders unread notifications before read ones, keeping
// relative order within each partition.
func SortUnreadFirst(notifs []Notification) {
	sort.SliceStable(notifs, func(i, j int) bool {
		return !notifs[i].IsRead() && notifs[j].IsRead()
	})
}
