// Package tray derives the tray icon directive from notification state.
// It performs no I/O; the tray integration consumes its output.
package tray

import "strconv"

// IconKind names the tray icon variants.
type IconKind string

const (
	IconActive        IconKind = "active"
	IconIdle          IconKind = "idle"
	IconIdleAlternate IconKind = "idle-alternate"
	IconError         IconKind = "error"
	IconOffline       IconKind = "offline"
)

// String returns the string representation of the icon kind.
func (k IconKind) String() string {
	return string(k)
}

// Options are the settings that influence tray derivation.
type Options struct {
	// UseUnreadActiveIcon switches to the active icon when unread
	// notifications exist.
	UseUnreadActiveIcon bool
	// UseAlternateIdleIcon selects the alternate idle variant.
	UseAlternateIdleIcon bool
	// ShowCountInTitle puts the unread count next to the icon.
	ShowCountInTitle bool
}

// State is the directive handed to the tray integration.
type State struct {
	Icon  IconKind
	Title string
}

// Derive computes the tray state. A negative count is the sentinel for
// "last fetch errored".
func Derive(count int, hasMore, online bool, opts Options) State {
	if !online {
		return State{Icon: IconOffline}
	}
	if count < 0 {
		return State{Icon: IconError}
	}

	idle := IconIdle
	if opts.UseAlternateIdleIcon {
		idle = IconIdleAlternate
	}

	if count == 0 {
		return State{Icon: idle}
	}

	icon := idle
	if opts.UseUnreadActiveIcon {
		icon = IconActive
	}
	title := ""
	if opts.ShowCountInTitle {
		title = strconv.Itoa(count)
		if hasMore {
			title += "+"
		}
	}
	return State{Icon: icon, Title: title}
}
