// Package format renders notification results for terminal output.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/domain"
)

var (
	productHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	accountStyle       = lipgloss.NewStyle().Bold(true)
	unreadStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	readStyle          = lipgloss.NewStyle().Faint(true)
	metaStyle          = lipgloss.NewStyle().Faint(true)
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	groupBadgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
)

// Options control how results are rendered.
type Options struct {
	GroupByProduct      bool
	GroupAlphabetically bool
	ShowAccountHeader   bool
	Now                 time.Time
}

// Results renders per-account fetch results as styled text.
func Results(results []domain.AccountNotifications, opts Options) string {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		if opts.ShowAccountHeader {
			b.WriteString(accountStyle.Render(r.Account.Username))
			b.WriteString("\n")
		}
		if r.Error != nil {
			b.WriteString(errorStyle.Render("  " + accountError(r.Error)))
			b.WriteString("\n")
			continue
		}
		if len(r.Notifications) == 0 {
			b.WriteString(metaStyle.Render("  no notifications"))
			b.WriteString("\n")
			continue
		}
		if opts.GroupByProduct {
			groups := domain.GroupByProduct(r.Notifications)
			if opts.GroupAlphabetically {
				domain.SortGroupsAlphabetically(groups)
			}
			for _, g := range groups {
				header := fmt.Sprintf("%s %s (%d)", g.Product.Logo, g.Product.DisplayLabel, len(g.Notifications))
				b.WriteString(productHeaderStyle.Render("  " + header))
				b.WriteString("\n")
				for i := range g.Notifications {
					b.WriteString(Row(&g.Notifications[i], opts.Now))
					b.WriteString("\n")
				}
			}
		} else {
			for i := range r.Notifications {
				b.WriteString(Row(&r.Notifications[i], opts.Now))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

// Row renders one notification line.
func Row(n *domain.Notification, now time.Time) string {
	bullet := unreadStyle.Render("●")
	msgStyle := lipgloss.NewStyle()
	if n.IsRead() {
		bullet = readStyle.Render("○")
		msgStyle = readStyle
	}

	line := fmt.Sprintf("    %s %s", bullet, msgStyle.Render(n.Message))
	if n.IsGroup() {
		line += " " + groupBadgeStyle.Render(fmt.Sprintf("[+%d]", n.Group.Size-1))
	}
	meta := fmt.Sprintf("%s · %s", n.Actor.DisplayName, Age(n.UpdatedAt, now))
	if n.Entity.Title != "" {
		meta = n.Entity.Title + " · " + meta
	}
	line += "  " + metaStyle.Render(meta)
	return line
}

// Age formats the elapsed time since t in compact form.
func Age(t time.Time, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// accountError renders an error-tagged account entry.
func accountError(err error) string {
	if cerr, ok := err.(*atlassian.ClassifiedError); ok {
		return cerr.Kind.Description()
	}
	return err.Error()
}
