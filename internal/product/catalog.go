// Package product provides the Atlassian product taxonomy and the logic
// that infers which product a raw notification belongs to.
package product

// Name identifies a logical Atlassian product.
type Name string

const (
	Bitbucket             Name = "bitbucket"
	Compass               Name = "compass"
	Confluence            Name = "confluence"
	Home                  Name = "home"
	Jira                  Name = "jira"
	JiraProductDiscovery  Name = "jira-product-discovery"
	JiraServiceManagement Name = "jira-service-management"
	RovoDev               Name = "rovo-dev"
	Teams                 Name = "teams"
	Unknown               Name = "unknown"
)

// IsValid checks if the product name is a catalog entry.
func (n Name) IsValid() bool {
	_, ok := catalog[n]
	return ok
}

// String returns the string representation of the product name.
func (n Name) String() string {
	return string(n)
}

// Product is one catalog entry. The catalog is immutable after process start.
type Product struct {
	Name         Name
	DisplayLabel string
	Logo         string
	HomeURL      string
}

var catalog = map[Name]Product{
	Bitbucket: {
		Name:         Bitbucket,
		DisplayLabel: "Bitbucket",
		Logo:         "🪣",
		HomeURL:      "https://bitbucket.org",
	},
	Compass: {
		Name:         Compass,
		DisplayLabel: "Compass",
		Logo:         "🧭",
		HomeURL:      "https://home.atlassian.com",
	},
	Confluence: {
		Name:         Confluence,
		DisplayLabel: "Confluence",
		Logo:         "📚",
		HomeURL:      "https://home.atlassian.com",
	},
	Home: {
		Name:         Home,
		DisplayLabel: "Atlassian Home",
		Logo:         "🏠",
		HomeURL:      "https://home.atlassian.com",
	},
	Jira: {
		Name:         Jira,
		DisplayLabel: "Jira",
		Logo:         "🧩",
		HomeURL:      "https://home.atlassian.com",
	},
	JiraProductDiscovery: {
		Name:         JiraProductDiscovery,
		DisplayLabel: "Jira Product Discovery",
		Logo:         "💡",
		HomeURL:      "https://home.atlassian.com",
	},
	JiraServiceManagement: {
		Name:         JiraServiceManagement,
		DisplayLabel: "Jira Service Management",
		Logo:         "🛎️",
		HomeURL:      "https://home.atlassian.com",
	},
	RovoDev: {
		Name:         RovoDev,
		DisplayLabel: "Rovo Dev",
		Logo:         "🤖",
		HomeURL:      "https://home.atlassian.com",
	},
	Teams: {
		Name:         Teams,
		DisplayLabel: "Teams",
		Logo:         "👥",
		HomeURL:      "https://home.atlassian.com",
	},
	Unknown: {
		Name:         Unknown,
		DisplayLabel: "Unknown",
		Logo:         "❓",
		HomeURL:      "https://home.atlassian.com",
	},
}

// order fixes the catalog iteration order for display purposes.
var order = []Name{
	Bitbucket,
	Compass,
	Confluence,
	Home,
	Jira,
	JiraProductDiscovery,
	JiraServiceManagement,
	RovoDev,
	Teams,
	Unknown,
}

// Lookup returns the catalog entry for a product name. Unrecognized names
// resolve to the unknown product.
func Lookup(n Name) Product {
	if p, ok := catalog[n]; ok {
		return p
	}
	return catalog[Unknown]
}

// All returns every catalog entry in display order.
func All() []Product {
	products := make([]Product, 0, len(order))
	for _, n := range order {
		products = append(products, catalog[n])
	}
	return products
}
