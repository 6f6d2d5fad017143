package cmd

import (
	"fmt"

	"github.com/atlassify/atlassify/internal/accounts"
	"github.com/atlassify/atlassify/internal/atlassian"
	"github.com/atlassify/atlassify/internal/fetch"
	"github.com/atlassify/atlassify/internal/product"
	"github.com/atlassify/atlassify/internal/settings"
)

// runtime bundles the dependencies most commands need.
type runtime struct {
	store        *accounts.Store
	client       *atlassian.Client
	orchestrator *fetch.Orchestrator
	settings     settings.State
}

// newRuntime wires the account store, transport client, and orchestrator.
func newRuntime() (*runtime, error) {
	st, err := settings.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	dbPath, err := accounts.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	store, err := accounts.NewStore(dbPath, accounts.NewKeyringStore())
	if err != nil {
		return nil, err
	}

	client := atlassian.NewClient()
	return &runtime{
		store:        store,
		client:       client,
		orchestrator: fetch.NewOrchestrator(client, product.NewInferrer(client)),
		settings:     st,
	}, nil
}

func (r *runtime) close() {
	_ = r.store.Close()
}
