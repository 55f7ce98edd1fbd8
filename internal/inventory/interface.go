package inventory

import (
	"context"

	"github.com/opencrowbar/crowbar-inventory/internal/model"
)

// Source is an Ansible dynamic inventory source.
type Source interface {
	// Fetch returns the inventory JSON for the query as received, it is not parsed or validated.
	Fetch(ctx context.Context, query model.Query) ([]byte, error)
}

var _ Source = (*Client)(nil)
