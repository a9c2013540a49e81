package models

import (
	"strings"
	"time"
)

// InventoryItem is one catalog row. Several rows may share a normalized name
// and are then treated as a single product for stock purposes.
type InventoryItem struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Category         string    `json:"category" db:"category"`
	Location         string    `json:"location" db:"location"`
	ReorderThreshold int       `json:"reorder_threshold" db:"reorder_threshold"`
	SupplierID       *int64    `json:"supplier_id,omitempty" db:"supplier_id"`
	Deleted          bool      `json:"deleted" db:"deleted"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// NormalizedName returns the grouping key for the item.
func (i *InventoryItem) NormalizedName() string {
	return NormalizeName(i.Name)
}

// NormalizeName trims surrounding spaces and lowercases the name. Only the
// space character is trimmed so the result equals LOWER(TRIM(name)) in Postgres.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Trim(name, " "))
}

// ItemGroup is the set of non-deleted catalog rows sharing a normalized name.
type ItemGroup struct {
	Name    string           `json:"name"`
	Members []*InventoryItem `json:"members"`
}

// IDs returns the member ids in member order.
func (g *ItemGroup) IDs() []int64 {
	ids := make([]int64, 0, len(g.Members))
	for _, m := range g.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

// CanonicalID is the smallest member id. Alerts for the group are recorded
// against it so every member resolves to the same alert tuple.
func (g *ItemGroup) CanonicalID() int64 {
	var canonical int64
	for i, m := range g.Members {
		if i == 0 || m.ID < canonical {
			canonical = m.ID
		}
	}
	return canonical
}

// Threshold is the minimum reorder threshold across members.
func (g *ItemGroup) Threshold() int {
	threshold := 0
	for i, m := range g.Members {
		if i == 0 || m.ReorderThreshold < threshold {
			threshold = m.ReorderThreshold
		}
	}
	if threshold < 0 {
		return 0
	}
	return threshold
}
