package services

import (
	"context"
	"log"

	"stockwatch/internal/models"
	"stockwatch/internal/repositories"
)

// GroupResolver merges catalog rows sharing a normalized name into one group.
type GroupResolver interface {
	Resolve(ctx context.Context, item *models.InventoryItem) *models.ItemGroup
}

type groupResolver struct {
	itemRepo repositories.ItemRepository
}

func NewGroupResolver(itemRepo repositories.ItemRepository) GroupResolver {
	return &groupResolver{itemRepo: itemRepo}
}

// Resolve never fails. Blank names, deleted items, lookup errors and empty
// matches all fall back to a singleton group of the item itself.
func (r *groupResolver) Resolve(ctx context.Context, item *models.InventoryItem) *models.ItemGroup {
	name := item.NormalizedName()
	singleton := &models.ItemGroup{Name: name, Members: []*models.InventoryItem{item}}

	if name == "" || item.Deleted {
		return singleton
	}

	members, err := r.itemRepo.ListByNormalizedName(ctx, name)
	if err != nil {
		log.Printf("Failed to resolve name group for item %d (%q): %v", item.ID, name, err)
		return singleton
	}
	if len(members) == 0 {
		return singleton
	}

	found := false
	for _, m := range members {
		if m.ID == item.ID {
			found = true
			break
		}
	}
	if !found {
		members = append(members, item)
	}

	return &models.ItemGroup{Name: name, Members: members}
}
