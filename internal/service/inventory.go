package service

import (
	"context"
	"errors"

	"github.com/erazemk/polica/internal/inventory"
)

var errMissingFile = errors.New(`missing required field "file"`)

// Operation names registered for the inventory store.
const (
	SvcAddItem         = "add_item"
	SvcUpdateItem      = "update_item"
	SvcDeleteItem      = "delete_item"
	SvcMoveItemArea    = "move_item_area"
	SvcSetItemZone     = "set_item_zone"
	SvcAddItemPhotoURL = "add_item_photo_url"
	SvcAddItemPhotoUpl = "add_item_photo_upload"
)

// RegisterInventory binds the inventory operations to the registry.
func RegisterInventory(reg *Registry, store *inventory.Store) {
	reg.Register(SvcAddItem, handleAddItem(store))
	reg.Register(SvcUpdateItem, handleUpdateItem(store))
	reg.Register(SvcDeleteItem, handleDeleteItem(store))
	reg.Register(SvcMoveItemArea, handleMoveItemArea(store))
	reg.Register(SvcSetItemZone, handleSetItemZone(store))
	reg.Register(SvcAddItemPhotoURL, handleAddItemPhotoURL(store))
	reg.Register(SvcAddItemPhotoUpl, handleAddItemPhotoUpload(store))
}

func handleAddItem(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		var draft inventory.ItemDraft
		if err := decodeBundle(data, &draft); err != nil {
			return nil, err
		}
		return store.AddItem(ctx, draft)
	}
}

func handleUpdateItem(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}

		changes := make(map[string]any, len(data))
		for k, v := range data {
			if k != "id" {
				changes[k] = v
			}
		}

		var patch inventory.ItemPatch
		if err := decodeBundle(changes, &patch); err != nil {
			return nil, err
		}
		return store.UpdateItem(ctx, id, &patch)
	}
}

func handleDeleteItem(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}
		return store.DeleteItem(ctx, id)
	}
}

func handleMoveItemArea(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}
		return store.MoveItemArea(ctx, id, optionalString(data, "area_id"))
	}
}

func handleSetItemZone(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}
		return store.SetItemZone(ctx, id, optionalString(data, "zone_entity_id"))
	}
}

func handleAddItemPhotoURL(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}
		imageURL, err := requireString(data, "image_url")
		if err != nil {
			return nil, err
		}

		var filename string
		if v := optionalString(data, "filename"); v != nil {
			filename = *v
		}
		return store.AddItemPhotoFromURL(ctx, id, imageURL, filename)
	}
}

func handleAddItemPhotoUpload(store *inventory.Store) Handler {
	return func(ctx context.Context, data map[string]any) (any, error) {
		id, err := requireString(data, "id")
		if err != nil {
			return nil, err
		}

		file, ok := data["file"].(map[string]any)
		if !ok {
			return nil, errMissingFile
		}

		var info inventory.FileInfo
		if err := decodeBundle(file, &info); err != nil {
			return nil, err
		}
		return store.AddItemPhotoFromFile(ctx, id, info)
	}
}
