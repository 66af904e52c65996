package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erazemk/polica/internal/inventory"
	"github.com/erazemk/polica/internal/model"
	"github.com/erazemk/polica/internal/storage"
)

func newTestRegistry(t *testing.T) (*Registry, *inventory.Store) {
	t.Helper()

	dir := t.TempDir()
	store := inventory.New(inventory.Options{
		Storage:  storage.NewFileStore(filepath.Join(dir, "inventory.json")),
		PhotoDir: filepath.Join(dir, "photos"),
	})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}

	reg := NewRegistry()
	RegisterInventory(reg, store)
	return reg, store
}

func callAddItem(t *testing.T, reg *Registry, data map[string]any) *model.Item {
	t.Helper()
	result, err := reg.Call(context.Background(), SvcAddItem, data)
	if err != nil {
		t.Fatalf("add_item: %v", err)
	}
	item, ok := result.(*model.Item)
	if !ok {
		t.Fatalf("expected *model.Item result, got %T", result)
	}
	return item
}

func TestRegistryListsServices(t *testing.T) {
	reg, _ := newTestRegistry(t)

	services := reg.Services()
	if len(services) != 7 {
		t.Fatalf("expected 7 registered services, got %d: %v", len(services), services)
	}
	if services[0] != SvcAddItem {
		t.Errorf("expected sorted names starting with add_item, got %q", services[0])
	}
}

func TestCallUnknownService(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.Call(context.Background(), "polish_item", nil); err == nil {
		t.Error("expected error for unknown service")
	}
}

func TestAddItemService(t *testing.T) {
	reg, _ := newTestRegistry(t)

	item := callAddItem(t, reg, map[string]any{
		"name":     "Drill",
		"quantity": 2.0,
		"unit":     "boxes",
		"unknown":  "dropped",
	})
	if item.Name != "Drill" {
		t.Errorf("expected name 'Drill', got %q", item.Name)
	}
	if item.Quantity != 2.0 || item.Unit != "boxes" {
		t.Errorf("expected quantity/unit applied, got %v %q", item.Quantity, item.Unit)
	}
}

func TestAddItemServiceRequiresName(t *testing.T) {
	reg, _ := newTestRegistry(t)

	_, err := reg.Call(context.Background(), SvcAddItem, map[string]any{"description": "nameless"})
	if !errors.Is(err, inventory.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestUpdateItemService(t *testing.T) {
	reg, store := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Drill"})

	result, err := reg.Call(context.Background(), SvcUpdateItem, map[string]any{
		"id":       item.ID,
		"quantity": 5.0,
		"id_typo":  "ignored",
	})
	if err != nil {
		t.Fatalf("update_item: %v", err)
	}
	updated := result.(*model.Item)
	if updated.Quantity != 5.0 {
		t.Errorf("expected quantity 5, got %v", updated.Quantity)
	}

	if got := store.Item(item.ID); got.Quantity != 5.0 {
		t.Errorf("expected store updated, got %v", got.Quantity)
	}
}

func TestUpdateItemServiceRequiresID(t *testing.T) {
	reg, _ := newTestRegistry(t)

	if _, err := reg.Call(context.Background(), SvcUpdateItem, map[string]any{"quantity": 5.0}); err == nil {
		t.Error("expected error for missing id")
	}
}

func TestDeleteItemService(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Old Lamp"})
	ctx := context.Background()

	result, err := reg.Call(ctx, SvcDeleteItem, map[string]any{"id": item.ID})
	if err != nil {
		t.Fatalf("delete_item: %v", err)
	}
	if result != true {
		t.Errorf("expected true, got %v", result)
	}

	result, err = reg.Call(ctx, SvcDeleteItem, map[string]any{"id": item.ID})
	if err != nil {
		t.Fatalf("second delete_item: %v", err)
	}
	if result != false {
		t.Errorf("expected false on second delete, got %v", result)
	}
}

func TestMoveItemAreaService(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Drill"})
	ctx := context.Background()

	result, err := reg.Call(ctx, SvcMoveItemArea, map[string]any{
		"id":      item.ID,
		"area_id": "workshop",
	})
	if err != nil {
		t.Fatalf("move_item_area: %v", err)
	}
	moved := result.(*model.Item)
	if moved.AreaID == nil || *moved.AreaID != "workshop" {
		t.Errorf("expected area 'workshop', got %v", moved.AreaID)
	}

	// Omitting area_id clears the reference.
	result, err = reg.Call(ctx, SvcMoveItemArea, map[string]any{"id": item.ID})
	if err != nil {
		t.Fatalf("move_item_area (clear): %v", err)
	}
	if result.(*model.Item).AreaID != nil {
		t.Error("expected area cleared")
	}
}

func TestSetItemZoneService(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Bike"})

	result, err := reg.Call(context.Background(), SvcSetItemZone, map[string]any{
		"id":             item.ID,
		"zone_entity_id": "zone.home",
	})
	if err != nil {
		t.Fatalf("set_item_zone: %v", err)
	}
	if zone := result.(*model.Item).ZoneEntityID; zone == nil || *zone != "zone.home" {
		t.Errorf("expected zone 'zone.home', got %v", zone)
	}
}

func TestAddItemPhotoUploadService(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Camera"})

	src := filepath.Join(t.TempDir(), "upload.jpg")
	if err := os.WriteFile(src, []byte("jpeg bytes"), 0o644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}

	result, err := reg.Call(context.Background(), SvcAddItemPhotoUpl, map[string]any{
		"id": item.ID,
		"file": map[string]any{
			"path":         src,
			"filename":     "upload.jpg",
			"content_type": "image/jpeg",
		},
	})
	if err != nil {
		t.Fatalf("add_item_photo_upload: %v", err)
	}
	got := result.(*model.Item)
	if len(got.Attachments) != 1 || got.Attachments[0].Name != "upload.jpg" {
		t.Errorf("expected one attachment 'upload.jpg', got %+v", got.Attachments)
	}
}

func TestAddItemPhotoUploadServiceRequiresFile(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Camera"})

	if _, err := reg.Call(context.Background(), SvcAddItemPhotoUpl, map[string]any{"id": item.ID}); err == nil {
		t.Error("expected error for missing file bundle")
	}
}

func TestAddItemPhotoURLServiceRequiresURL(t *testing.T) {
	reg, _ := newTestRegistry(t)
	item := callAddItem(t, reg, map[string]any{"name": "Camera"})

	if _, err := reg.Call(context.Background(), SvcAddItemPhotoURL, map[string]any{"id": item.ID}); err == nil {
		t.Error("expected error for missing image_url")
	}
}
