package inventory

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/polica/internal/model"
	"github.com/erazemk/polica/internal/storage"
)

// Store holds the full inventory in memory and rewrites the persisted
// document after every successful mutation. The document store is the
// durable source of truth, reloaded at startup via Load.
//
// A single mutex serializes mutations. The store assumes one writer at
// a time; the mutex keeps that assumption safe when the store is
// mounted behind an HTTP server.
type Store struct {
	mu sync.Mutex

	storage  storage.Store
	client   *http.Client
	photoDir string

	// thumbnail, when set, produces a downscaled rendition of ingested
	// photo bytes. Failures are ignored: thumbnails are best-effort and
	// never affect the stored original or the attachment record.
	thumbnail func(content []byte) ([]byte, error)

	items      map[string]*model.Item
	categories map[string]*model.Category
}

// Options configures a Store.
type Options struct {
	// Storage is the document store the inventory is persisted to.
	Storage storage.Store

	// PhotoDir is the directory photos are written to, under the host's
	// public static-asset root. Created on first use.
	PhotoDir string

	// Client is used for URL photo fetches. http.DefaultClient if nil.
	Client *http.Client

	// Thumbnail, when non-nil, is applied to ingested photo bytes to
	// produce a thumbnail rendition (see internal/imaging).
	Thumbnail func(content []byte) ([]byte, error)
}

// New creates an inventory store. Call Load before use.
func New(opts Options) *Store {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}
	return &Store{
		storage:    opts.Storage,
		client:     client,
		photoDir:   opts.PhotoDir,
		thumbnail:  opts.Thumbnail,
		items:      make(map[string]*model.Item),
		categories: make(map[string]*model.Category),
	}
}

// Load replaces the in-memory state with the persisted document. An
// empty document is not an error and yields an empty inventory.
func (s *Store) Load(ctx context.Context) error {
	doc, err := s.storage.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[string]*model.Item, len(doc.Items))
	for i := range doc.Items {
		item := doc.Items[i]
		s.items[item.ID] = &item
	}

	s.categories = make(map[string]*model.Category, len(doc.Categories))
	for i := range doc.Categories {
		cat := doc.Categories[i]
		s.categories[cat.ID] = &cat
	}
	return nil
}

// save rewrites the whole persisted document from the in-memory state.
// Records are sorted by id so the stored blob is deterministic.
// Callers must hold s.mu.
func (s *Store) save(ctx context.Context) error {
	doc := &storage.Document{
		Items:      make([]model.Item, 0, len(s.items)),
		Categories: make([]model.Category, 0, len(s.categories)),
	}
	for _, item := range s.items {
		doc.Items = append(doc.Items, *item)
	}
	for _, cat := range s.categories {
		doc.Categories = append(doc.Categories, *cat)
	}
	slices.SortFunc(doc.Items, func(a, b model.Item) int {
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(doc.Categories, func(a, b model.Category) int {
		return strings.Compare(a.ID, b.ID)
	})
	return s.storage.Save(ctx, doc)
}

// AddItem creates a new item from the draft, assigning an id when the
// draft has none, and persists it.
func (s *Store) AddItem(ctx context.Context, draft ItemDraft) (*model.Item, error) {
	if draft.Name == "" {
		return nil, ErrNameRequired
	}

	id := draft.ID
	if id == "" {
		id = uuid.NewString()
	}

	now := time.Now().UTC()
	item := &model.Item{
		ID:                id,
		Name:              draft.Name,
		Description:       draft.Description,
		AreaID:            draft.AreaID,
		ZoneEntityID:      draft.ZoneEntityID,
		HALabelIDs:        draft.HALabelIDs,
		CategoryID:        draft.CategoryID,
		Quantity:          model.DefaultQuantity,
		Unit:              model.DefaultUnit,
		PurchaseDate:      draft.PurchaseDate,
		PurchasePrice:     draft.PurchasePrice,
		PurchaseCurrency:  draft.PurchaseCurrency,
		WarrantyExpiresAt: draft.WarrantyExpiresAt,
		SerialNumber:      draft.SerialNumber,
		ModelNumber:       draft.ModelNumber,
		AssetTag:          draft.AssetTag,
		Condition:         draft.Condition,
		Archived:          draft.Archived,
		ParentItemID:      draft.ParentItemID,
		CustomFields:      draft.CustomFields,
		Notes:             draft.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if draft.Quantity != nil {
		item.Quantity = *draft.Quantity
	}
	if draft.Unit != "" {
		item.Unit = draft.Unit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.items[id]
	s.items[id] = item
	if err := s.save(ctx); err != nil {
		if existed {
			s.items[id] = prev
		} else {
			delete(s.items, id)
		}
		return nil, err
	}
	return item, nil
}

// UpdateItem applies a partial update to an item. Supplied fields
// overwrite verbatim; unknown and non-patchable keys were already
// dropped when the patch was decoded. The updated_at timestamp is
// refreshed on success even when the patch is empty.
func (s *Store) UpdateItem(ctx context.Context, id string, patch *ItemPatch) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	prev := *item
	patch.apply(item)
	item.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx); err != nil {
		*item = prev
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an item and reports whether it existed. Photo
// files already written for the item are left on disk.
func (s *Store) DeleteItem(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return false, nil
	}

	delete(s.items, id)
	if err := s.save(ctx); err != nil {
		s.items[id] = item
		return false, err
	}
	return true, nil
}

// MoveItemArea sets the item's area reference. A nil area id clears it.
func (s *Store) MoveItemArea(ctx context.Context, id string, areaID *string) (*model.Item, error) {
	return s.setField(ctx, id, func(item *model.Item) {
		item.AreaID = areaID
	})
}

// SetItemZone sets the item's zone entity reference. A nil zone id
// clears it.
func (s *Store) SetItemZone(ctx context.Context, id string, zoneEntityID *string) (*model.Item, error) {
	return s.setField(ctx, id, func(item *model.Item) {
		item.ZoneEntityID = zoneEntityID
	})
}

// setField runs a single-field mutation with the shared bump-persist-
// return contract.
func (s *Store) setField(ctx context.Context, id string, mutate func(*model.Item)) (*model.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	prev := *item
	mutate(item)
	item.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx); err != nil {
		*item = prev
		return nil, err
	}
	return item, nil
}

// Item returns the item with the given id, or nil if absent.
func (s *Store) Item(id string) *model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil
	}
	return item
}

// Items returns all items sorted by name.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]model.Item, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, *item)
	}
	slices.SortFunc(items, func(a, b model.Item) int {
		return strings.Compare(a.Name, b.Name)
	})
	return items
}

// Categories returns all categories sorted by name.
func (s *Store) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	cats := make([]model.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		cats = append(cats, *cat)
	}
	slices.SortFunc(cats, func(a, b model.Category) int {
		return strings.Compare(a.Name, b.Name)
	})
	return cats
}
