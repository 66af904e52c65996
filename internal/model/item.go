package model

import "time"

// Item represents a tracked physical object.
//
// Area, zone and label ids reference registries owned by the host
// platform; category_id and parent_item_id are soft references into the
// local data set. None of them are validated here.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	AreaID       *string  `json:"area_id"`
	ZoneEntityID *string  `json:"zone_entity_id"`
	HALabelIDs   []string `json:"ha_label_ids"`

	CategoryID *string `json:"category_id"`

	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`

	PurchaseDate      *string  `json:"purchase_date"`
	PurchasePrice     *float64 `json:"purchase_price"`
	PurchaseCurrency  *string  `json:"purchase_currency"`
	WarrantyExpiresAt *string  `json:"warranty_expires_at"`

	SerialNumber *string `json:"serial_number"`
	ModelNumber  *string `json:"model_number"`
	AssetTag     *string `json:"asset_tag"`
	Condition    *string `json:"condition"`
	Archived     bool    `json:"archived"`
	ParentItemID *string `json:"parent_item_id"`

	CustomFields map[string]any `json:"custom_fields"`

	// Attachments are append-only: they can only grow through the photo
	// ingestion path and only disappear with the whole item.
	Attachments []Attachment `json:"attachments"`

	Notes string `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item defaults.
const (
	DefaultQuantity = 1.0
	DefaultUnit     = "pcs"
)
