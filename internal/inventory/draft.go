package inventory

// ItemDraft carries the caller-supplied fields for item creation. It
// deliberately has no attachments field: attachments only enter through
// the photo ingestion path, so an "attachments" key in a creation
// bundle is dropped during decoding rather than merged.
type ItemDraft struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	AreaID       *string  `json:"area_id"`
	ZoneEntityID *string  `json:"zone_entity_id"`
	HALabelIDs   []string `json:"ha_label_ids"`

	CategoryID *string `json:"category_id"`

	// Quantity and Unit fall back to the model defaults when absent.
	Quantity *float64 `json:"quantity"`
	Unit     string   `json:"unit"`

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

	Notes string `json:"notes"`
}
