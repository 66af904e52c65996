package inventory

import (
	"encoding/json"

	"github.com/erazemk/polica/internal/model"
)

// ItemPatch is a partial update for an item. Each field is only applied
// when its key was present in the decoded bundle, so the patch can
// distinguish "not supplied" from "set to null" for nullable fields.
//
// The field set is closed: id, attachments and the timestamps are not
// part of it, and unknown keys in a bundle are dropped during decoding.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	AreaID       *string  `json:"area_id"`
	ZoneEntityID *string  `json:"zone_entity_id"`
	HALabelIDs   []string `json:"ha_label_ids"`

	CategoryID *string `json:"category_id"`

	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`

	PurchaseDate      *string  `json:"purchase_date"`
	PurchasePrice     *float64 `json:"purchase_price"`
	PurchaseCurrency  *string  `json:"purchase_currency"`
	WarrantyExpiresAt *string  `json:"warranty_expires_at"`

	SerialNumber *string `json:"serial_number"`
	ModelNumber  *string `json:"model_number"`
	AssetTag     *string `json:"asset_tag"`
	Condition    *string `json:"condition"`
	Archived     *bool   `json:"archived"`
	ParentItemID *string `json:"parent_item_id"`

	CustomFields map[string]any `json:"custom_fields"`

	Notes *string `json:"notes"`

	present map[string]bool
}

// UnmarshalJSON decodes the patch and records which keys the bundle
// actually carried.
func (p *ItemPatch) UnmarshalJSON(data []byte) error {
	type alias ItemPatch
	if err := json.Unmarshal(data, (*alias)(p)); err != nil {
		return err
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	p.present = make(map[string]bool, len(keys))
	for k := range keys {
		p.present[k] = true
	}
	return nil
}

// Present reports whether the given key was supplied in the bundle the
// patch was decoded from.
func (p *ItemPatch) Present(key string) bool {
	return p.present[key]
}

// apply copies every supplied field onto the item, verbatim and without
// validation. Non-nullable fields ignore an explicit null.
func (p *ItemPatch) apply(item *model.Item) {
	if p.Present("name") && p.Name != nil {
		item.Name = *p.Name
	}
	if p.Present("description") && p.Description != nil {
		item.Description = *p.Description
	}
	if p.Present("area_id") {
		item.AreaID = p.AreaID
	}
	if p.Present("zone_entity_id") {
		item.ZoneEntityID = p.ZoneEntityID
	}
	if p.Present("ha_label_ids") {
		item.HALabelIDs = p.HALabelIDs
	}
	if p.Present("category_id") {
		item.CategoryID = p.CategoryID
	}
	if p.Present("quantity") && p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Present("unit") && p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.Present("purchase_date") {
		item.PurchaseDate = p.PurchaseDate
	}
	if p.Present("purchase_price") {
		item.PurchasePrice = p.PurchasePrice
	}
	if p.Present("purchase_currency") {
		item.PurchaseCurrency = p.PurchaseCurrency
	}
	if p.Present("warranty_expires_at") {
		item.WarrantyExpiresAt = p.WarrantyExpiresAt
	}
	if p.Present("serial_number") {
		item.SerialNumber = p.SerialNumber
	}
	if p.Present("model_number") {
		item.ModelNumber = p.ModelNumber
	}
	if p.Present("asset_tag") {
		item.AssetTag = p.AssetTag
	}
	if p.Present("condition") {
		item.Condition = p.Condition
	}
	if p.Present("archived") && p.Archived != nil {
		item.Archived = *p.Archived
	}
	if p.Present("parent_item_id") {
		item.ParentItemID = p.ParentItemID
	}
	if p.Present("custom_fields") {
		item.CustomFields = p.CustomFields
	}
	if p.Present("notes") && p.Notes != nil {
		item.Notes = *p.Notes
	}
}
