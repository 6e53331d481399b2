package models

// ItemCraftingTable is the inventory item awarded by the study drill.
// The inventory store itself is generic over item names.
const ItemCraftingTable = "crafting_table"

// InventoryItem is one named-item counter within a scope.
type InventoryItem struct {
	Dimension string `json:"dimension"`
	Biome     string `json:"biome"`
	Item      string `json:"item"`
	Count     int    `json:"count"`
}
