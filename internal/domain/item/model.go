package item

// Meta is the resolved metadata of an item as the pricing engine needs
// it: group and brand for scope matching, display name for responses.
type Meta struct {
	ItemCode    string `json:"item_code"`
	ItemGroup   string `json:"item_group"`
	Brand       string `json:"brand"`
	DisplayName string `json:"display_name"`
}
