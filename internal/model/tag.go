package model

// TagCategory groups tags (Style, Theme, Season, ...).
type TagCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Tag is a label attached to outfits. Every tag belongs to one category.
type Tag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	CategoryID int64  `json:"category_id"`

	// Joined fields (not always populated).
	CategoryName string `json:"category_name,omitempty"`
}

// Default tag categories.
const (
	TagCategoryStyle       = "Style"
	TagCategoryTheme       = "Theme"
	TagCategorySeason      = "Season"
	TagCategoryColorScheme = "Color Scheme"
	TagCategoryCustom      = "Custom"
)
