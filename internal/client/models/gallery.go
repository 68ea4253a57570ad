package models

// GalleryItem is one photo in the site gallery.
type GalleryItem struct {
	ID           int64  `json:"id"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	CollectionID int64  `json:"collection_id,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// GalleryCollection groups gallery items (an album).
type GalleryCollection struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ItemCount   int    `json:"item_count,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}
