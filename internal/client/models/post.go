package models

// PostStatus enumerates post lifecycle states.
type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Post is a news/blog article published on the site.
type Post struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt,omitempty"`
	Content   string     `json:"content,omitempty"`
	Category  string     `json:"category,omitempty"`
	Status    PostStatus `json:"status,omitempty"`
	AuthorID  int64      `json:"author_id,omitempty"`
	Featured  bool       `json:"featured,omitempty"`
	CreatedAt string     `json:"created_at,omitempty"`
	UpdatedAt string     `json:"updated_at,omitempty"`
}

// PostInput is the payload for post create/update calls.
type PostInput struct {
	Title     string     `json:"title"`
	Excerpt   string     `json:"excerpt,omitempty"`
	Content   string     `json:"content,omitempty"`
	Category  string     `json:"category,omitempty"`
	Status    PostStatus `json:"status,omitempty"`
	Featured  bool       `json:"featured,omitempty"`
	ImageData string     `json:"image_data,omitempty"`
	ImageName string     `json:"image_name,omitempty"`
}
