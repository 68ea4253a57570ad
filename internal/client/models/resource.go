package models

// ResourceType enumerates downloadable resource kinds.
type ResourceType string

const (
	ResourceTypeSermon   ResourceType = "sermon"
	ResourceTypeBulletin ResourceType = "bulletin"
	ResourceTypeStudy    ResourceType = "study"
	ResourceTypeForm     ResourceType = "form"
)

// Resource is a downloadable file (sermon recording, bulletin, study guide).
// The binary payload itself is fetched from the raw file endpoint, outside
// the JSON envelope.
type Resource struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        ResourceType `json:"type,omitempty"`
	FileName    string       `json:"file_name,omitempty"`
	FileSize    int64        `json:"file_size,omitempty"`
	MimeType    string       `json:"mime_type,omitempty"`
	CreatedAt   string       `json:"created_at,omitempty"`
}
