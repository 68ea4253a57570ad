package models

// Ministry is a church ministry or small group.
type Ministry struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Leader      string `json:"leader,omitempty"`
	MeetingTime string `json:"meeting_time,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// MinistryInput is the payload for ministry create/update calls.
type MinistryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Leader      string `json:"leader,omitempty"`
	MeetingTime string `json:"meeting_time,omitempty"`
	ContactInfo string `json:"contact_info,omitempty"`
	ImageData   string `json:"image_data,omitempty"`
	ImageName   string `json:"image_name,omitempty"`
}
