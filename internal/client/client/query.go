package client

import (
	"net/url"
	"strconv"
)

// ListOptions is the optional filter/pagination configuration accepted by
// list endpoints. Only the keys that are set are serialized; zero values
// mean "absent" (pointer fields distinguish false/0 from unset where the
// wire contract needs it).
type ListOptions struct {
	Page     int
	Limit    int
	Category string
	Type     string
	Status   string
	Search   string
	Featured *bool
	AuthorID int64
}

// Query serializes the present keys into a URL query string without the
// leading '?'. Returns "" when no key is set.
func (o *ListOptions) Query() string {
	if o == nil {
		return ""
	}

	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Category != "" {
		v.Set("category", o.Category)
	}
	if o.Type != "" {
		v.Set("type", o.Type)
	}
	if o.Status != "" {
		v.Set("status", o.Status)
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if o.Featured != nil {
		v.Set("featured", strconv.FormatBool(*o.Featured))
	}
	if o.AuthorID > 0 {
		v.Set("author_id", strconv.FormatInt(o.AuthorID, 10))
	}
	return v.Encode()
}

// withQuery appends the serialized options to an endpoint path.
func withQuery(endpoint string, opts *ListOptions) string {
	q := opts.Query()
	if q == "" {
		return endpoint
	}
	return endpoint + "?" + q
}
