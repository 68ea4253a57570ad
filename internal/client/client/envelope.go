package client

import (
	"encoding/json"
	"fmt"
)

// Pagination describes the list-endpoint page window. Present only on
// list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// FieldError is a field-level validation failure reported by the backend.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the uniform shape of every backend response:
// {success, message, data, errors, pagination}. Data stays raw until a
// caller decodes it into an endpoint-specific type.
//
// Invariant: Success==false means Data must not be assumed populated.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     []FieldError    `json:"errors,omitempty"`
	Pagination *Pagination     `json:"pagination,omitempty"`
}

// Result carries a decoded envelope with a typed payload.
type Result[T any] struct {
	Success    bool
	Message    string
	Data       T
	Errors     []FieldError
	Pagination *Pagination
}

// DecodeResult converts an Envelope into a typed Result. The Data field is
// decoded only when the envelope reports success and carries a payload;
// otherwise the zero value of T is returned alongside the failure fields.
// A payload that does not decode into T maps to ErrMalformedResponse.
func DecodeResult[T any](env *Envelope) (*Result[T], error) {
	res := &Result[T]{
		Success:    env.Success,
		Message:    env.Message,
		Errors:     env.Errors,
		Pagination: env.Pagination,
	}
	if !env.Success || len(env.Data) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(env.Data, &res.Data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return res, nil
}
