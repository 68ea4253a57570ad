package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
)

// FormBody is a multipart form payload. When a request carries a FormBody,
// the client uses the multipart writer's content type (which includes the
// boundary) instead of forcing application/json.
type FormBody struct {
	buf         bytes.Buffer
	w           *multipart.Writer
	contentType string
}

// NewFormBody starts an empty multipart form.
func NewFormBody() *FormBody {
	f := &FormBody{}
	f.w = multipart.NewWriter(&f.buf)
	return f
}

// AddField appends a plain text field.
func (f *FormBody) AddField(name, value string) error {
	return f.w.WriteField(name, value)
}

// AddFile appends a file part read from r under the given field and
// file name.
func (f *FormBody) AddFile(field, fileName string, r io.Reader) error {
	part, err := f.w.CreateFormFile(field, fileName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("copy %s: %w", fileName, err)
	}
	return nil
}

// Close finalizes the form. Must be called before the body is sent;
// subsequent Add calls fail.
func (f *FormBody) Close() error {
	if err := f.w.Close(); err != nil {
		return err
	}
	f.contentType = f.w.FormDataContentType()
	return nil
}

// ContentType returns the multipart content type with boundary. Valid only
// after Close.
func (f *FormBody) ContentType() string {
	return f.contentType
}

// Reader exposes the encoded form payload.
func (f *FormBody) Reader() io.Reader {
	return &f.buf
}
