package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
)

// File is a binary attachment destined for a multipart request.
type File struct {
	// Name is the filename reported to the server.
	Name string
	// Content supplies the file bytes.
	Content io.Reader
}

type partKind int

const (
	partField partKind = iota
	partJSON
	partFile
)

type formPart struct {
	kind  partKind
	field string
	value string
	json  any
	file  File
}

// Form declares a multipart body part by part. Absent values never make it
// into the encoded body: empty strings, nil pointers, and nil files are
// skipped at declaration time rather than filtered when sending.
type Form struct {
	parts []formPart
}

func NewForm() *Form {
	return &Form{}
}

// Field adds a text part, skipping empty values.
func (f *Form) Field(name, value string) *Form {
	if value == "" {
		return f
	}
	f.parts = append(f.parts, formPart{kind: partField, field: name, value: value})
	return f
}

// OptionalField adds a text part only when the pointer is non-nil. A non-nil
// empty string is still sent, so callers can clear a server-side value.
func (f *Form) OptionalField(name string, value *string) *Form {
	if value == nil {
		return f
	}
	f.parts = append(f.parts, formPart{kind: partField, field: name, value: *value})
	return f
}

// IntField adds a numeric text part.
func (f *Form) IntField(name string, value int) *Form {
	f.parts = append(f.parts, formPart{kind: partField, field: name, value: strconv.Itoa(value)})
	return f
}

// JSONField adds a part whose value is the JSON encoding of v, skipping nil.
func (f *Form) JSONField(name string, v any) *Form {
	if v == nil {
		return f
	}
	f.parts = append(f.parts, formPart{kind: partJSON, field: name, json: v})
	return f
}

// AddFile attaches a binary part, skipping files without content.
func (f *Form) AddFile(field string, file *File) *Form {
	if file == nil || file.Content == nil {
		return f
	}
	f.parts = append(f.parts, formPart{kind: partFile, field: field, file: *file})
	return f
}

// HasFile reports whether a part was declared for the given file field.
func (f *Form) HasFile(field string) bool {
	for _, part := range f.parts {
		if part.kind == partFile && part.field == field {
			return true
		}
	}
	return false
}

// Len returns the number of declared parts.
func (f *Form) Len() int {
	return len(f.parts)
}

// Encode writes the declared parts into a multipart body and returns it with
// its content type.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, part := range f.parts {
		switch part.kind {
		case partField:
			if err := writer.WriteField(part.field, part.value); err != nil {
				return nil, "", fmt.Errorf("write field %q: %w", part.field, err)
			}
		case partJSON:
			encoded, err := json.Marshal(part.json)
			if err != nil {
				return nil, "", fmt.Errorf("marshal field %q: %w", part.field, err)
			}
			if err := writer.WriteField(part.field, string(encoded)); err != nil {
				return nil, "", fmt.Errorf("write field %q: %w", part.field, err)
			}
		case partFile:
			dest, err := writer.CreateFormFile(part.field, part.file.Name)
			if err != nil {
				return nil, "", fmt.Errorf("create file part %q: %w", part.field, err)
			}
			if _, err := io.Copy(dest, part.file.Content); err != nil {
				return nil, "", fmt.Errorf("copy file part %q: %w", part.field, err)
			}
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return body, writer.FormDataContentType(), nil
}
