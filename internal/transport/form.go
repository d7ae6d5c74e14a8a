package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
)

type filePart struct {
	field       string
	path        string
	fileName    string
	contentType string
}

// Form is a multipart/form-data body under construction.
type Form struct {
	fields [][2]string
	files  []filePart
}

func NewForm() *Form {
	return &Form{}
}

// Field appends a text field.
func (f *Form) Field(name, value string) *Form {
	f.fields = append(f.fields, [2]string{name, value})
	return f
}

// JSONField appends v encoded as JSON text.
func (f *Form) JSONField(name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode field %s: %w", name, err)
	}
	f.Field(name, string(raw))
	return nil
}

// File appends a local file. fileName defaults to the path's base name and
// contentType to a guess from the extension.
func (f *Form) File(field, path, fileName, contentType string) *Form {
	if fileName == "" {
		fileName = filepath.Base(path)
	}
	if contentType == "" {
		contentType = guessContentType(fileName)
	}
	f.files = append(f.files, filePart{field: field, path: path, fileName: fileName, contentType: contentType})
	return f
}

// FieldValues returns the values of a text field in insertion order.
func (f *Form) FieldValues(name string) []string {
	var out []string
	for _, kv := range f.fields {
		if kv[0] == name {
			out = append(out, kv[1])
		}
	}
	return out
}

// FileNames returns the synthesized file names attached under field.
func (f *Form) FileNames(field string) []string {
	var out []string
	for _, p := range f.files {
		if p.field == field {
			out = append(out, p.fileName)
		}
	}
	return out
}

func (f *Form) checkFiles() error {
	for _, p := range f.files {
		if p.path == "" {
			return &InvalidFileError{Field: p.field, Reason: "empty path"}
		}
		info, err := os.Stat(p.path)
		if err != nil {
			return &InvalidFileError{Field: p.field, Path: p.path, Reason: err.Error()}
		}
		if !info.Mode().IsRegular() {
			return &InvalidFileError{Field: p.field, Path: p.path, Reason: "not a regular file"}
		}
	}
	return nil
}

func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, kv := range f.fields {
		if err := w.WriteField(kv[0], kv[1]); err != nil {
			return nil, "", err
		}
	}
	for _, p := range f.files {
		if err := writeFile(w, p); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, p filePart) error {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(p.field), escapeQuotes(p.fileName)))
	h.Set("Content-Type", p.contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	src, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer src.Close()
	_, err = io.Copy(part, src)
	return err
}

// InvalidFileError is returned when a file part does not point at a readable local file.
type InvalidFileError struct {
	Field  string
	Path   string
	Reason string
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid file for field %s (%s): %s", e.Field, e.Path, e.Reason)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

func guessContentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".heic":
		return "image/heic"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
