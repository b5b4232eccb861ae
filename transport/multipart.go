package transport

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
)

var (
	// ErrMissingFieldName is returned for a multipart part without a form
	// field name.
	ErrMissingFieldName = errors.New("multipart field without a name")

	// ErrTooLarge is returned when the request body exceeds its cap.
	ErrTooLarge = errors.New("request body too large")

	// ErrMalformed is returned when the body is not valid multipart/form-data.
	ErrMalformed = errors.New("malformed multipart body")
)

// Field is one named form field with its full payload.
type Field struct {
	Name string
	Data []byte
}

// FieldReader iterates over the fields of a multipart/form-data request in
// wire order.
type FieldReader struct {
	mr *multipart.Reader
}

func NewFieldReader(r *http.Request) (*FieldReader, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &FieldReader{mr: mr}, nil
}

// Next drains the next field and returns it. It returns io.EOF once all
// fields have been read.
func (fr *FieldReader) Next() (Field, error) {
	part, err := fr.mr.NextPart()
	if err == io.EOF {
		return Field{}, io.EOF
	}
	if err != nil {
		return Field{}, classify(err)
	}
	defer func() {
		_ = part.Close()
	}()
	name := part.FormName()
	if name == "" {
		return Field{}, ErrMissingFieldName
	}
	data, err := ioutil.ReadAll(part)
	if err != nil {
		return Field{}, fmt.Errorf("%.40q: %w", name, classify(err))
	}
	return Field{Name: name, Data: data}, nil
}

func classify(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: limit is %d bytes", ErrTooLarge, mbe.Limit)
	}
	return fmt.Errorf("%w: %v", ErrMalformed, err)
}

// LimitBody caps request bodies at limit bytes. Requests declaring a larger
// Content-Length are refused with 413 before reaching next. Other bodies are
// cut off by http.MaxBytesReader, which readers see as an
// *http.MaxBytesError.
func LimitBody(next http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > limit {
			http.Error(w, fmt.Sprintf("%v: limit is %d bytes", ErrTooLarge, limit), http.StatusRequestEntityTooLarge)
			return
		}
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
		}
		next.ServeHTTP(w, r)
	})
}
