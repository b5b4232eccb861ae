package transport_test

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nicolagi/vidcast/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartRequest(t *testing.T, fields ...transport.Field) *http.Request {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range fields {
		fw, err := mw.CreateFormField(f.Name)
		require.Nil(t, err)
		_, err = fw.Write(f.Data)
		require.Nil(t, err)
	}
	require.Nil(t, mw.Close())
	r := httptest.NewRequest(http.MethodPost, "/upload", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func readAll(t *testing.T, r *http.Request) ([]transport.Field, error) {
	fr, err := transport.NewFieldReader(r)
	if err != nil {
		return nil, err
	}
	var fields []transport.Field
	for {
		f, err := fr.Next()
		if err == io.EOF {
			return fields, nil
		}
		if err != nil {
			return fields, err
		}
		fields = append(fields, f)
	}
}

func TestFieldReader(t *testing.T) {
	t.Run("fields come in wire order", func(t *testing.T) {
		r := multipartRequest(t,
			transport.Field{Name: "b", Data: []byte("second")},
			transport.Field{Name: "a", Data: []byte("first")},
			transport.Field{Name: "empty", Data: nil},
		)
		fields, err := readAll(t, r)
		require.Nil(t, err)
		require.Len(t, fields, 3)
		assert.Equal(t, "b", fields[0].Name)
		assert.Equal(t, []byte("second"), fields[0].Data)
		assert.Equal(t, "a", fields[1].Name)
		assert.Equal(t, []byte("first"), fields[1].Data)
		assert.Equal(t, "empty", fields[2].Name)
		assert.Len(t, fields[2].Data, 0)
	})
	t.Run("file parts use their form name", func(t *testing.T) {
		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		fw, err := mw.CreateFormFile("video", "clip.mp4")
		require.Nil(t, err)
		_, err = fw.Write([]byte("frames"))
		require.Nil(t, err)
		require.Nil(t, mw.Close())
		r := httptest.NewRequest(http.MethodPost, "/upload", &body)
		r.Header.Set("Content-Type", mw.FormDataContentType())
		fields, err := readAll(t, r)
		require.Nil(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "video", fields[0].Name)
		assert.Equal(t, []byte("frames"), fields[0].Data)
	})
	t.Run("field without a name", func(t *testing.T) {
		r := multipartRequest(t, transport.Field{Name: "", Data: []byte("x")})
		_, err := readAll(t, r)
		assert.True(t, errors.Is(err, transport.ErrMissingFieldName))
	})
	t.Run("not a multipart body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("plain"))
		r.Header.Set("Content-Type", "text/plain")
		_, err := readAll(t, r)
		assert.True(t, errors.Is(err, transport.ErrMalformed))
	})
	t.Run("broken framing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("--xyz\r\nContent-Disposition: form-data; name=\"a\"\r\n\r\ntruncated"))
		r.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		_, err := readAll(t, r)
		assert.True(t, errors.Is(err, transport.ErrMalformed))
	})
}

func TestLimitBody(t *testing.T) {
	var gotErr error
	var gotFields []transport.Field
	h := transport.LimitBody(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFields, gotErr = readAll(t, r)
	}), 4096)

	t.Run("declared length over the cap is refused upfront", func(t *testing.T) {
		gotErr, gotFields = nil, nil
		r := multipartRequest(t, transport.Field{Name: "big", Data: bytes.Repeat([]byte("x"), 5000)})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Nil(t, gotFields)
		assert.Nil(t, gotErr)
	})
	t.Run("undeclared length over the cap fails while reading", func(t *testing.T) {
		gotErr, gotFields = nil, nil
		r := multipartRequest(t, transport.Field{Name: "big", Data: bytes.Repeat([]byte("x"), 5000)})
		r.ContentLength = -1
		h.ServeHTTP(httptest.NewRecorder(), r)
		assert.True(t, errors.Is(gotErr, transport.ErrTooLarge), "got %v", gotErr)
		assert.Empty(t, gotFields)
	})
	t.Run("bodies under the cap pass", func(t *testing.T) {
		gotErr, gotFields = nil, nil
		r := multipartRequest(t, transport.Field{Name: "greeting", Data: []byte("hello")})
		h.ServeHTTP(httptest.NewRecorder(), r)
		require.Nil(t, gotErr)
		require.Len(t, gotFields, 1)
		assert.Equal(t, []byte("hello"), gotFields[0].Data)
	})
}
