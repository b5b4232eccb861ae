package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
)

// RemoteStore implements Store. It requires to connect to a vidcast server,
// uploading through its multipart endpoint and downloading through its video
// endpoint.
type RemoteStore struct {
	address string
	client  *http.Client
}

func NewRemoteStore(address string) *RemoteStore {
	return &RemoteStore{address: address, client: http.DefaultClient}
}

// Put uploads value as a single form field. The server does not report prior
// values, so replaced is always false.
func (r *RemoteStore) Put(name string, value []byte) (prior []byte, replaced bool, err error) {
	if name == "" {
		return nil, false, ErrEmptyName
	}
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormField(name)
	if err != nil {
		return nil, false, err
	}
	if _, err := fw.Write(value); err != nil {
		return nil, false, err
	}
	if err := mw.Close(); err != nil {
		return nil, false, err
	}
	request, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s/upload", r.address), &body)
	if err != nil {
		return nil, false, err
	}
	request.Header.Set("Content-Type", mw.FormDataContentType())
	response, err := r.client.Do(request)
	if response != nil && response.Body != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}
	if err != nil {
		return nil, false, err
	}
	rbody, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, false, err
	}
	if response.StatusCode != http.StatusCreated {
		return nil, false, fmt.Errorf("%d: %s", response.StatusCode, bytes.TrimSpace(rbody))
	}
	return nil, false, nil
}

func (r *RemoteStore) Get(name string) (value []byte, err error) {
	response, err := r.client.Get(r.pathFor(name))
	if response != nil && response.Body != nil {
		defer func() {
			_ = response.Body.Close()
		}()
	}
	if err != nil {
		return nil, err
	}
	if response.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%.40q: %w", name, ErrNotFound)
	}
	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}
	if response.StatusCode != http.StatusOK {
		return nil, errors.New(string(bytes.TrimSpace(body)))
	}
	return body, nil
}

func (r *RemoteStore) pathFor(name string) string {
	return fmt.Sprintf("http://%s/video?name=%s", r.address, url.QueryEscape(name))
}
