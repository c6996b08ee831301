package preference_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrymomot/storefront/pkg/session"
)

// fakeRequest implements preference.Request over plain maps.
type fakeRequest struct {
	query   map[string]string
	cookies map[string]string
	headers map[string]string
	userID  string

	sess       map[string]any // nil: no session
	noSessions bool
	setErr     error
	inits      int
}

func newRequest() *fakeRequest {
	return &fakeRequest{
		query:   map[string]string{},
		cookies: map[string]string{},
		headers: map[string]string{},
	}
}

func (r *fakeRequest) Context() context.Context { return context.Background() }
func (r *fakeRequest) Query(name string) string { return r.query[name] }
func (r *fakeRequest) Header(name string) string { return r.headers[name] }
func (r *fakeRequest) UserID() string { return r.userID }

func (r *fakeRequest) Cookie(name string) (string, error) {
	v, ok := r.cookies[name]
	if !ok {
		return "", http.ErrNoCookie
	}
	return v, nil
}

func (r *fakeRequest) SessionValue(key string) (any, error) {
	if r.noSessions {
		return nil, session.ErrNotConfigured
	}
	if r.sess == nil {
		return nil, session.ErrNotFound
	}
	return r.sess[key], nil
}

func (r *fakeRequest) SetSessionValue(key string, val any) error {
	if r.noSessions {
		return session.ErrNotConfigured
	}
	if r.setErr != nil {
		return r.setErr
	}
	if r.sess == nil {
		return session.ErrNotFound
	}
	r.sess[key] = val
	return nil
}

func (r *fakeRequest) InitSession() error {
	if r.noSessions {
		return session.ErrNotConfigured
	}
	r.inits++
	if r.sess == nil {
		r.sess = map[string]any{}
	}
	return nil
}

var errStoreDown = errors.New("store down")
