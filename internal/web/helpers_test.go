package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/recipebox/internal/flash"
	"github.com/roach88/recipebox/internal/seed"
	"github.com/roach88/recipebox/internal/store"
	"github.com/roach88/recipebox/internal/testutil"
)

type testEnv struct {
	srv     *Server
	store   *store.Store
	flashes *flash.Store
	clock   *testutil.FixedClock
}

// newTestEnv creates a server over a store holding the default seed catalog.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.Open()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	recipes, err := seed.Default()
	require.NoError(t, err)
	require.NoError(t, st.Seed(context.Background(), recipes))

	flashes := flash.NewStore(flash.WithGenerator(testutil.NewSequenceTokens("")))
	clock := testutil.NewFixedDate(2026, time.October, 18)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := New(st, flashes, clock, log)
	require.NoError(t, err)

	return &testEnv{srv: srv, store: st, flashes: flashes, clock: clock}
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) post(path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

// liveCookies returns the cookies set on rec that were not expired.
func liveCookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	var out []*http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

func validForm() url.Values {
	return url.Values{
		"title":        {"Test"},
		"category":     {"Italian"},
		"ingredients":  {"x\ny"},
		"instructions": {"do it"},
	}
}
