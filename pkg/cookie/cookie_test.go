package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/cookie"
)

var (
	secretA = strings.Repeat("a", 32)
	secretB = strings.Repeat("b", 32)
)

// roundTrip copies the cookies written to rec onto a new request.
func roundTrip(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := cookie.New(nil)
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"", ""})
	require.ErrorIs(t, err, cookie.ErrNoSecret)

	_, err = cookie.New([]string{"short"})
	require.ErrorIs(t, err, cookie.ErrSecretTooShort)

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	require.NotNil(t, m)
}

func TestSigned(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA}, cookie.WithMaxAge(3600))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	m.SetSigned(rec, "visitor", "9b2c")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	assert.NotContains(t, cookies[0].Value, "9b2c")

	got, err := m.GetSigned(roundTrip(rec), "visitor")
	require.NoError(t, err)
	assert.Equal(t, "9b2c", got)
}

func TestSignedTampered(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  error
	}{
		{"no separator", "abc", cookie.ErrInvalidFormat},
		{"bad encoding", "!!!.sig", cookie.ErrInvalidFormat},
		{"wrong signature", "dmFsdWU.c2ln", cookie.ErrInvalidSignature},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: "visitor", Value: tt.value})
			_, err := m.GetSigned(req, "visitor")
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = m.GetSigned(httptest.NewRequest(http.MethodGet, "/", nil), "visitor")
	assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
}

func TestSecretRotation(t *testing.T) {
	t.Parallel()

	oldM, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	oldM.SetSigned(rec, "visitor", "v1")

	rotated, err := cookie.New([]string{secretB, secretA})
	require.NoError(t, err)
	got, err := rotated.GetSigned(roundTrip(rec), "visitor")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	dropped, err := cookie.New([]string{secretB})
	require.NoError(t, err)
	_, err = dropped.GetSigned(roundTrip(rec), "visitor")
	assert.ErrorIs(t, err, cookie.ErrInvalidSignature)
}

func TestDelete(t *testing.T) {
	t.Parallel()

	m, err := cookie.New([]string{secretA})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	m.Delete(rec, "visitor")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	m, err := cookie.NewFromConfig(cookie.Config{Secrets: " " + secretA + " , " + secretB, Secure: true, Path: "/booking"})
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	m.Set(rec, "plain", "x")
	c := rec.Result().Cookies()[0]
	assert.True(t, c.Secure)
	assert.Equal(t, "/booking", c.Path)

	_, err = cookie.NewFromConfig(cookie.Config{})
	assert.ErrorIs(t, err, cookie.ErrNoSecret)
}
