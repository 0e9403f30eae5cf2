package binder_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himtrails/tourbook/pkg/binder"
)

type request struct {
	Field   string   `path:"field"`
	Value   string   `form:"value" json:"value" query:"value"`
	People  int      `form:"people" json:"people" query:"people"`
	Tags    []string `query:"tags"`
	Consent *bool    `form:"consent" json:"consent"`
	Ignored string   `form:"-" query:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("binds urlencoded body", func(t *testing.T) {
		t.Parallel()
		body := url.Values{"value": {"Jane Doe"}, "people": {"2"}, "consent": {"on"}, "ignored": {"x"}}
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var req request
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "Jane Doe", req.Value)
		assert.Equal(t, 2, req.People)
		require.NotNil(t, req.Consent)
		assert.True(t, *req.Consent)
		assert.Empty(t, req.Ignored)
	})

	t.Run("skips other content types", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")

		var req request
		assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrNotApplicable)
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("people=two"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var req request
		assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrFailedToParseForm)
	})

	t.Run("rejects non-struct target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("value=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var s string
		err := binder.Form()(r, &s)
		assert.ErrorIs(t, err, binder.ErrInvalidTarget)
	})
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("binds body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":"a@b.co","people":3}`))
		r.Header.Set("Content-Type", "application/json; charset=utf-8")

		var req request
		require.NoError(t, binder.JSON()(r, &req))
		assert.Equal(t, "a@b.co", req.Value)
		assert.Equal(t, 3, req.People)
	})

	t.Run("unknown fields are errors", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nope":1}`))
		r.Header.Set("Content-Type", "application/json")

		var req request
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrFailedToParseJSON)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		r.Header.Set("Content-Type", "application/json")

		var req request
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrFailedToParseJSON)
	})

	t.Run("trailing object", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":"a"} {"value":"b"}`))
		r.Header.Set("Content-Type", "application/json")

		var req request
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrFailedToParseJSON)
	})

	t.Run("skips forms", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("value=x"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var req request
		assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrNotApplicable)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/?value=x&people=4&tags=a,b&tags=c", nil)

	var req request
	require.NoError(t, binder.Query()(r, &req))
	assert.Equal(t, "x", req.Value)
	assert.Equal(t, 4, req.People)
	assert.Equal(t, []string{"a", "b", "c"}, req.Tags)
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"field": "email"}
	extract := func(_ *http.Request, name string) string { return params[name] }
	r := httptest.NewRequest(http.MethodPost, "/fields/email/input", nil)

	var req request
	require.NoError(t, binder.Path(extract)(r, &req))
	assert.Equal(t, "email", req.Field)

	assert.ErrorIs(t, binder.Path(nil)(r, &req), binder.ErrNotApplicable)
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("reads datastar body", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":"Kedarnath"}`))
		r.Header.Set("Datastar-Request", "true")
		r.Header.Set("Content-Type", "application/json")

		var req struct {
			Value string `json:"value"`
		}
		require.NoError(t, binder.Signals()(r, &req))
		assert.Equal(t, "Kedarnath", req.Value)
	})

	t.Run("skips plain requests", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))

		var req request
		assert.ErrorIs(t, binder.Signals()(r, &req), binder.ErrNotApplicable)
	})
}

func TestJSONLeavesDatastarToSignals(t *testing.T) {
	t.Parallel()

	body := `{"form":{"name":"Jane"}}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Datastar-Request", "true")

	var req struct {
		Form map[string]any `json:"form"`
	}
	assert.ErrorIs(t, binder.JSON()(r, &req), binder.ErrNotApplicable)
	require.NoError(t, binder.Signals()(r, &req))
	assert.Equal(t, "Jane", req.Form["name"])
}
