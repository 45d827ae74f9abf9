package notifier_test

import (
	"testing"

	"github.com/dmitrymomot/tfakit/pkg/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	catalog, err := notifier.DefaultCatalog()
	require.NoError(t, err)
	assert.Contains(t, catalog.Locales(), "en")
	assert.Equal(t, "en", catalog.Locales()[0])
}

func TestCatalogRender(t *testing.T) {
	t.Parallel()

	catalog, err := notifier.DefaultCatalog()
	require.NoError(t, err)

	vars := map[string]string{"code": "135 792 468", "minutes": "5"}

	tests := []struct {
		name       string
		locale     string
		wantInBody string
	}{
		{
			name:       "english",
			locale:     "en",
			wantInBody: "This code is valid for 5 minutes. Your code is: 135 792 468",
		},
		{
			name:       "german",
			locale:     "de",
			wantInBody: "135 792 468",
		},
		{
			name:       "regional variant matches base language",
			locale:     "de-AT",
			wantInBody: "Minuten",
		},
		{
			name:       "unknown locale falls back to english",
			locale:     "ja",
			wantInBody: "This code is valid for 5 minutes",
		},
		{
			name:       "garbage locale falls back to english",
			locale:     "not a locale!",
			wantInBody: "This code is valid for 5 minutes",
		},
		{
			name:       "empty locale falls back to english",
			locale:     "",
			wantInBody: "This code is valid for 5 minutes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			subject, body := catalog.Render(tt.locale, vars)
			assert.NotEmpty(t, subject)
			assert.Contains(t, body, tt.wantInBody)
			assert.NotContains(t, body, "{code}")
			assert.NotContains(t, body, "{minutes}")
		})
	}
}

func TestNewCatalogValidation(t *testing.T) {
	t.Parallel()

	t.Run("not yaml", func(t *testing.T) {
		t.Parallel()
		_, err := notifier.NewCatalog([]byte("{{{"))
		assert.ErrorIs(t, err, notifier.ErrInvalidCatalog)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		_, err := notifier.NewCatalog([]byte(""))
		assert.ErrorIs(t, err, notifier.ErrInvalidCatalog)
	})

	t.Run("missing fallback locale", func(t *testing.T) {
		t.Parallel()
		_, err := notifier.NewCatalog([]byte("de:\n  subject: s\n  body: b\n"))
		assert.ErrorIs(t, err, notifier.ErrMissingFallback)
	})

	t.Run("invalid locale tag", func(t *testing.T) {
		t.Parallel()
		doc := "en:\n  subject: s\n  body: b\n\"!!!\":\n  subject: s\n  body: b\n"
		_, err := notifier.NewCatalog([]byte(doc))
		assert.ErrorIs(t, err, notifier.ErrInvalidCatalog)
	})
}
