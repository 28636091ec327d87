package i18n

import (
	"context"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitI18n_LoadsEmbeddedLocales(t *testing.T) {
	b, err := InitI18n("en")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.ElementsMatch(t, []string{"en", "zh"}, SupportedLanguages)

	again, err := InitI18n("zh")
	require.NoError(t, err)
	assert.Same(t, b, again)
}

func TestT(t *testing.T) {
	b, err := InitI18n("en")
	require.NoError(t, err)

	assert.Equal(t, "invalid url", T(context.Background(), "error.invalid_url", nil))
	assert.Equal(t, "no.such.key", T(context.Background(), "no.such.key", nil))

	zh := WithLocalizer(context.Background(), i18n.NewLocalizer(b, "zh"))
	assert.Equal(t, "无效的网址", T(zh, "error.invalid_url", nil))

	// 缺失的翻译回退到默认语言
	fr := WithLocalizer(context.Background(), i18n.NewLocalizer(b, "fr"))
	assert.Equal(t, "No short URL found", T(fr, "error.short_url_not_found", nil))
}

func TestCanonicalIgnoresRequestLanguage(t *testing.T) {
	_, err := InitI18n("en")
	require.NoError(t, err)

	assert.Equal(t, "invalid url", Canonical("error.invalid_url", nil))
	assert.Equal(t, "successfully deleted", Canonical("issue.deleted", nil))
	assert.Equal(t, "no.such.key", Canonical("no.such.key", nil))
}
