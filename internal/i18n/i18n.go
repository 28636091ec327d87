package i18n

import (
	"context"
	"embed"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// SupportedLanguages 由 locales 目录下的文件名决定（en.toml -> "en"）
var SupportedLanguages []string

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
	bundleErr  error
)

type localizerKey struct{}

// InitI18n 加载内嵌的 TOML 消息文件，重复调用返回同一个 Bundle
func InitI18n(defaultLang string) (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		bundle, bundleErr = loadBundle(defaultLang)
	})
	return bundle, bundleErr
}

func loadBundle(defaultLang string) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.MustParse(defaultLang))
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}

	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		filePath := path.Join("locales", entry.Name())
		if _, err := b.LoadMessageFileFS(localeFS, filePath); err != nil {
			return nil, err
		}
		langs = append(langs, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	SupportedLanguages = langs
	return b, nil
}

// WithLocalizer 把请求语言对应的 Localizer 放入 context
func WithLocalizer(ctx context.Context, localizer *i18n.Localizer) context.Context {
	return context.WithValue(ctx, localizerKey{}, localizer)
}

// CanonicalLang 响应中 error/result 字段固定使用的语言，客户端按该文本做字符串比较
const CanonicalLang = "en"

// T 翻译消息 ID；context 中没有 Localizer 时使用默认语言，找不到消息时原样返回 key
func T(ctx context.Context, key string, data map[string]interface{}) string {
	localizer, ok := ctx.Value(localizerKey{}).(*i18n.Localizer)
	if !ok {
		return Canonical(key, data)
	}
	return localize(localizer, key, data)
}

// Canonical 返回消息 ID 的英文文本，与请求语言无关
func Canonical(key string, data map[string]interface{}) string {
	b, err := InitI18n(CanonicalLang)
	if err != nil {
		return key
	}
	return localize(i18n.NewLocalizer(b, CanonicalLang), key, data)
}

func localize(localizer *i18n.Localizer, key string, data map[string]interface{}) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		return key
	}
	return msg
}
