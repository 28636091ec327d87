package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"
	thirdPartyI18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"microapi-go/internal/i18n"
)

func I18nMiddleware(bundle *thirdPartyI18n.Bundle, defaultLang string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := defaultLang
		tags, _, _ := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
		for _, tag := range tags {
			base, _ := tag.Base()
			if slices.Contains(i18n.SupportedLanguages, base.String()) {
				lang = base.String()
				break
			}
		}

		localizer := thirdPartyI18n.NewLocalizer(bundle, lang)
		c.Request = c.Request.WithContext(i18n.WithLocalizer(c.Request.Context(), localizer))
		c.Next()
	}
}
