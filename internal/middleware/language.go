package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/supertask-api/internal/constants"
	"github.com/yukikurage/supertask-api/internal/translator"
	"golang.org/x/text/language"
)

// Language resolves Accept-Language against the available translations and
// stores the result in the context.
func Language() gin.HandlerFunc {
	supported := translator.Supported()
	matcher := language.NewMatcher(supported)

	return func(c *gin.Context) {
		lang := translator.LanguageEn

		if header := c.GetHeader("Accept-Language"); header != "" {
			tags, _, err := language.ParseAcceptLanguage(header)
			if err == nil && len(tags) > 0 {
				_, index, confidence := matcher.Match(tags...)
				if confidence != language.No {
					lang = supported[index].String()
				}
			}
		}

		c.Set(constants.ContextKeyLanguage, lang)
		c.Next()
	}
}

// GetLang returns the language chosen for the request
func GetLang(c *gin.Context) string {
	if lang := c.GetString(constants.ContextKeyLanguage); lang != "" {
		return lang
	}
	return translator.LanguageEn
}
