package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

const (
	LanguageEn   = "en"
	LanguagePtBR = "pt-BR"
)

//go:embed translation/*.toml
var translationFS embed.FS

var (
	bundle   *i18n.Bundle
	initOnce sync.Once
	initErr  error
)

// Init loads the embedded translation files. It is safe to call more than once.
func Init() error {
	initOnce.Do(func() {
		bundle, initErr = newBundle(translationFS, "translation")
	})
	return initErr
}

func newBundle(fsys fs.FS, dir string) (*i18n.Bundle, error) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := b.LoadMessageFileFS(fsys, dir+"/"+entry.Name()); err != nil {
			return nil, fmt.Errorf("failed to load translation %s: %w", entry.Name(), err)
		}
	}

	return b, nil
}

// Localize returns the message for msgID in lang, falling back to English and
// finally to msgID itself.
func Localize(lang, msgID string) string {
	if err := Init(); err != nil {
		zap.L().Warn("translations unavailable", zap.Error(err))
		return msgID
	}

	localizer := i18n.NewLocalizer(bundle, lang, LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: msgID})
	if err != nil {
		zap.L().Debug("translation not found", zap.String("lang", lang), zap.String("message_id", msgID))
		return msgID
	}
	return msg
}

// Supported reports the languages translations exist for.
func Supported() []language.Tag {
	if err := Init(); err != nil {
		return []language.Tag{language.English}
	}
	return bundle.LanguageTags()
}
