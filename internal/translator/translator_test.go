package translator

import (
	"testing"
	"testing/fstest"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalize_English(t *testing.T) {
	assert.Equal(t, "Task not found", Localize(LanguageEn, "taskNotFound"))
}

func TestLocalize_Portuguese(t *testing.T) {
	assert.Equal(t, "Tarefa não encontrada", Localize(LanguagePtBR, "taskNotFound"))
	assert.Equal(t, "Tarefa não encontrada", Localize("pt-BR,pt;q=0.9,en;q=0.8", "taskNotFound"))
}

func TestLocalize_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "Category not found", Localize("de", "categoryNotFound"))
}

func TestLocalize_UnknownMessageReturnsID(t *testing.T) {
	assert.Equal(t, "noSuchMessage", Localize(LanguageEn, "noSuchMessage"))
}

func TestSupported(t *testing.T) {
	tags := Supported()
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.String())
	}
	assert.ElementsMatch(t, []string{LanguageEn, LanguagePtBR}, names)
}

func TestNewBundle_LoadsFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"msgs/en.toml": {Data: []byte(`hello = "Hello english"`)},
	}

	b, err := newBundle(fsys, "msgs")
	require.NoError(t, err)

	msg, err := i18n.NewLocalizer(b, LanguageEn).Localize(&i18n.LocalizeConfig{MessageID: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Hello english", msg)
}

func TestNewBundle_MissingFolder(t *testing.T) {
	_, err := newBundle(fstest.MapFS{}, "missing")
	assert.Error(t, err)
}
