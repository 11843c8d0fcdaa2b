package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNew_MatchesSupportedLanguages(t *testing.T) {
	cases := map[string]language.Tag{
		"ru":    language.Russian,
		"ru-RU": language.Russian,
		"en":    language.English,
		"en-GB": language.English,
		"":      language.English,
		"zz-??": language.English,
	}
	for in, want := range cases {
		assert.Equal(t, want, New(in).Tag(), "New(%q)", in)
	}
}

func TestT_LoginFailedIsLocalized(t *testing.T) {
	assert.Equal(t, "Invalid username or password", New("en").T(LoginFailed))
	assert.Equal(t, "Не верный логин или пароль", New("ru").T(LoginFailed))
}

func TestT_FormatsArguments(t *testing.T) {
	assert.Equal(t, "Page /nonsense not found", New("en").T(NotFound, "/nonsense"))
	assert.Equal(t, "Страница /nonsense не найдена", New("ru").T(NotFound, "/nonsense"))
}

func TestT_NilTranslatorUsesEnglish(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "Books", tr.T(BooksTitle))
}
