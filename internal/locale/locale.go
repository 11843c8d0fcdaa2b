// Package locale holds the user-facing strings in English and Russian.
package locale

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Each key is also the English text.
const (
	LoginFailed        = "Invalid username or password"
	MissingCredentials = "Enter both username and password"
	NotFound           = "Page %s not found"
	AuthorsTitle       = "Authors"
	BooksTitle         = "Books"
	LoginTitle         = "Login"
	LogoutAction       = "Logout"
	Username           = "Username"
	Password           = "Password"
	Loading            = "Loading..."
	NoAuthors          = "No authors"
	NoBooks            = "No books"
	UnknownAuthor      = "Author %s"
	BornIn             = "born %s"
	AlertDismiss       = "enter to close"
	GoToPrompt         = "Go to"
	LoggedInAs         = "Logged in"
)

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

var cat = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	ru := map[string]string{
		LoginFailed:        "Не верный логин или пароль",
		MissingCredentials: "Введите логин и пароль",
		NotFound:           "Страница %s не найдена",
		AuthorsTitle:       "Авторы",
		BooksTitle:         "Книги",
		LoginTitle:         "Вход",
		LogoutAction:       "Выход",
		Username:           "Логин",
		Password:           "Пароль",
		Loading:            "Загрузка...",
		NoAuthors:          "Авторов нет",
		NoBooks:            "Книг нет",
		UnknownAuthor:      "Автор %s",
		BornIn:             "род. %s",
		AlertDismiss:       "enter — закрыть",
		GoToPrompt:         "Перейти",
		LoggedInAs:         "Вы вошли",
	}
	for key, text := range ru {
		_ = b.SetString(language.English, key, key)
		_ = b.SetString(language.Russian, key, text)
	}
	return b
}

// Translator renders message keys in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported language for lang ("ru", "ru-RU", "en").
// Unknown or empty values fall back to English.
func New(lang string) *Translator {
	tag := language.English
	if parsed, err := language.Parse(strings.TrimSpace(lang)); err == nil {
		_, idx, conf := matcher.Match(parsed)
		if conf != language.No {
			tag = supported[idx]
		}
	}
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Tag returns the selected language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// T formats the message for key.
func (t *Translator) T(key string, args ...any) string {
	if t == nil {
		return message.NewPrinter(language.English, message.Catalog(cat)).Sprintf(key, args...)
	}
	return t.printer.Sprintf(key, args...)
}
