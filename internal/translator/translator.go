// Package translator resolves message IDs to user-facing text. Catalogues are
// TOML files embedded in the binary, one per language.
package translator

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	LanguageEn = "en"
	LanguageFr = "fr"
)

//go:embed translation/*.toml
var translations embed.FS

// Translator looks up messages in a bundle with English as the fallback.
type Translator struct {
	bundle *i18n.Bundle
}

// New loads the embedded catalogues.
func New() (*Translator, error) {
	return NewFromFS(translations, "translation")
}

// NewFromFS loads every .toml file in dir of fsys.
func NewFromFS(fsys fs.FS, dir string) (*Translator, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".toml" {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(fsys, path.Join(dir, e.Name())); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", e.Name(), err)
		}
	}

	return &Translator{bundle: bundle}, nil
}

// Translate renders messageID for the first language in langs that has it,
// falling back to English. data fills the message template. An unknown
// message ID is returned unchanged.
func (t *Translator) Translate(messageID string, data map[string]string, langs ...string) string {
	l := i18n.NewLocalizer(t.bundle, append(append([]string{}, langs...), LanguageEn)...)

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(data) > 0 {
		cfg.TemplateData = data
	}

	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	return msg
}

// Language picks the supported language that best matches an
// Accept-Language header, or English.
func (t *Translator) Language(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	supported := t.bundle.LanguageTags()
	_, idx, confidence := language.NewMatcher(supported).Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Languages lists the languages with a loaded catalogue.
func (t *Translator) Languages() []string {
	tags := t.bundle.LanguageTags()
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, tag.String())
	}
	return out
}
