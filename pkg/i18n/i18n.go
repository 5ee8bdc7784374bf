// Package i18n, backend tarafında üretilen metinlerin (iletişim formu
// bildirim e-postası) çoklu dil desteğini sağlar.
//
// Çeviriler locales/ altındaki JSON dosyalarından yüklenir ve binary'ye gömülüdür.
// Dil CONTACT_LANGUAGE ile seçilir; desteklenmeyen dil varsayılana (en) düşer.
//
// Kullanım:
//
//	if err := i18n.LoadEmbedded(); err != nil { ... }
//	localizer := i18n.NewLocalizer("tr")
//	msg := localizer.T("contact.subject")
package i18n

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
)

// SupportedLanguages — desteklenen dil kodları.
var SupportedLanguages = []string{"en", "tr"}

// DefaultLanguage — varsayılan dil.
const DefaultLanguage = "en"

// translations, map[lang]map[key]value. Load'dan sonra sadece okunur.
var (
	translations map[string]map[string]string
	loadOnce     sync.Once
	loadErr      error
)

// Load, çeviri dosyalarını fs.FS'ten yükler. Her dil için bir JSON dosyası
// beklenir (en.json, tr.json). Program ömrü boyunca sadece ilk çağrı çalışır.
func Load(localesFS fs.FS) error {
	loadOnce.Do(func() {
		loaded := make(map[string]map[string]string, len(SupportedLanguages))

		for _, lang := range SupportedLanguages {
			fileName := lang + ".json"

			data, err := fs.ReadFile(localesFS, fileName)
			if err != nil {
				loadErr = fmt.Errorf("failed to read translation file %s: %w", fileName, err)
				return
			}

			// {"contact": {"subject": "..."}} → "contact.subject"
			var nested map[string]any
			if err := json.Unmarshal(data, &nested); err != nil {
				loadErr = fmt.Errorf("failed to parse translation file %s: %w", fileName, err)
				return
			}

			flat := make(map[string]string)
			flattenMap("", nested, flat)
			loaded[lang] = flat
		}

		translations = loaded
	})

	return loadErr
}

// LoadEmbedded, binary'ye gömülü çevirileri yükler.
func LoadEmbedded() error {
	sub, err := fs.Sub(EmbeddedLocales, "locales")
	if err != nil {
		return fmt.Errorf("failed to open embedded locales: %w", err)
	}
	return Load(sub)
}

// KeyCount, dil için yüklenmiş anahtar sayısını döner (başlangıç logu için).
func KeyCount(lang string) int {
	return len(translations[lang])
}

// Localizer, belirli bir dil için çeviri yapan struct.
type Localizer struct {
	lang string
}

// NewLocalizer, belirli bir dil için Localizer oluşturur.
// Desteklenmeyen dil verilirse varsayılana düşer.
func NewLocalizer(lang string) *Localizer {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if !IsSupported(lang) {
		lang = DefaultLanguage
	}
	return &Localizer{lang: lang}
}

// Lang, localizer'ın dil kodu.
func (l *Localizer) Lang() string {
	return l.lang
}

// T, çeviri anahtarına karşılık gelen metni döner.
// Anahtar bulunamazsa İngilizce'ye, orada da yoksa anahtarın kendisine düşer.
func (l *Localizer) T(key string) string {
	if msg, ok := translations[l.lang][key]; ok {
		return msg
	}
	if msg, ok := translations[DefaultLanguage][key]; ok {
		return msg
	}
	return key
}

// TWithParams, metindeki {{param}} yer tutucularını değerlerle değiştirir.
//
//	localizer.TWithParams("contact.subject", map[string]string{"name": "Ali"})
//	→ "Ali tarafından yeni iletişim formu mesajı"
func (l *Localizer) TWithParams(key string, params map[string]string) string {
	msg := l.T(key)
	for k, v := range params {
		msg = strings.ReplaceAll(msg, "{{"+k+"}}", v)
	}
	return msg
}

// IsSupported, dil kodunun desteklenip desteklenmediğini söyler.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, lang)
}

// flattenMap, nested JSON'u "dot notation" key'lere dönüştürür.
func flattenMap(prefix string, src map[string]any, dst map[string]string) {
	for k, v := range src {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			dst[key] = val
		case map[string]any:
			flattenMap(key, val, dst)
		}
	}
}
