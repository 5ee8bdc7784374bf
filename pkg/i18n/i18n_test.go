package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizer(t *testing.T) {
	require.NoError(t, LoadEmbedded())
	assert.Positive(t, KeyCount("en"))
	assert.Equal(t, KeyCount("en"), KeyCount("tr"))

	tr := NewLocalizer(" TR ")
	assert.Equal(t, "tr", tr.Lang())
	assert.Equal(t, "Telefon", tr.T("contact.phone"))
	assert.Equal(t, "Ali tarafından yeni iletişim formu mesajı",
		tr.TWithParams("contact.subject", map[string]string{"name": "Ali"}))

	// Desteklenmeyen dil → en
	de := NewLocalizer("de")
	assert.Equal(t, "en", de.Lang())
	assert.Equal(t, "Phone", de.T("contact.phone"))

	// Bilinmeyen anahtar → anahtarın kendisi
	assert.Equal(t, "contact.missing", tr.T("contact.missing"))
}
