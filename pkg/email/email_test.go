package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/sitekit/models"
	"github.com/akinalp/sitekit/pkg/i18n"
)

func localizer(t *testing.T, lang string) *i18n.Localizer {
	t.Helper()
	require.NoError(t, i18n.LoadEmbedded())
	return i18n.NewLocalizer(lang)
}

func TestRenderContactHTML_EscapesInput(t *testing.T) {
	out := renderContactHTML(localizer(t, "en"), models.ContactRequest{
		Name:    "<script>alert(1)</script>",
		Email:   "a@example.com",
		Message: "line1\nline2",
	})

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, "line1<br>line2")
	assert.NotContains(t, out, "Phone:")
}

func TestRenderContactText(t *testing.T) {
	msg := models.ContactRequest{
		Name: "Jane", Email: "jane@example.com", Phone: "555-0100", Message: "Hi",
	}

	out := renderContactText(localizer(t, "en"), msg)
	assert.Contains(t, out, "Phone: 555-0100")
	assert.Contains(t, out, "\nHi\n")

	out = renderContactText(localizer(t, "tr"), msg)
	assert.Contains(t, out, "Telefon: 555-0100")
	assert.Contains(t, out, "E-posta: jane@example.com")
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(nil)
	require.NoError(t, s.SendContactMessage(context.Background(), models.ContactRequest{Name: "x"}))
}
