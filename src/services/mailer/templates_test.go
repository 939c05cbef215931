package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"formrunner/src/models"
)

func sampleVars() models.TemplateVars {
	return models.TemplateVars{
		Fields: map[string]models.TemplateField{
			"name": {
				Name: "Name", Value: "Ada",
				ShowInEmailNotification: true, ShowInEmailAutoreply: true,
			},
			"bio": {
				Name: "Bio", Value: "<script>alert(1)</script>",
				ShowInEmailNotification: true, ShowInEmailAutoreply: true,
			},
			"upload": {
				Name: "Upload", Value: "See attached: <code>resume.pdf</code>", Raw: true,
				ShowInEmailNotification: true, ShowInEmailAutoreply: true,
			},
		},
		Form:         map[string]interface{}{"title": "Contact Us"},
		MoreInfoLink: "https://api.test/submissions/abc?token=xyz",
	}
}

func TestRenderEmailNotification(t *testing.T) {
	body, err := RenderEmail(Message{
		Template: "mail/notification",
		Vars:     sampleVars(),
	})
	assert.NoError(t, err)

	assert.Contains(t, body, "Contact Us")
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "https://api.test/submissions/abc?token=xyz")

	// User content is escaped, raw values pass through.
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "<code>resume.pdf</code>")
}

func TestRenderEmailAutoReply(t *testing.T) {
	body, err := RenderEmail(Message{
		Template: "mail/autoreply",
		Vars:     sampleVars(),
		Envelope: Envelope{To: "ada@example.com", ToName: "Ada Lovelace"},
	})
	assert.NoError(t, err)
	assert.Contains(t, body, "Hi Ada Lovelace")
	assert.Contains(t, body, "Ada")
}

func TestRenderEmailUnknownTemplate(t *testing.T) {
	_, err := RenderEmail(Message{Template: "mail/ghost"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mail/ghost")
}

func TestHasTemplate(t *testing.T) {
	assert.True(t, HasTemplate("mail/notification"))
	assert.True(t, HasTemplate("mail/autoreply"))
	assert.False(t, HasTemplate("mail/ghost"))
}
