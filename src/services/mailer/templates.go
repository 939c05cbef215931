package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
)

// Built-in email bodies. Forms reference templates by name; unknown names are
// a configuration error surfaced at send time.
var emailTemplates = map[string]string{
	"mail/notification": `<html>
<body>
	<h2>{{.Form.title}}</h2>
	<p>A new submission has been received.</p>
	<table cellpadding="6" cellspacing="0" border="0">
	{{range .Fields}}
		<tr>
			<td><strong>{{.Name}}</strong></td>
			<td>{{.Value}}</td>
		</tr>
	{{end}}
	</table>
	{{if .MoreInfoLink}}<p><a href="{{.MoreInfoLink}}">View this submission</a></p>{{end}}
</body>
</html>`,
	"mail/autoreply": `<html>
<body>
	<p>Hi {{.ToName}},</p>
	<p>Thank you for contacting us. We have received the following:</p>
	<table cellpadding="6" cellspacing="0" border="0">
	{{range .Fields}}
		<tr>
			<td><strong>{{.Name}}</strong></td>
			<td>{{.Value}}</td>
		</tr>
	{{end}}
	</table>
	<p>We will get back to you as soon as possible.</p>
</body>
</html>`,
}

type renderField struct {
	Name  string
	Value template.HTML
}

type renderData struct {
	Form         map[string]interface{}
	Fields       []renderField
	MoreInfoLink string
	ToName       string
}

// RenderEmail renders the message template against its vars. Fields are
// emitted in code order so repeated renders of one submission are identical.
func RenderEmail(msg Message) (string, error) {
	src, ok := emailTemplates[msg.Template]
	if !ok {
		return "", fmt.Errorf("unknown email template %q", msg.Template)
	}

	vars := msg.Vars
	codes := make([]string, 0, len(vars.Fields))
	for code := range vars.Fields {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	data := renderData{
		Form:         vars.Form,
		MoreInfoLink: vars.MoreInfoLink,
		ToName:       msg.Envelope.ToName,
	}
	for _, code := range codes {
		f := vars.Fields[code]
		value := template.HTML(template.HTMLEscapeString(f.Value))
		if f.Raw {
			value = template.HTML(f.Value)
		}
		data.Fields = append(data.Fields, renderField{Name: f.Name, Value: value})
	}

	t, err := template.New(msg.Template).Parse(src)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HasTemplate reports whether a template name is known.
func HasTemplate(name string) bool {
	_, ok := emailTemplates[name]
	return ok
}
