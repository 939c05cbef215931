package models

// TemplateField is one rendered data entry available to email templates.
type TemplateField struct {
	Name                    string    `json:"name"`
	Type                    FieldType `json:"type"`
	Description             string    `json:"description"`
	Value                   string    `json:"value"`
	Raw                     bool      `json:"raw"`
	ShowInEmailAutoreply    bool      `json:"showInEmailAutoreply"`
	ShowInEmailNotification bool      `json:"showInEmailNotification"`
}

// TemplateVars is everything email templates can reference: the rendered
// fields keyed by code, a snapshot of the form, and a link to the stored
// submission when one exists.
type TemplateVars struct {
	Fields       map[string]TemplateField `json:"fields"`
	Form         map[string]interface{}   `json:"form"`
	MoreInfoLink string                   `json:"moreInfoLink,omitempty"`
}

// ForEmail returns a copy filtered to the fields visible for the given email
// kind ("notification" or "autoreply").
func (v TemplateVars) ForEmail(kind string) TemplateVars {
	filtered := make(map[string]TemplateField, len(v.Fields))
	for code, field := range v.Fields {
		show := false
		switch kind {
		case "autoreply":
			show = field.ShowInEmailAutoreply
		case "notification":
			show = field.ShowInEmailNotification
		}
		if show {
			filtered[code] = field
		}
	}
	return TemplateVars{Fields: filtered, Form: v.Form, MoreInfoLink: v.MoreInfoLink}
}
