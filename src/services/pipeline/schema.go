package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"formrunner/src/hooks"
	"formrunner/src/models"
)

// fieldSchema is the per-field view the render endpoint exposes: definition
// plus effective styling classes, resolved through the override tiers.
type fieldSchema struct {
	Code        string               `json:"code"`
	Type        models.FieldType     `json:"type"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Placeholder string               `json:"placeholder,omitempty"`
	Required    bool                 `json:"required"`
	Options     []models.Option      `json:"options,omitempty"`
	Groups      []models.OptionGroup `json:"optionGroups,omitempty"`
	FieldClass  string               `json:"fieldClass"`
	RowClass    string               `json:"rowClass"`
	GroupClass  string               `json:"groupClass"`
	LabelClass  string               `json:"labelClass"`
}

// FormSchema returns the render-ready JSON snapshot of a form, cached in
// Redis for the form's cache lifetime when caching is enabled. Hook handlers
// can veto caching or rewrite the rendered payload.
func (p *Pipeline) FormSchema(ctx context.Context, formCode string) (string, error) {
	form, err := p.Forms.LoadByCode(ctx, formCode)
	if err != nil {
		return "", err
	}

	hctx := &hooks.Context{Form: form, CachingEnabled: form.CachingEnabled()}
	if err := p.Hooks.Emit(hooks.BeforeRenderPartial, hctx); err != nil {
		return "", err
	}

	cacheKey := "forms:render:" + form.Code
	useCache := hctx.CachingEnabled && p.Cache != nil

	if useCache {
		if cached, err := p.Cache.Get(ctx, cacheKey); err == nil {
			hctx.Rendered = cached
		}
	}

	if hctx.Rendered == "" {
		rendered, err := renderSchema(form)
		if err != nil {
			return "", err
		}
		hctx.Rendered = rendered

		if useCache {
			ttl := time.Duration(form.CacheLifetimeMinutes()) * time.Minute
			if err := p.Cache.Set(ctx, cacheKey, rendered, ttl); err != nil {
				log.Println("⚠️ Failed to cache form snapshot:", err)
			}
		}
	}

	if err := p.Hooks.Emit(hooks.AfterRenderPartial, hctx); err != nil {
		return "", err
	}
	return hctx.Rendered, nil
}

func renderSchema(form *models.Form) (string, error) {
	fields := make([]fieldSchema, 0, len(form.Fields))
	for i := range form.Fields {
		f := &form.Fields[i]
		fields = append(fields, fieldSchema{
			Code:        f.Code,
			Type:        f.Type,
			Name:        f.Name,
			Description: f.Description,
			Placeholder: f.Placeholder,
			Required:    f.IsRequired(),
			Options:     f.Options,
			Groups:      f.OptionGroups,
			FieldClass:  form.FieldClassFor(f),
			RowClass:    form.RowClassFor(f),
			GroupClass:  form.GroupClassFor(f),
			LabelClass:  form.LabelClassFor(f),
		})
	}

	payload := map[string]interface{}{
		"form":   form.Snapshot(),
		"fields": fields,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
