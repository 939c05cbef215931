package pipeline

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"formrunner/src/hooks"
)

type fakeCache struct {
	values map[string]string
	ttls   map[string]time.Duration
	gets   int
	misses int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.gets++
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	c.misses++
	return "", errCacheMiss
}

func (c *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttls[key] = ttl
	return nil
}

var errCacheMiss = assert.AnError

func TestFormSchema(t *testing.T) {
	t.Run("RendersFieldsWithEffectiveClasses", func(t *testing.T) {
		e := newEnv(contactForm(), map[string]interface{}{"field_class": "input-lg"})

		rendered, err := e.pipeline.FormSchema(context.Background(), "contact")
		assert.NoError(t, err)

		var payload struct {
			Form   map[string]interface{} `json:"form"`
			Fields []struct {
				Code       string `json:"code"`
				Required   bool   `json:"required"`
				FieldClass string `json:"fieldClass"`
			} `json:"fields"`
		}
		assert.NoError(t, json.Unmarshal([]byte(rendered), &payload))
		assert.Equal(t, "contact", payload.Form["code"])
		assert.Len(t, payload.Fields, 3)
		assert.Equal(t, "name", payload.Fields[0].Code)
		assert.True(t, payload.Fields[0].Required)
		assert.Equal(t, "input-lg", payload.Fields[0].FieldClass)
	})

	t.Run("CachesWhenEnabled", func(t *testing.T) {
		form := contactForm()
		form.EnableCaching = boolPtr(true)
		form.CacheLifetime = intPtr(15)
		e := newEnv(form, nil)
		cache := newFakeCache()
		e.pipeline.Cache = cache

		first, err := e.pipeline.FormSchema(context.Background(), "contact")
		assert.NoError(t, err)
		assert.Equal(t, first, cache.values["forms:render:contact"])
		assert.Equal(t, 15*time.Minute, cache.ttls["forms:render:contact"])

		second, err := e.pipeline.FormSchema(context.Background(), "contact")
		assert.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, cache.misses)
	})

	t.Run("HookCanVetoCaching", func(t *testing.T) {
		form := contactForm()
		form.EnableCaching = boolPtr(true)
		e := newEnv(form, nil)
		cache := newFakeCache()
		e.pipeline.Cache = cache

		e.pipeline.Hooks.On(hooks.BeforeRenderPartial, func(ctx *hooks.Context) error {
			ctx.CachingEnabled = false
			return nil
		})

		_, err := e.pipeline.FormSchema(context.Background(), "contact")
		assert.NoError(t, err)
		assert.Empty(t, cache.values)
		assert.Equal(t, 0, cache.gets)
	})

	t.Run("HookCanRewriteRendered", func(t *testing.T) {
		e := newEnv(contactForm(), nil)
		e.pipeline.Hooks.On(hooks.AfterRenderPartial, func(ctx *hooks.Context) error {
			ctx.Rendered = `{"replaced":true}`
			return nil
		})

		rendered, err := e.pipeline.FormSchema(context.Background(), "contact")
		assert.NoError(t, err)
		assert.Equal(t, `{"replaced":true}`, rendered)
	})
}
