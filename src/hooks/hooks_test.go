package hooks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusEmitOrderAndMutation(t *testing.T) {
	bus := New()
	var seen []string

	bus.On(BeforeValidateForm, func(ctx *Context) error {
		seen = append(seen, "first")
		ctx.Rules["name"] = "required"
		return nil
	})
	bus.On(BeforeValidateForm, func(ctx *Context) error {
		seen = append(seen, "second")
		// Mutations from earlier handlers are visible here.
		assert.Equal(t, "required", ctx.Rules["name"])
		return nil
	})

	ctx := &Context{Rules: map[string]string{}}
	err := bus.Emit(BeforeValidateForm, ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, seen)
	assert.Equal(t, "required", ctx.Rules["name"])
}

func TestBusErrorStopsChain(t *testing.T) {
	bus := New()
	boom := errors.New("boom")
	ran := false

	bus.On(AfterFormSubmit, func(ctx *Context) error { return boom })
	bus.On(AfterFormSubmit, func(ctx *Context) error {
		ran = true
		return nil
	})

	err := bus.Emit(AfterFormSubmit, &Context{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, ran)
}

func TestBusUnregisteredPointIsNoop(t *testing.T) {
	bus := New()
	assert.NoError(t, bus.Emit(OnRecaptchaFail, &Context{}))
}

func TestNilBusIsSafe(t *testing.T) {
	var bus *Bus
	assert.NoError(t, bus.Emit(BeforeFormSubmit, nil))
}
