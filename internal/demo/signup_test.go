package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/arbor/internal/demo"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
)

func TestSignup_IsValid(t *testing.T) {
	require.NoError(t, schema.Validate(demo.SignupFactory()))
}

func TestRegister(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, demo.Register(reg))
	assert.Equal(t, []string{demo.SignupName}, reg.Names())
}

func TestSignup_TypedValues(t *testing.T) {
	s := demo.NewSignup()
	form := schema.NewForm(s.Root)

	for _, step := range []struct{ field, value string }{
		{"name", "Ana"},
		{"gender", "F"},
		{"kind.size", "M"},
		{"kind.fit", "S"},
	} {
		target, err := form.Render(schema.Discard)
		require.NoError(t, err)
		require.NotNil(t, target)
		require.Equal(t, step.field, target.Field)
		require.NoError(t, form.Apply(step.field, step.value))
	}
	target, err := form.Render(schema.Discard)
	require.NoError(t, err)
	assert.Nil(t, target)
	assert.True(t, form.Complete())

	gender, err := s.Gender.Value()
	require.NoError(t, err)
	assert.Equal(t, demo.Female, gender)

	name, err := s.Name.Value()
	require.NoError(t, err)
	assert.Equal(t, "Ana", name)

	sel, ok := s.Kind.Selected()
	assert.True(t, ok)
	assert.Equal(t, demo.Female, sel)
	assert.Equal(t, "FemaleDetails", s.Kind.Variant().Name())
}
