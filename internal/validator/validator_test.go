package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name    string `json:"name" validate:"required,max=5"`
	Subject string `json:"subject" validate:"max=3"`
	Body    string `json:"body" validate:"required"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&sample{Name: "Ada", Body: "hi"}))
}

func TestValidate_UsesJSONNamesInFieldOrder(t *testing.T) {
	v := New()

	err := v.Validate(&sample{Name: "", Subject: "long subject"})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, []FieldFailure{
		{Field: "name", Tag: "required"},
		{Field: "subject", Tag: "max"},
		{Field: "body", Tag: "required"},
	}, vErr.Failures)
	assert.Equal(t, "This field is required", vErr.Errors["name"])
	assert.Equal(t, "Must be at most 3 characters long", vErr.Errors["subject"])
	assert.True(t, vErr.HasTag("max"))
	assert.False(t, vErr.HasTag("email"))
	assert.True(t, strings.HasPrefix(vErr.Error(), "Validation failed: field 'name'"))
}

func TestValidate_MaxCountsCharacters(t *testing.T) {
	v := New()
	// five runes, more than five bytes
	assert.NoError(t, v.Validate(&sample{Name: "Żółty", Body: "x"}))
	assert.Error(t, v.Validate(&sample{Name: "Żółtyy", Body: "x"}))
}
