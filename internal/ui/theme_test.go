package ui

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleIsInvolution(t *testing.T) {
	for _, th := range []Theme{Light, Dark} {
		assert.Equal(t, th, th.Toggle().Toggle(), th.String())
		assert.NotEqual(t, th, th.Toggle(), th.String())
	}
}

func TestDefaultIsLight(t *testing.T) {
	var th Theme
	assert.Equal(t, Light, th)
	assert.Equal(t, "light", th.String())
}

func TestPalettesFillEveryRole(t *testing.T) {
	for _, th := range []Theme{Light, Dark} {
		p := reflect.ValueOf(th.Colors())
		for i := 0; i < p.NumField(); i++ {
			assert.NotEmpty(t, p.Field(i).String(), "%s palette has no %s", th, p.Type().Field(i).Name)
		}
	}
	assert.Equal(t, 17, reflect.TypeOf(Palette{}).NumField())
}

func TestPalettesDiffer(t *testing.T) {
	assert.NotEqual(t, Light.Colors().Background, Dark.Colors().Background)
	assert.NotEqual(t, Light.Colors().Primary, Dark.Colors().Primary)
	assert.Equal(t, Light.Colors().Destructive, Dark.Colors().Destructive)
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in   string
		want Theme
		ok   bool
	}{
		{"light", Light, true},
		{"Dark", Dark, true},
		{" dark ", Dark, true},
		{"", Light, true},
		{"sepia", Light, false},
	}
	for _, tt := range tests {
		got, err := ParseTheme(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
		} else {
			require.Error(t, err, tt.in)
		}
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNewStylesFollowsTheme(t *testing.T) {
	light := NewStyles(Light)
	dark := NewStyles(Dark)

	assert.Equal(t, Light, light.Theme)
	assert.Equal(t, Dark.Colors(), dark.Palette)
	assert.Equal(t, Light.Colors().Primary, light.Title.GetForeground())
	assert.Equal(t, Dark.Colors().Primary, dark.Title.GetForeground())
	assert.Equal(t, Dark.Colors().Background, dark.App.GetBackground())
}
