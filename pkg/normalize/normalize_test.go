package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "lower", in: "baofeng", want: "Baofeng"},
		{name: "upper with padding", in: "  BAOFENG ", want: "Baofeng"},
		{name: "multi word", in: "connect systems", want: "Connect Systems"},
		{name: "hyphenated", in: "k-po", want: "K-Po"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Brand(tt.in))
		})
	}
}

func TestModel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "uv-5r", want: "UV-5R"},
		{in: " UV-5R\t", want: "UV-5R"},
		{in: "ic-705", want: "IC-705"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Model(tt.in))
		})
	}
}

func TestIdempotent(t *testing.T) {
	inputs := []string{"baofeng", "PO FUNG ELECTRONIC (HK) INTERNATONAL GROUP COMPANY LIMITED", " uv-5r ", "Tidradio", "td-h3"}
	for _, in := range inputs {
		assert.Equal(t, Brand(in), Brand(Brand(in)), in)
		assert.Equal(t, Model(in), Model(Model(in)), in)
	}
}

func TestKeyOf(t *testing.T) {
	a := KeyOf("baofeng", "uv-5r")
	b := KeyOf("Baofeng", "UV-5R")
	assert.Equal(t, a, b)
	assert.Equal(t, "Baofeng/UV-5R", a.String())
	assert.False(t, a.IsZero())
	assert.True(t, KeyOf("Baofeng", " ").IsZero())
}
