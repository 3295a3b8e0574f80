package satisimg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultOptions(t *testing.T) {
	opt := DefaultOptions()
	assert.NoError(t, opt.Validate())
	assert.Equal(t, 0, opt.Colors)
	assert.Equal(t, "dominantcolor", opt.PaletteMethod)
	assert.Equal(t, FirstID, opt.FirstID)
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"negative colors", func(o *Options) { o.Colors = -1 }},
		{"unknown method", func(o *Options) { o.PaletteMethod = "octree" }},
		{"zero first id", func(o *Options) { o.FirstID = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := DefaultOptions()
			tt.modify(&opt)
			assert.Error(t, opt.Validate())
		})
	}
}
