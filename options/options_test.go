package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	o := Default()
	assert.Equal(t, "Hello OpenTK", *o.Title)
	assert.Equal(t, 30.0, *o.UpdateRate)
	assert.Equal(t, "vs.glsl", *o.VertexShader)
	assert.Equal(t, "fs.glsl", *o.FragmentShader)
	assert.True(t, *o.VSync)
	assert.Equal(t, ModeWindow, *o.Mode)
	require.NoError(t, o.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *TriangleOptions)
		wantErr string
	}{
		{"zero width", func(o *TriangleOptions) { *o.Width = 0 }, "invalid window size"},
		{"negative height", func(o *TriangleOptions) { *o.Height = -1 }, "invalid window size"},
		{"zero rate", func(o *TriangleOptions) { *o.UpdateRate = 0 }, "update rate"},
		{"missing vs", func(o *TriangleOptions) { *o.VertexShader = "" }, "shader paths"},
		{"unknown mode", func(o *TriangleOptions) { *o.Mode = "stream" }, "unknown mode"},
		{"record zero fps", func(o *TriangleOptions) { *o.Mode = ModeRecord; *o.FPS = 0 }, "fps"},
		{"record zero duration", func(o *TriangleOptions) { *o.Mode = ModeRecord; *o.Duration = 0 }, "duration"},
		{"record no output", func(o *TriangleOptions) { *o.Mode = ModeRecord; *o.OutputFile = "" }, "output file"},
		{"record bad codec", func(o *TriangleOptions) { *o.Mode = ModeRecord; *o.Codec = "vp9" }, "codec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Default()
			tt.mutate(o)
			err := o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateRecordDefaults(t *testing.T) {
	o := Default()
	*o.Mode = ModeRecord
	assert.NoError(t, o.Validate())
}
