package renderer

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/hellotriangle/graphics/graphicstest"
	"github.com/richinsley/hellotriangle/scene"
	"github.com/richinsley/hellotriangle/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedRenderer(t *testing.T, dev *graphicstest.Device) *Renderer {
	t.Helper()
	src, err := shader.LoadSources(filepath.Join("testdata", "vs.glsl"), filepath.Join("testdata", "fs.glsl"))
	require.NoError(t, err)
	r := NewRenderer(dev, scene.NewTriangle())
	require.NoError(t, r.Load(src))
	return r
}

func TestLoad(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)

	assert.Equal(t, 3, dev.Count("GenBuffer"))
	assert.Equal(t, 1, dev.Count("ClearColor"))
	assert.GreaterOrEqual(t, r.positionLoc, int32(0))
	assert.GreaterOrEqual(t, r.colorLoc, int32(0))
	assert.GreaterOrEqual(t, r.modelViewLoc, int32(0))
	assert.Equal(t, int32(-1), r.projectionLoc)
}

func TestLoadMissingAttribute(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.Attribs = []string{"vPosition"}
	src, err := shader.LoadSources(filepath.Join("testdata", "vs.glsl"), filepath.Join("testdata", "fs.glsl"))
	require.NoError(t, err)

	r := NewRenderer(dev, scene.NewTriangle())
	err = r.Load(src)
	var lerr *shader.LocationError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, []string{ColorAttrib}, lerr.Names)
	assert.Equal(t, 0, dev.Count("GenBuffer"))
}

func TestResize(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	dev.Reset()

	r.Resize(800, 400)
	assert.Equal(t, []graphicstest.Call{{Name: "Viewport", Args: []any{int32(0), int32(0), int32(800), int32(400)}}}, dev.Calls)
	assert.Equal(t, scene.Projection(800, 400), r.Projection())
	w, h := r.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)
}

func TestUpdateUploadsEveryTick(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	tri := scene.NewTriangle()

	for i := 0; i < 3; i++ {
		dev.Reset()
		r.Update()
		assert.Equal(t, []string{
			"UseProgram",
			"BufferData", "VertexAttribPointer",
			"BufferData", "VertexAttribPointer",
			"UniformMatrix4",
			"UnbindArrayBuffer",
		}, dev.Names())
	}
	assert.Equal(t, tri.PositionData(), dev.Uploads[r.positionVBO])
	assert.Equal(t, tri.ColorData(), dev.Uploads[r.colorVBO])
	assert.NotContains(t, dev.Uploads, r.modelViewVBO)
	assert.Equal(t, [16]float32(mgl32.Ident4()), dev.Matrices[r.modelViewLoc])
}

func TestUpdatePushesProjectionWhenDeclared(t *testing.T) {
	dev := graphicstest.NewDevice()
	dev.Uniforms = []string{ModelViewUniform, ProjectionUniform}
	r := loadedRenderer(t, dev)
	r.Resize(640, 480)

	r.Update()
	assert.Equal(t, 2, dev.Count("UniformMatrix4"))
	assert.Equal(t, [16]float32(scene.Projection(640, 480)), dev.Matrices[r.projectionLoc])
}

func TestRenderIssuesOneDraw(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	r.Resize(640, 480)
	r.Update()

	for i := 0; i < 4; i++ {
		dev.Reset()
		r.Render()
		assert.Equal(t, []string{
			"Viewport", "Clear", "EnableDepthTest",
			"EnableVertexAttribArray", "EnableVertexAttribArray",
			"DrawTriangles",
			"DisableVertexAttribArray", "DisableVertexAttribArray",
			"Flush",
		}, dev.Names())
		assert.Equal(t, []any{int32(0), int32(3)}, dev.Calls[5].Args)
		assert.Equal(t, []any{int32(0), int32(0), int32(640), int32(480)}, dev.Calls[0].Args)
	}
}

func TestShutdown(t *testing.T) {
	dev := graphicstest.NewDevice()
	r := loadedRenderer(t, dev)
	program := r.program

	r.Shutdown()
	assert.True(t, dev.Deleted(r.positionVBO))
	assert.True(t, dev.Deleted(r.colorVBO))
	assert.True(t, dev.Deleted(r.modelViewVBO))
	assert.True(t, dev.Deleted(program.ID))

	dev.Reset()
	r.Shutdown()
	assert.Empty(t, dev.Calls)
}
