// Package scene holds the data drawn by the viewer: one triangle and the
// matrices that place it.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// VertexCount is the number of vertices issued by the single draw call.
const VertexCount = 3

const (
	FieldOfView = 45.0
	NearPlane   = 1.0
	FarPlane    = 64.0
)

// ClearColor is cornflower blue.
var ClearColor = mgl32.Vec4{100.0 / 255.0, 149.0 / 255.0, 237.0 / 255.0, 1}

type Triangle struct {
	Positions [VertexCount]mgl32.Vec3
	// Colors[i] is the color of Positions[i].
	Colors    [VertexCount]mgl32.Vec3
	ModelView mgl32.Mat4
}

func NewTriangle() *Triangle {
	return &Triangle{
		Positions: [VertexCount]mgl32.Vec3{
			{-0.8, -0.8, 0},
			{0.8, -0.8, 0},
			{0, 0.8, 0},
		},
		Colors: [VertexCount]mgl32.Vec3{
			{1, 0, 0},
			{0, 0, 1},
			{0, 1, 0},
		},
		ModelView: mgl32.Ident4(),
	}
}

// PositionData returns the positions as tightly packed xyz floats.
func (t *Triangle) PositionData() []float32 {
	return flatten(t.Positions)
}

// ColorData returns the colors as tightly packed rgb floats.
func (t *Triangle) ColorData() []float32 {
	return flatten(t.Colors)
}

func flatten(vs [VertexCount]mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// Projection returns the perspective projection for a framebuffer of the
// given size. A non-positive height is treated as 1.
func Projection(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	aspect := float32(width) / float32(height)
	return mgl32.Perspective(mgl32.DegToRad(FieldOfView), aspect, NearPlane, FarPlane)
}
