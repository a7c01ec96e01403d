package renderer

import (
	"github.com/df07/go-simd-raytracer/pkg/core"
	"github.com/df07/go-simd-raytracer/pkg/wide"
)

const laneCount = wide.Lanes

// Camera generates ray clusters for rendering.
//
// The viewport sits FocalLength in front of the camera origin looking down -Z,
// with +Y up. Inside a pixel the 8 lanes of a cluster are spread evenly
// across the pixel width, leaving equal space around them, and successive
// sample groups step down the pixel height the same way.
type Camera struct {
	viewportWidth  float32
	viewportHeight float32
	focalLength    float32
	pixelDU        float32
	pixelDV        float32
	sampleDV       float32
	base           core.Vec3x8
}

// NewCamera creates a camera for the image described by config
func NewCamera(config Config) *Camera {
	aspectRatio := float32(config.Width) / float32(config.Height)
	viewportHeight := config.ViewportHeight
	viewportWidth := viewportHeight * aspectRatio

	c := &Camera{
		viewportWidth:  viewportWidth,
		viewportHeight: viewportHeight,
		focalLength:    config.FocalLength,
		pixelDU:        viewportWidth / float32(config.Width),
		pixelDV:        -viewportHeight / float32(config.Height),
	}
	c.sampleDV = c.pixelDV / float32(config.SampleGroups+1)

	sampleDU := c.pixelDU / float32(laneCount+1)
	for i := 0; i < laneCount; i++ {
		c.base.X[i] = -viewportWidth/2 + float32(i+1)*sampleDU
	}
	c.base.Y = wide.SplatF32(viewportHeight/2 + c.sampleDV)
	c.base.Z = wide.SplatF32(-c.focalLength)
	return c
}

// PixelRays returns sample group `group` of the pixel at (row, col) as a ray
// cluster starting at origin. Rows count down from the top of the image.
func (c *Camera) PixelRays(origin core.Vec3, row, col, group int) core.RayCluster {
	dir := c.base
	dir.X = dir.X.Add(wide.SplatF32(c.pixelDU * float32(col)))
	dir.Y = dir.Y.Add(wide.SplatF32(c.pixelDV*float32(row) + c.sampleDV*float32(group)))

	return core.RayCluster{
		Origin:    core.Broadcast(origin),
		Direction: dir,
	}
}

// CenterRay returns the single ray through the middle of the pixel at (row, col)
func (c *Camera) CenterRay(origin core.Vec3, row, col int) core.Ray {
	dir := core.NewVec3(
		-c.viewportWidth/2+(float32(col)+0.5)*c.pixelDU,
		c.viewportHeight/2+(float32(row)+0.5)*c.pixelDV,
		-c.focalLength,
	)
	return core.NewRay(origin, dir)
}
