package scene

import (
	"image/color"

	"github.com/Faultbox/wirehouse/pkg/math"
)

// RidgeAxis selects the direction a prism roof's ridge runs in.
type RidgeAxis int

const (
	RidgeZ RidgeAxis = iota
	RidgeX
)

// boxEdges is the 12-edge wireframe of an 8-vertex box:
// bottom ring 0-3, top ring 4-7, then the vertical pillars.
var boxEdges = []Edge{
	// Bottom face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Pillars
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Box returns an axis-aligned box whose bottom face sits at baseY.
func Box(centerX, baseY, centerZ, width, height, depth float64, c color.RGBA) *Mesh {
	hw := width / 2
	hd := depth / 2
	top := baseY + height

	vertices := []math.Vec3{
		{X: centerX - hw, Y: baseY, Z: centerZ - hd},
		{X: centerX + hw, Y: baseY, Z: centerZ - hd},
		{X: centerX + hw, Y: baseY, Z: centerZ + hd},
		{X: centerX - hw, Y: baseY, Z: centerZ + hd},
		{X: centerX - hw, Y: top, Z: centerZ - hd},
		{X: centerX + hw, Y: top, Z: centerZ - hd},
		{X: centerX + hw, Y: top, Z: centerZ + hd},
		{X: centerX - hw, Y: top, Z: centerZ + hd},
	}
	return NewMesh(vertices, boxEdges, c)
}

// CenteredBox returns a box centered on the given point in all three axes.
func CenteredBox(center math.Vec3, width, height, depth float64, c color.RGBA) *Mesh {
	return Box(center.X, center.Y-height/2, center.Z, width, height, depth, c)
}

// PrismRoof returns a triangular prism: a rectangular base at baseY and a
// ridge line peakHeight above it running along axis.
func PrismRoof(centerX, baseY, centerZ, width, peakHeight, depth float64, c color.RGBA, axis RidgeAxis) *Mesh {
	hw := width / 2
	hd := depth / 2
	peak := baseY + peakHeight

	vertices := []math.Vec3{
		{X: centerX - hw, Y: baseY, Z: centerZ - hd},
		{X: centerX + hw, Y: baseY, Z: centerZ - hd},
		{X: centerX + hw, Y: baseY, Z: centerZ + hd},
		{X: centerX - hw, Y: baseY, Z: centerZ + hd},
	}

	var slopes []Edge
	switch axis {
	case RidgeX:
		vertices = append(vertices,
			math.Vec3{X: centerX - hw, Y: peak, Z: centerZ},
			math.Vec3{X: centerX + hw, Y: peak, Z: centerZ},
		)
		slopes = []Edge{{0, 4}, {3, 4}, {1, 5}, {2, 5}}
	default:
		vertices = append(vertices,
			math.Vec3{X: centerX, Y: peak, Z: centerZ - hd},
			math.Vec3{X: centerX, Y: peak, Z: centerZ + hd},
		)
		slopes = []Edge{{0, 4}, {1, 4}, {2, 5}, {3, 5}}
	}

	edges := []Edge{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	edges = append(edges, slopes...)
	edges = append(edges, Edge{4, 5})
	return NewMesh(vertices, edges, c)
}
