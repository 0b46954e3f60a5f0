// Package world builds the suburban neighborhood shown by the viewer.
package world

import (
	"github.com/Faultbox/wirehouse/internal/engine/scene"
)

// SuburbBuilder assembles the neighborhood scene. It is deterministic:
// every Build returns an equal, freshly allocated scene.
type SuburbBuilder struct {
	meshes []*scene.Mesh
}

// NewSuburbBuilder creates a builder.
func NewSuburbBuilder() *SuburbBuilder {
	return &SuburbBuilder{}
}

// Build implements scene.Provider.
func (b *SuburbBuilder) Build() *scene.Scene {
	b.meshes = b.meshes[:0]
	b.mainHouseWithGarage()
	b.drivewayAndPath()
	b.streets()
	b.neighborHouses()
	b.shops()
	b.trees()
	b.originMarker()
	return scene.New(b.meshes...)
}

func (b *SuburbBuilder) box(x, baseY, z, w, h, d float64, color string) {
	b.meshes = append(b.meshes, scene.Box(x, baseY, z, w, h, d, scene.NamedColor(color)))
}

func (b *SuburbBuilder) roof(x, baseY, z, w, peak, d float64, color string, axis scene.RidgeAxis) {
	b.meshes = append(b.meshes, scene.PrismRoof(x, baseY, z, w, peak, d, scene.NamedColor(color), axis))
}

// house adds walls, roof, a front door and two front windows.
func (b *SuburbBuilder) house(x, z float64, wall, roof string) {
	b.box(x, 0, z, 5, 2.5, 5, wall)
	b.roof(x, 2.5, z, 5.4, 1.3, 5.4, roof, scene.RidgeZ)

	front := z + 2.51
	b.box(x, 0, front, 1.0, 1.8, 0.1, "darkgreen")
	b.box(x-1.25, 0.5, front, 1.0, 1.0, 0.1, "lightblue")
	b.box(x+1.25, 0.5, front, 1.0, 1.0, 0.1, "lightblue")
}

// shop adds a flat-roofed store with a sign, two display windows and a door.
func (b *SuburbBuilder) shop(x, z float64, wall string) {
	const wallHeight = 3.0
	b.box(x, 0, z, 7, wallHeight, 6, wall)
	b.box(x, wallHeight, z, 7.4, 0.2, 6.4, "dimgray")

	front := z + 3.0
	b.box(x, 3.5, front, 4, 0.8, 0.1, "wheat")
	b.box(x-2, 0.5, front+0.01, 2.5, 2.0, 0.1, "cyan")
	b.box(x+2, 0.5, front+0.01, 2.5, 2.0, 0.1, "cyan")
	b.box(x, 0, front+0.01, 1.2, 2.2, 0.1, "black")
}

func (b *SuburbBuilder) tree(x, z float64) {
	b.box(x, 0, z, 0.5, 1.5, 0.5, "saddlebrown")
	b.roof(x, 1.5, z, 2.5, 3, 2.5, "forestgreen", scene.RidgeZ)
}

func (b *SuburbBuilder) mainHouseWithGarage() {
	b.house(0, 0, "saddlebrown", "darkred")

	// Porch platform and posts
	b.box(0, 0, 2.8, 2.0, 0.1, 1.5, "tan")
	b.box(-0.8, 0, 3.4, 0.2, 2.0, 0.2, "tan")
	b.box(0.8, 0, 3.4, 0.2, 2.0, 0.2, "tan")

	// Chimney
	b.box(1.5, 2.0, -1.5, 0.8, 2.5, 0.8, "gray")

	// Garage
	b.box(4.25, 0, 0, 3.5, 2.0, 4.5, "saddlebrown")
	b.roof(4.25, 2.0, 0, 3.9, 1.0, 4.9, "darkred", scene.RidgeZ)
	b.box(4.25, 0, 2.26, 2.8, 1.8, 0.1, "white")
}

func (b *SuburbBuilder) drivewayAndPath() {
	b.box(4.25, 0.02, 5.25, 3.0, 0, 5.5, "gray")
	b.box(0, 0.02, 5.0, 1.2, 0, 5.0, "lightgray")
}

func (b *SuburbBuilder) streets() {
	b.box(0, 0.01, 8, 100, 0, 4, "dimgray")
	b.box(-20, 0.01, 8, 4, 0, 40, "dimgray")
	for i := -15; i <= 15; i++ {
		b.box(float64(i)*5, 0.02, 8, 2, 0, 0.2, "yellow")
	}
}

var neighbors = []struct {
	x          float64
	wall, roof string
}{
	{-15, "tan", "black"},
	{-7, "indianred", "maroon"},
	{15, "goldenrod", "chocolate"},
}

func (b *SuburbBuilder) neighborHouses() {
	for _, n := range neighbors {
		b.house(n.x, 15, n.wall, n.roof)
		b.box(n.x, 0.02, 11.5, 1.2, 0, 3, "lightgray")
	}
}

func (b *SuburbBuilder) shops() {
	b.shop(-25, 8, "firebrick")
	b.shop(-33, 8, "firebrick")
}

var treePositions = [][2]float64{
	{-5, 5},
	{5, 5},
	{-12, 12},
	{12, 12},
	{-20, 10},
}

func (b *SuburbBuilder) trees() {
	for _, p := range treePositions {
		b.tree(p[0], p[1])
	}
}

// originMarker is a small red bar at the world origin for orientation.
func (b *SuburbBuilder) originMarker() {
	b.box(0, 0, 0, 1, 0.1, 0.1, "red")
}
