package models

// Vec2 is a point or extent in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// BoundingBox is an axis aligned box.
type BoundingBox struct {
	Min, Max Vec2
}

// BoxAround centers a box of the given size on p.
func BoxAround(p, size Vec2) BoundingBox {
	half := size.Scale(0.5)
	return BoundingBox{Min: p.Sub(half), Max: p.Add(half)}
}

func (b BoundingBox) Size() Vec2 { return b.Max.Sub(b.Min) }

func (b BoundingBox) Contains(p Vec2) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Min.X <= o.Max.X && o.Min.X <= b.Max.X && b.Min.Y <= o.Max.Y && o.Min.Y <= b.Max.Y
}
