package perception

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	dmath "github.com/yohamta/donburi/features/math"
)

// Hit is one object crossed by a ray.
type Hit struct {
	Distance  float64
	Point     dmath.Vec2
	Entity    donburi.Entity
	HasEntity bool
	Tags      []string
}

// HasTag reports whether the hit object carries any of tags.
func (h Hit) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, got := range h.Tags {
			if got == want {
				return true
			}
		}
	}
	return false
}

// RayCaster returns the objects along a ray, nearest first.
type RayCaster interface {
	Cast(origin, dir dmath.Vec2, maxDist float64, exclude donburi.Entity) []Hit
}

// SpaceCaster casts rays against the objects of a resolv space. Only
// objects carrying one of its tags are considered.
type SpaceCaster struct {
	space *resolv.Space
	tags  []string
}

func NewSpaceCaster(space *resolv.Space, tags ...string) *SpaceCaster {
	return &SpaceCaster{space: space, tags: tags}
}

// Cast intersects the ray with each object's bounding box by hand, so the
// space is never modified while casting.
func (c *SpaceCaster) Cast(origin, dir dmath.Vec2, maxDist float64, exclude donburi.Entity) []Hit {
	if c.space == nil || maxDist <= 0 {
		return nil
	}
	dir, ok := normalize(dir)
	if !ok {
		return nil
	}

	var hits []Hit
	for _, obj := range c.space.Objects() {
		tags := c.matchingTags(obj)
		if len(tags) == 0 {
			continue
		}
		entity, hasEntity := obj.Data.(donburi.Entity)
		if hasEntity && entity == exclude {
			continue
		}
		dist, ok := rayBox(origin, dir, maxDist, obj.X, obj.Y, obj.W, obj.H)
		if !ok {
			continue
		}
		hits = append(hits, Hit{
			Distance:  dist,
			Point:     dmath.Vec2{X: origin.X + dir.X*dist, Y: origin.Y + dir.Y*dist},
			Entity:    entity,
			HasEntity: hasEntity,
			Tags:      tags,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (c *SpaceCaster) matchingTags(obj *resolv.Object) []string {
	var out []string
	for _, t := range c.tags {
		if obj.HasTags(t) {
			out = append(out, t)
		}
	}
	return out
}

// rayBox is a slab test. It returns the distance at which the ray enters
// the box, or 0 when the origin is already inside.
func rayBox(origin, dir dmath.Vec2, maxDist, x, y, w, h float64) (float64, bool) {
	tmin, tmax := 0.0, maxDist

	axes := [2][4]float64{
		{origin.X, dir.X, x, x + w},
		{origin.Y, dir.Y, y, y + h},
	}
	for _, a := range axes {
		o, d, lo, hi := a[0], a[1], a[2], a[3]
		if math.Abs(d) < 1e-12 {
			if o < lo || o > hi {
				return 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

func normalize(v dmath.Vec2) (dmath.Vec2, bool) {
	n := math.Hypot(v.X, v.Y)
	if n == 0 {
		return dmath.Vec2{}, false
	}
	return dmath.Vec2{X: v.X / n, Y: v.Y / n}, true
}
