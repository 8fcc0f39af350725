package volume

import (
	"math"
	"slices"

	"github.com/philipparndt/tetraview/pkg/geometry"
)

// relativeEpsilon scales with the extent of the input
const relativeEpsilon = 1e-9

type hullFace struct {
	Face
	normal geometry.Vector3
	alive  bool
}

func newHullFace(points []geometry.Vector3, a, b, c int) hullFace {
	n := geometry.NewTriangle(points[a], points[b], points[c]).Normal()
	return hullFace{Face: Face{A: a, B: b, C: c}, normal: n, alive: true}
}

// distance is the signed distance of p above the face plane
func (f hullFace) distance(points []geometry.Vector3, p geometry.Vector3) float64 {
	return f.normal.Dot(p.Sub(points[f.A]))
}

// convexHull returns the indices of the extreme points in ascending order and
// the outward-wound hull faces in input indices. Flat and collinear inputs
// fall back to a fan-triangulated polygon and a bare segment.
func convexHull(points []geometry.Vector3) ([]int, []Face) {
	bbox := geometry.NewBoundingBox()
	for _, p := range points {
		bbox.Extend(p)
	}
	eps := relativeEpsilon * math.Max(bbox.Diagonal(), 1)

	i0, i1, i2, i3, rank := initialSimplex(points, eps)
	switch rank {
	case 0:
		return []int{i0}, nil
	case 1:
		lo, hi := extremesAlong(points, points[i1].Sub(points[i0]))
		return sortedUnique(lo, hi), nil
	case 2:
		return planarHull(points, i0, i1, i2)
	}

	used, faces := solidHull(points, [4]int{i0, i1, i2, i3}, eps)
	if extreme := extremeVertices(points, used, eps); len(extreme) < len(used) {
		used, faces, _ = subsetHull(points, extreme, eps)
	}
	return used, faces
}

// extremesAlong returns the first points with the smallest and largest
// projection onto direction
func extremesAlong(points []geometry.Vector3, direction geometry.Vector3) (lo, hi int) {
	for i, p := range points {
		d := p.Dot(direction)
		if d < points[lo].Dot(direction) {
			lo = i
		}
		if d > points[hi].Dot(direction) {
			hi = i
		}
	}
	return lo, hi
}

// solidHull runs the incremental hull from a non-degenerate starting simplex
func solidHull(points []geometry.Vector3, simplex [4]int, eps float64) ([]int, []Face) {
	faces := make([]hullFace, 0, 4)
	for skip := range simplex {
		var tri []int
		for j, idx := range simplex {
			if j != skip {
				tri = append(tri, idx)
			}
		}
		f := newHullFace(points, tri[0], tri[1], tri[2])
		if f.distance(points, points[simplex[skip]]) > 0 {
			f = newHullFace(points, tri[0], tri[2], tri[1])
		}
		faces = append(faces, f)
	}

	for p := range points {
		if slices.Contains(simplex[:], p) {
			continue
		}
		faces = addPoint(points, faces, p, eps)
	}

	var out []Face
	usedSet := make(map[int]bool)
	for _, f := range faces {
		if !f.alive {
			continue
		}
		out = append(out, f.Face)
		usedSet[f.A], usedSet[f.B], usedSet[f.C] = true, true, true
	}
	used := make([]int, 0, len(usedSet))
	for idx := range usedSet {
		used = append(used, idx)
	}
	slices.Sort(used)
	return used, out
}

// subsetHull builds the hull of points[subset] and maps the result back to
// indices into points. ok is false when the subset is not solid.
func subsetHull(points []geometry.Vector3, subset []int, eps float64) (used []int, faces []Face, ok bool) {
	sub := make([]geometry.Vector3, len(subset))
	for i, idx := range subset {
		sub[i] = points[idx]
	}
	i0, i1, i2, i3, rank := initialSimplex(sub, eps)
	if rank < 3 {
		return nil, nil, false
	}

	subUsed, subFaces := solidHull(sub, [4]int{i0, i1, i2, i3}, eps)
	used = make([]int, len(subUsed))
	for i, idx := range subUsed {
		used[i] = subset[idx]
	}
	faces = make([]Face, len(subFaces))
	for i, f := range subFaces {
		faces[i] = Face{A: subset[f.A], B: subset[f.B], C: subset[f.C]}
	}
	return used, faces, true
}

// extremeVertices drops hull vertices that lie on the hull of the remaining
// ones, such as points inside a flat side or along an edge. The incremental
// hull keeps them when they arrive before the side is closed.
func extremeVertices(points []geometry.Vector3, used []int, eps float64) []int {
	kept := slices.Clone(used)
	for i := 0; i < len(kept); {
		others := slices.Delete(slices.Clone(kept), i, i+1)
		if !outsideHull(points, others, points[kept[i]], eps) {
			kept = others
			continue
		}
		i++
	}
	return kept
}

func outsideHull(points []geometry.Vector3, subset []int, p geometry.Vector3, eps float64) bool {
	_, faces, ok := subsetHull(points, subset, eps)
	if !ok {
		return true
	}
	for _, f := range faces {
		if newHullFace(points, f.A, f.B, f.C).distance(points, p) > eps {
			return true
		}
	}
	return false
}

// addPoint grows the hull to include point p, replacing every face that can see
// it with a cone from the horizon to p. Points on or inside the hull are ignored.
func addPoint(points []geometry.Vector3, faces []hullFace, p int, eps float64) []hullFace {
	var visible []int
	for i, f := range faces {
		if f.alive && f.distance(points, points[p]) > eps {
			visible = append(visible, i)
		}
	}
	if len(visible) == 0 {
		return faces
	}

	directed := make(map[[2]int]bool)
	for _, i := range visible {
		f := faces[i]
		directed[[2]int{f.A, f.B}] = true
		directed[[2]int{f.B, f.C}] = true
		directed[[2]int{f.C, f.A}] = true
	}

	var horizon [][2]int
	for _, i := range visible {
		f := faces[i]
		for _, e := range [][2]int{{f.A, f.B}, {f.B, f.C}, {f.C, f.A}} {
			if !directed[[2]int{e[1], e[0]}] {
				horizon = append(horizon, e)
			}
		}
		faces[i].alive = false
	}

	for _, e := range horizon {
		faces = append(faces, newHullFace(points, e[0], e[1], p))
	}
	return faces
}

// initialSimplex picks up to four affinely independent points and reports the
// rank of the input: 0 all coincident, 1 collinear, 2 coplanar, 3 solid.
func initialSimplex(points []geometry.Vector3, eps float64) (i0, i1, i2, i3, rank int) {
	for i, p := range points {
		if p.X < points[i0].X {
			i0 = i
		}
	}

	best := 0.0
	for i, p := range points {
		if d := p.Distance(points[i0]); d > best {
			best, i1 = d, i
		}
	}
	if best <= eps {
		return i0, i0, i0, i0, 0
	}

	direction := points[i1].Sub(points[i0])
	best = 0
	for i, p := range points {
		if d := p.DistanceToLine(points[i0], direction); d > best {
			best, i2 = d, i
		}
	}
	if best <= eps {
		return i0, i1, i1, i1, 1
	}

	normal := geometry.NewTriangle(points[i0], points[i1], points[i2]).Normal()
	best = 0
	for i, p := range points {
		if d := math.Abs(normal.Dot(p.Sub(points[i0]))); d > best {
			best, i3 = d, i
		}
	}
	if best <= eps {
		return i0, i1, i2, i2, 2
	}
	return i0, i1, i2, i3, 3
}

// planarHull computes the boundary polygon of coplanar points with a monotone
// chain in the plane and fans it into triangles wound like (i0, i1, i2).
func planarHull(points []geometry.Vector3, i0, i1, i2 int) ([]int, []Face) {
	origin := points[i0]
	normal := geometry.NewTriangle(points[i0], points[i1], points[i2]).Normal()
	u := points[i1].Sub(origin).Normalize()
	w := normal.Cross(u)

	type planar struct {
		x, y float64
		idx  int
	}
	projected := make([]planar, len(points))
	for i, p := range points {
		d := p.Sub(origin)
		projected[i] = planar{x: d.Dot(u), y: d.Dot(w), idx: i}
	}
	slices.SortStableFunc(projected, func(a, b planar) int {
		if a.x != b.x {
			if a.x < b.x {
				return -1
			}
			return 1
		}
		switch {
		case a.y < b.y:
			return -1
		case a.y > b.y:
			return 1
		}
		return 0
	})

	cross := func(o, a, b planar) float64 {
		return (a.x-o.x)*(b.y-o.y) - (a.y-o.y)*(b.x-o.x)
	}

	// counter-clockwise about normal: lower chain then upper chain
	hull := make([]planar, 0, 2*len(projected))
	for _, p := range projected {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(projected) - 2; i >= 0; i-- {
		p := projected[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	hull = hull[:len(hull)-1]

	used := make([]int, 0, len(hull))
	var faces []Face
	for i, p := range hull {
		used = append(used, p.idx)
		if i >= 2 {
			faces = append(faces, Face{A: hull[0].idx, B: hull[i-1].idx, C: p.idx})
		}
	}
	slices.Sort(used)
	return used, faces
}

func sortedUnique(a, b int) []int {
	if a == b {
		return []int{a}
	}
	if a > b {
		a, b = b, a
	}
	return []int{a, b}
}
