package volume

import (
	"math"

	"github.com/philipparndt/tetraview/pkg/geometry"
)

// orientFaces assigns each face its outward normal.
//
// The normal n = (B-A) × (C-A) is tested against a witness vertex d outside the
// face: of the two candidate points A+n and A-n, the outward one is the one
// farther from d. This is an approximation that holds for convex hulls, not a
// solid-angle test. When the witness says to flip, B and C are swapped so the
// winding agrees with the normal.
func orientFaces(vol *Volume) {
	vol.Normals = make([]geometry.Vector3, len(vol.Faces))
	for i := range vol.Faces {
		n, flip := outwardNormal(vol.Vertices, vol.Faces[i])
		if flip {
			f := &vol.Faces[i]
			f.B, f.C = f.C, f.B
		}
		vol.Normals[i] = n
	}
}

// outwardNormal returns the unit normal of f and whether the winding had to
// flip to produce it. With three or fewer vertices the raw normal is accepted.
func outwardNormal(vertices []geometry.Vector3, f Face) (geometry.Vector3, bool) {
	a := vertices[f.A]
	n := geometry.NewTriangle(a, vertices[f.B], vertices[f.C]).Normal()
	if len(vertices) <= 3 {
		return n, false
	}

	witness, ok := witnessVertex(vertices, f, n)
	if !ok {
		return n, false
	}
	if witness.DistanceSquared(a.Add(n)) < witness.DistanceSquared(a.Sub(n)) {
		return n.Neg(), true
	}
	return n, false
}

// witnessVertex picks the vertex outside the face that lies farthest from its
// plane. Vertices coplanar with the face cannot tell the two sides apart.
func witnessVertex(vertices []geometry.Vector3, f Face, n geometry.Vector3) (geometry.Vector3, bool) {
	a := vertices[f.A]
	best, found := 0.0, false
	var witness geometry.Vector3
	for i, v := range vertices {
		if i == f.A || i == f.B || i == f.C {
			continue
		}
		if d := math.Abs(n.Dot(v.Sub(a))); !found || d > best {
			best, witness, found = d, v, true
		}
	}
	return witness, found
}
