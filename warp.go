package marquee

import (
	"github.com/kvartborg/vector"
)

// shellEpsilon is the shortest direction that is still normalized. Shorter
// inputs have no usable direction and map to +Z.
const shellEpsilon = 1e-12

// WarpToShell remaps positions in place onto a cylinder or sphere of the
// given radius and returns them. The cylinder keeps y and moves (x, z) onto
// a circle of radius r in the XZ plane; the sphere moves (x, y, z) onto a
// sphere of radius r. Vertices whose direction has zero length land on +Z.
func WarpToShell(positions []Vec3, shell ShellKind, radius float64) []Vec3 {
	for i, p := range positions {
		switch shell {
		case ShellCylinder:
			xz := vector.Vector{p.X, p.Z}
			if xz.Magnitude() < shellEpsilon {
				positions[i] = Vec3{X: 0, Y: p.Y, Z: radius}
				continue
			}
			xz = xz.Unit().Scale(radius)
			positions[i] = Vec3{X: xz[0], Y: p.Y, Z: xz[1]}
		case ShellSphere:
			xyz := vector.Vector{p.X, p.Y, p.Z}
			if xyz.Magnitude() < shellEpsilon {
				positions[i] = Vec3{Z: radius}
				continue
			}
			xyz = xyz.Unit().Scale(radius)
			positions[i] = Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
		}
	}
	return positions
}
