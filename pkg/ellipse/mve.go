package ellipse

import (
	"math"

	"github.com/astrokit/sourcecat/pkg/errors"
)

// maxIterations bounds a single minimum-volume-ellipse solve. A solve that
// has not met its stopping criterion by then counts as a failed attempt at
// that tolerance.
const maxIterations = 200000

// minVolEllipse computes an approximate minimum-area ellipse enclosing the
// given points using Khachiyan's barycentric coordinate-descent iteration.
// The iteration stops once the dual optimality gap falls below tol; a
// looser tol stops earlier and yields a less accurate, possibly slightly
// under-covering ellipse.
//
// Returns the semi-axes (descending) and the major-axis position angle in
// degrees. The center is discarded: footprint union is center-independent.
func minVolEllipse(pts []point, tol float64) (semiMajor, semiMinor, paDeg float64, err error) {
	n := len(pts)
	if n < 3 {
		return 0, 0, 0, errors.New("need at least 3 points")
	}

	const d = 2.0
	u := make([]float64, n)
	for i := range u {
		u[i] = 1 / float64(n)
	}

	converged := false
	for iter := 0; iter < maxIterations; iter++ {
		// X = sum u_i q_i q_i', with q = (x, y, 1)
		var xx, xy, yy, x1, y1, s float64
		for i, p := range pts {
			w := u[i]
			xx += w * p.x * p.x
			xy += w * p.x * p.y
			yy += w * p.y * p.y
			x1 += w * p.x
			y1 += w * p.y
			s += w
		}

		// Inverse of the symmetric 3x3 X by adjugate.
		det := xx*(yy*s-y1*y1) - xy*(xy*s-y1*x1) + x1*(xy*y1-yy*x1)
		if det == 0 || math.IsNaN(det) {
			return 0, 0, 0, errors.New("singular moment matrix")
		}
		i11 := (yy*s - y1*y1) / det
		i12 := (x1*y1 - xy*s) / det
		i13 := (xy*y1 - yy*x1) / det
		i22 := (xx*s - x1*x1) / det
		i23 := (xy*x1 - xx*y1) / det
		i33 := (xx*yy - xy*xy) / det

		// M_i = q_i' X^-1 q_i; the largest drives the update.
		maxM := 0.0
		maxJ := 0
		for i, p := range pts {
			m := i11*p.x*p.x + i22*p.y*p.y + i33 +
				2*(i12*p.x*p.y+i13*p.x+i23*p.y)
			if m > maxM {
				maxM = m
				maxJ = i
			}
		}

		if maxM <= (d+1)*(1+tol) {
			converged = true
			break
		}

		step := (maxM - d - 1) / ((d + 1) * (maxM - 1))
		for i := range u {
			u[i] *= 1 - step
		}
		u[maxJ] += step
	}
	if !converged {
		return 0, 0, 0, errors.New("iteration limit reached")
	}

	// Center and shape matrix A = inv(P diag(u) P' - cc') / d.
	var cx, cy float64
	for i, p := range pts {
		cx += u[i] * p.x
		cy += u[i] * p.y
	}
	var sxx, sxy, syy float64
	for i, p := range pts {
		sxx += u[i] * p.x * p.x
		sxy += u[i] * p.x * p.y
		syy += u[i] * p.y * p.y
	}
	sxx -= cx * cx
	sxy -= cx * cy
	syy -= cy * cy

	det := sxx*syy - sxy*sxy
	if det <= 0 || math.IsNaN(det) {
		return 0, 0, 0, errors.New("degenerate point set")
	}
	a11 := syy / (det * d)
	a12 := -sxy / (det * d)
	a22 := sxx / (det * d)

	// Eigen-decomposition of the symmetric 2x2 shape matrix. The smaller
	// eigenvalue corresponds to the major axis.
	mean := (a11 + a22) / 2
	disc := math.Sqrt((a11-a22)*(a11-a22)/4 + a12*a12)
	lMajor := mean - disc
	lMinor := mean + disc
	if lMajor <= 0 {
		return 0, 0, 0, errors.New("degenerate shape matrix")
	}

	semiMajor = 1 / math.Sqrt(lMajor)
	semiMinor = 1 / math.Sqrt(lMinor)

	var vx, vy float64
	if a12 != 0 {
		vx = lMajor - a22
		vy = a12
	} else if a11 <= a22 {
		vx, vy = 1, 0
	} else {
		vx, vy = 0, 1
	}
	paDeg = math.Atan2(vy, vx) * 180 / math.Pi
	// Normalize to [-90, 90): an ellipse's orientation is periodic in 180.
	for paDeg >= 90 {
		paDeg -= 180
	}
	for paDeg < -90 {
		paDeg += 180
	}
	return semiMajor, semiMinor, paDeg, nil
}
