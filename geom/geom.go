/*package geom provides the small geometric types shared by the injection
packages.*/
package geom

import (
	"math"
)

// Vec is a three dimensional vector.
type Vec [3]float64

// Norm returns the Euclidean norm of v.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

// Norm2 returns the squared Euclidean norm of v.
func (v *Vec) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Scaled returns v scaled by the constant c.
func (v *Vec) Scaled(c float64) Vec {
	return Vec{v[0] * c, v[1] * c, v[2] * c}
}
