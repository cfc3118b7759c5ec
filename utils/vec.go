package utils

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// FormatVec64 formats a vector as (x, y, z), using the shortest representation of every coordinate.
func FormatVec64(vec mgl64.Vec3) string {
	return "(" + formatFloat(vec[0]) + ", " + formatFloat(vec[1]) + ", " + formatFloat(vec[2]) + ")"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
