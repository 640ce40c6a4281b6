package geodesy

import(
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/abworrall/solex-geometry/pkg/emath"
)

const(
	SolarRadiusKm      = 696342.0
	DistanceRoundingKm = 50.0
)

// ToKm converts a distance in solar radii (or an angle in radians, on
// the solar surface) into kilometres.
func ToKm(solarRadii float64) float64 { return solarRadii * SolarRadiusKm }

// RoundKm rounds to the nearest 50km; measurements aren't any better than that.
func RoundKm(km float64) float64 { return emath.RoundTo(km, DistanceRoundingKm) }

// FormatKm renders a rounded distance for display, e.g. "1 181 100 km".
func FormatKm(km float64) string {
	return strings.ReplaceAll(humanize.Comma(int64(RoundKm(km))), ",", " ") + " km"
}
