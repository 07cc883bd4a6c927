package regrid

// boundsFromProfile derives [lo,hi] layer boundaries from a monotonic
// profile: interior boundaries sit at the midpoint between neighboring
// levels, and the two edge boundaries extrapolate the neighboring
// spacing. The Interval resample category always takes its layer
// boundaries from this function; a "{name}_bounds" variable in the
// product is not consulted.
func boundsFromProfile(profile []float64) [][2]float64 {
	n := len(profile)
	bounds := make([][2]float64, n)
	for k := 0; k < n; k++ {
		var lo, hi float64
		switch {
		case n == 1:
			lo, hi = profile[0], profile[0]
		case k == 0:
			lo = profile[0] - (profile[1]-profile[0])/2
			hi = (profile[0] + profile[1]) / 2
		case k == n-1:
			lo = (profile[k-1] + profile[k]) / 2
			hi = profile[k] + (profile[k]-profile[k-1])/2
		default:
			lo = (profile[k-1] + profile[k]) / 2
			hi = (profile[k] + profile[k+1]) / 2
		}
		bounds[k] = [2]float64{lo, hi}
	}
	return bounds
}
