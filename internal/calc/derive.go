package calc

// activity holds the derived trip activity per shared category, before
// any emission factor is applied. Indexes follow SharedCategories for
// columns and TraditionalModes for rows.
type activity struct {
	// totalTrips is the number of daily trips served by each category.
	totalTrips [9]float64
	// replacedTrips is the number of daily trips each category takes
	// away from each traditional mode.
	replacedTrips [5][9]float64
	// decreasedKm is the daily distance no longer travelled by each
	// traditional mode, as a negative number.
	decreasedKm [5][9]float64
	// totalKm is the daily distance travelled by each category's own
	// vehicles.
	totalKm [9]float64
}

// deriveActivity expands the resolved fleet and replacement variables
// into daily trip and distance figures.
func deriveActivity(shared [9]sharedValues) activity {
	var a activity
	for c := range shared {
		col := &shared[c]
		a.totalTrips[c] = col.vehicles * col.tripsPerDay
		for m := range TraditionalModes {
			replaced := a.totalTrips[c] * col.shares[m] / 100
			a.replacedTrips[m][c] = replaced
			a.decreasedKm[m][c] = -replaced * col.distances[m]
			a.totalKm[c] += replaced * col.distances[m]
		}
	}
	return a
}
