package calc

// categoryEmissions holds the daily emission balance of each shared
// category, indexed by SharedCategories. CO2 figures are kg/day;
// pollutant figures are g/day. Negative values are avoided emissions
// from replaced traditional trips; positive values are caused by the
// shared vehicles themselves.
type categoryEmissions struct {
	ttw [9]float64
	wtt [9]float64
	lca [9]float64
	nox [9]float64
	pm  [9]float64
}

// applyEmissionFactors turns the derived activity into per-category
// emission balances.
//
// Traditional-mode CO2 splits into two accounting buckets: private car
// and road transit burn fuel on board, so their avoided emissions are
// tank-to-wheel with a separate upstream share derived from the WTT
// fraction; rail, cycling and walking have no tailpipe, so their
// factors (grid electricity for rail, food-energy proxies for active
// modes) count entirely as well-to-tank.
//
// A shared category's own CO2 uses its electricity consumption when it
// has any, otherwise its combustion factor. Electric categories book
// the grid emissions in both buckets, matching how the avoided rail
// trips are booked.
func applyEmissionFactors(a activity, gen generalValues, trad [5]tradValues, shared [9]sharedValues) categoryEmissions {
	railFactor := gen.electricityCo2 * trad[2].railEfficiency
	wttMultiplier := 1/(1-gen.wttFraction/100) - 1

	var e categoryEmissions
	for c := range SharedCategories {
		ttwCar := a.decreasedKm[0][c] * trad[0].ttwCo2 / 1000
		ttwRoad := a.decreasedKm[1][c] * trad[1].ttwCo2 / 1000
		wttRail := a.decreasedKm[2][c] * railFactor / 1000
		wttCycling := a.decreasedKm[3][c] * trad[3].ttwCo2 / 1000
		wttWalking := a.decreasedKm[4][c] * trad[4].ttwCo2 / 1000

		evFactor := gen.electricityCo2 * shared[c].evEfficiency
		var ownTTW, ownWTT float64
		if evFactor != 0 {
			ownTTW = a.totalKm[c] * evFactor / 1000
			ownWTT = ownTTW
		} else {
			ownTTW = a.totalKm[c] * shared[c].ttwCo2 / 1000
			ownWTT = ownTTW * wttMultiplier
		}

		e.ttw[c] = ttwCar + ttwRoad + ownTTW
		e.wtt[c] = wttRail + wttCycling + wttWalking +
			(ttwCar+ttwRoad)*wttMultiplier + ownWTT

		for m := range TraditionalModes {
			e.lca[c] += a.decreasedKm[m][c] * trad[m].lca / 1000
			e.nox[c] += a.decreasedKm[m][c] * trad[m].nox / 1000
			e.pm[c] += a.decreasedKm[m][c] * trad[m].pm / 1000
		}
		e.lca[c] += a.totalKm[c] * shared[c].lca / 1000
		e.nox[c] += a.totalKm[c] * shared[c].nox / 1000
		e.pm[c] += a.totalKm[c] * shared[c].pm / 1000
	}
	return e
}
