package calc

import "math"

// daysPerYear converts daily figures to annual ones.
const daysPerYear = 365.25

// aggregateResult folds the internal nine-category balances into the
// five user-facing categories and derives the annual and per-capita
// totals.
func aggregateResult(e categoryEmissions, inhabitants int) (*Result, error) {
	index := make(map[SharedCategory]int, len(SharedCategories))
	for i, cat := range SharedCategories {
		index[cat] = i
	}

	perMode := make(map[ResultCategory]ModeResult, len(ResultCategories))
	var sumTTW, sumWTT, sumLCA, sumNOx, sumPM float64
	for _, rc := range ResultCategories {
		var mr ModeResult
		for _, cat := range resultGrouping[rc] {
			c, ok := index[cat]
			if !ok {
				return nil, newInvariantError("result grouping references unknown category %q", cat)
			}
			mr.TTW += e.ttw[c]
			mr.WTT += e.wtt[c]
			mr.LCA += e.lca[c]
			mr.NOx += e.nox[c]
			mr.PM += e.pm[c]
		}
		mr.Total = mr.TTW + mr.WTT + mr.LCA
		perMode[rc] = mr

		sumTTW += mr.TTW
		sumWTT += mr.WTT
		sumLCA += mr.LCA
		sumNOx += mr.NOx
		sumPM += mr.PM
	}
	if len(perMode) != len(ResultCategories) {
		return nil, newInvariantError("expected %d result categories, got %d",
			len(ResultCategories), len(perMode))
	}

	totals := Totals{
		CO2: CO2Totals{
			Total:       co2Block(sumTTW+sumWTT+sumLCA, inhabitants),
			TankToWheel: co2Block(sumTTW, inhabitants),
			WellToTank:  co2Block(sumWTT, inhabitants),
			LifeCycle:   co2Block(sumLCA, inhabitants),
		},
		AirQuality: AirQualityTotals{
			NOx: airQualityBlock(sumNOx, inhabitants),
			PM:  airQualityBlock(sumPM, inhabitants),
		},
	}

	var perModeTotal float64
	for _, mr := range perMode {
		perModeTotal += mr.Total
	}
	if math.Abs(perModeTotal-totals.CO2.Total.KgPerDay) > 1e-6*math.Max(1, math.Abs(perModeTotal)) {
		return nil, newInvariantError("per-category CO2 sum %v does not match total %v",
			perModeTotal, totals.CO2.Total.KgPerDay)
	}

	return &Result{PerMode: perMode, Totals: totals}, nil
}

func co2Block(kgPerDay float64, inhabitants int) CO2Block {
	tonPerYear := kgPerDay / 1000 * daysPerYear
	return CO2Block{
		KgPerDay:          kgPerDay,
		TonPerYear:        tonPerYear,
		TonPerYearPer1000: tonPerYear / float64(inhabitants) * 1000,
	}
}

func airQualityBlock(gPerDay float64, inhabitants int) AirQualityBlock {
	kgPerYear := gPerDay / 1000 * daysPerYear
	return AirQualityBlock{
		GPerDay:          gPerDay,
		KgPerYear:        kgPerYear,
		KgPerYearPer1000: kgPerYear / float64(inhabitants) * 1000,
	}
}
