package stats

// MinTrendObservations is the fewest daily points a series needs for a
// week-over-week comparison.
const MinTrendObservations = 14

// WeekOverWeekChange compares the mean of the last seven values to the
// mean of the seven before them, as a percentage. ok is false when the
// series is shorter than 14 observations. A zero previous mean yields
// 0 rather than a division failure.
func WeekOverWeekChange(values []float64) (change float64, ok bool) {
	if len(values) < MinTrendObservations {
		return 0, false
	}

	recent := mean(values[len(values)-7:])
	previous := mean(values[len(values)-14 : len(values)-7])
	if previous == 0 {
		return 0, true
	}
	return (recent - previous) / previous * 100, true
}
