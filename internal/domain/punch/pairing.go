package punch

import "time"

// WorkedDuration pairs consecutive punches (0,1), (2,3), ... of an ascending
// slice and sums the intervals that open with IN or BREAK_END and close with
// OUT or BREAK_START. Any other pair contributes nothing and a trailing
// unpaired punch is ignored.
func WorkedDuration(punches []Punch) time.Duration {
	var total time.Duration
	for i := 0; i+1 < len(punches); i += 2 {
		start, end := punches[i], punches[i+1]
		if start.Kind.opensInterval() && end.Kind.closesInterval() {
			total += end.Timestamp.Sub(start.Timestamp)
		}
	}
	return total
}

// WorkedMinutes is WorkedDuration expressed in fractional minutes.
func WorkedMinutes(punches []Punch) float64 {
	return WorkedDuration(punches).Minutes()
}

// WorkedHours is WorkedDuration expressed in fractional hours.
func WorkedHours(punches []Punch) float64 {
	return WorkedDuration(punches).Hours()
}

// Complete reports whether a day's punches pair up evenly.
func Complete(punches []Punch) bool {
	return len(punches)%2 == 0
}
