// FILE: internal/pipeline/session.go
// SessionFilter (spec.md §4.2): gates by the Eastern-time hour of the
// decision bar. Stateless.
package pipeline

import "time"

const (
	londonStartHour = 3
	londonEndHour   = 11
	nyStartHour     = 8
	nyEndHour       = 22
)

var easternLocation = loadEastern()

func loadEastern() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback keeps the pipeline usable in minimal container images
		// lacking a tzdata package; it trades DST correctness for
		// availability rather than panicking at init time.
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

func sessionOK(decisionBarTime time.Time) bool {
	hour := decisionBarTime.In(easternLocation).Hour()
	return (hour >= londonStartHour && hour < londonEndHour) ||
		(hour >= nyStartHour && hour < nyEndHour)
}
