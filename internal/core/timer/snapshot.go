package timer

import "fmt"

// Snapshot is an immutable view of a Timer.
type Snapshot struct {
	Role      Role
	Total     int
	Remaining int
	Running   bool
	Stage     Stage
}

// Elapsed returns the seconds counted down so far.
func (snapshot Snapshot) Elapsed() int {
	return snapshot.Total - snapshot.Remaining
}

// ElapsedFraction returns 1 - remaining/total, or 0 for a zero-length timer.
func (snapshot Snapshot) ElapsedFraction() float64 {
	if snapshot.Total <= 0 {
		return 0
	}
	fraction := float64(snapshot.Elapsed()) / float64(snapshot.Total)
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// ElapsedWithin reports whether the elapsed fraction lies in [lowPercent, highPercent).
func (snapshot Snapshot) ElapsedWithin(lowPercent, highPercent int) bool {
	if snapshot.Total <= 0 {
		return false
	}
	scaled := snapshot.Elapsed() * 100
	return scaled >= snapshot.Total*lowPercent && scaled < snapshot.Total*highPercent
}

// Clock formats the remaining time as MM:SS.
func (snapshot Snapshot) Clock() string {
	remaining := snapshot.Remaining
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}
