package macro

// Status is the macro engine's lifecycle state.
type Status int

const (
	StatusStopped Status = iota
	StatusRunning
	StatusPaused
)

func (s Status) String() string {
	switch s {
	case StatusStopped:
		return "STOPPED"
	case StatusRunning:
		return "RUNNING"
	case StatusPaused:
		return "PAUSED"
	}
	return "UNKNOWN"
}

// IsActive reports RUNNING or PAUSED.
func (s Status) IsActive() bool {
	return s == StatusRunning || s == StatusPaused
}

func (s Status) IsRunning() bool { return s == StatusRunning }
func (s Status) IsPaused() bool  { return s == StatusPaused }
func (s Status) IsStopped() bool { return s == StatusStopped }
