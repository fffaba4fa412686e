package types

// Status is a type for the lifecycle status of a stored record
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) Validate() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return true
	default:
		return false
	}
}

// LogLevel is a type for the level of logging
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
