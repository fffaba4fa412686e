package types

// RunMode is a type for the deployment mode of the process
type RunMode string

const (
	RunModeEngine RunMode = "engine"
	RunModeLocal  RunMode = "local"
)
