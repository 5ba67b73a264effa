package setting

// DefaultDelayTolerance is the tolerance in minutes used when none is stored.
const DefaultDelayTolerance = 15

type SystemConfig struct {
	DelayTolerance int `json:"delay_tolerance"`
}

func Default() SystemConfig {
	return SystemConfig{DelayTolerance: DefaultDelayTolerance}
}
