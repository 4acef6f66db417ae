package config

// Default returns the documented fallback configuration used when no
// configuration file is supplied, or the supplied file is missing or
// invalid JSON (error-handling design, "Input error" kind — not fatal,
// the run proceeds against sane defaults).
//
// It models a small/medium/large job mix, free/cheap/subscriber user
// classes, and a two-tier pool: a small always-hot tier for fast
// turnaround and a larger cold tier that absorbs burst overflow.
func Default(seed int64) *Config {
	r := raw{
		JobDefinitions: []JobClass{
			{Tag: "S", ExecutionDuration: 30, Weight: 60},
			{Tag: "M", ExecutionDuration: 120, Weight: 30},
			{Tag: "L", ExecutionDuration: 600, Weight: 10},
		},
		UserDefinitions: []UserClass{
			{Tag: "F", Weight: 50, MaxJobsPerRequest: 1},
			{Tag: "C", Weight: 35, MaxJobsPerRequest: 3},
			{Tag: "S", Weight: 15, MaxJobsPerRequest: 8},
		},
		WorkerDefinitions: []WorkerTier{
			{Tag: "hot", Capacity: 4, Priority: 1, StartupLatency: 0, ShutdownLatency: 60},
			{Tag: "cold", Capacity: 16, Priority: 2, StartupLatency: 300, ShutdownLatency: 120},
		},
		LambdaPerHour: 200,
	}
	return build(r, seed)
}
