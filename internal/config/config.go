// Package config loads and validates the immutable simulation
// configuration: job-class and user-class distributions, tiered worker
// pool parameters, and the user arrival rate. It is consumed by
// internal/job's generator and internal/pool's worker pool.
package config

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"

	"github.com/spf13/viper"

	"github.com/go-foundations/jobsim/internal/simerr"
)

// JobClass describes one job type: its tag, fixed execution duration in
// virtual seconds, and its relative weight in the job-class distribution.
type JobClass struct {
	Tag               string `mapstructure:"job_type"`
	ExecutionDuration int    `mapstructure:"job_execution_duration"`
	Weight            int    `mapstructure:"job_probability"`
}

// UserClass describes one user type: its tag, relative weight in the
// user-class distribution, and the maximum number of jobs a single
// request batch from this user class may submit.
type UserClass struct {
	Tag               string `mapstructure:"user_type"`
	Weight            int    `mapstructure:"user_probability"`
	MaxJobsPerRequest int    `mapstructure:"num_jobs"`
}

// WorkerTier describes one tier of the worker pool: its tag, capacity,
// activation priority (lower = preferred), and startup/shutdown latency.
type WorkerTier struct {
	Tag             string `mapstructure:"worker_type"`
	Capacity        int    `mapstructure:"pool_size"`
	Priority        int    `mapstructure:"pool_priority"`
	StartupLatency  int    `mapstructure:"worker_startup_time"`
	ShutdownLatency int    `mapstructure:"worker_shutdown_time"`
}

// raw mirrors the on-disk JSON schema documented by the on-disk configuration schema.
type raw struct {
	JobDefinitions    []JobClass   `mapstructure:"job_definitions"`
	UserDefinitions   []UserClass  `mapstructure:"user_definitions"`
	WorkerDefinitions []WorkerTier `mapstructure:"worker_definitions"`
	LambdaPerHour     int          `mapstructure:"lambda_users_requests_per_hour"`
}

// Config is the immutable parameter set shared by the generator and the
// worker pool for the lifetime of one run. Build it once via Load or
// Default; never mutate it after construction.
type Config struct {
	JobClasses  []JobClass
	UserClasses []UserClass
	Tiers       []WorkerTier

	LambdaPerHour int
	Seed          int64

	// JobClassBag and UserClassBag are the derived cyclic sampling bags
	// (section 4.B): bag[k % len(bag)] yields the k-th class in proportion
	// to its configured weight.
	JobClassBag  []string
	UserClassBag []string
}

// ExecutionDuration returns the configured execution duration for a job
// class tag. Panics via simerr if the tag is unknown. LoadScenario does
// not check class tags against the configuration, so a scenario job whose
// class is absent from the loaded configuration reaches this panic when
// the kernel dispatches it.
func (c *Config) ExecutionDuration(tag string) int {
	for _, jc := range c.JobClasses {
		if jc.Tag == tag {
			return jc.ExecutionDuration
		}
	}
	simerr.Raise("config.ExecutionDuration", fmt.Sprintf("unknown job class %q", tag))
	return 0
}

// MaxJobsPerRequest returns the configured per-request job cap for a user
// class tag.
func (c *Config) MaxJobsPerRequest(tag string) int {
	for _, uc := range c.UserClasses {
		if uc.Tag == tag {
			return uc.MaxJobsPerRequest
		}
	}
	simerr.Raise("config.MaxJobsPerRequest", fmt.Sprintf("unknown user class %q", tag))
	return 0
}

// Load reads a JSON configuration file at path and falls back to Default
// when path is empty, the file is missing, its JSON cannot be read or
// decoded, it defines no job, user or worker entries, or the result fails
// Validate. It never reports an error, so an inconsistent configuration
// file does not stop a run; LoadBytes is the variant that returns the
// error. seed parameterizes the bag shuffle and is carried into the
// returned Config for the generator to reuse.
func Load(path string, seed int64) *Config {
	if path == "" {
		return Default(seed)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return Default(seed)
	}

	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return Default(seed)
	}
	if len(r.JobDefinitions) == 0 && len(r.UserDefinitions) == 0 && len(r.WorkerDefinitions) == 0 {
		return Default(seed)
	}

	cfg := build(r, seed)
	if err := cfg.Validate(); err != nil {
		return Default(seed)
	}
	return cfg
}

// LoadBytes parses raw JSON bytes (used by tests and by callers that
// already have the file contents in memory) the same way Load does,
// but returns the configuration-inconsistency error instead of silently
// falling back, so callers that want fail-fast behavior can get it.
func LoadBytes(data []byte, seed int64) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", simerr.ErrInput, err)
	}
	var r raw
	if err := v.Unmarshal(&r); err != nil {
		return nil, fmt.Errorf("%w: %v", simerr.ErrInput, err)
	}
	cfg := build(r, seed)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(r raw, seed int64) *Config {
	cfg := &Config{
		JobClasses:    r.JobDefinitions,
		UserClasses:   r.UserDefinitions,
		Tiers:         r.WorkerDefinitions,
		LambdaPerHour: r.LambdaPerHour,
		Seed:          seed,
	}
	cfg.deriveBags(rand.New(rand.NewSource(seed)))
	return cfg
}

func (c *Config) deriveBags(rng *rand.Rand) {
	jobTags := make([]string, len(c.JobClasses))
	jobWeights := make([]int, len(c.JobClasses))
	for i, jc := range c.JobClasses {
		jobTags[i] = jc.Tag
		jobWeights[i] = jc.Weight
	}
	c.JobClassBag = buildBag(jobTags, jobWeights, rng)

	userTags := make([]string, len(c.UserClasses))
	userWeights := make([]int, len(c.UserClasses))
	for i, uc := range c.UserClasses {
		userTags[i] = uc.Tag
		userWeights[i] = uc.Weight
	}
	c.UserClassBag = buildBag(userTags, userWeights, rng)
}

// Validate enforces the configuration-inconsistency invariants of the
// error-handling design: unique tier tags, non-negative capacities,
// non-negative latencies, a positive arrival rate, and at least one job
// class and user class with positive weights.
func (c *Config) Validate() error {
	if c.LambdaPerHour <= 0 {
		return fmt.Errorf("%w: lambda_users_requests_per_hour must be positive, got %d", simerr.ErrConfig, c.LambdaPerHour)
	}
	if len(c.Tiers) == 0 {
		return fmt.Errorf("%w: at least one worker tier is required", simerr.ErrConfig)
	}

	seen := make(map[string]bool, len(c.Tiers))
	for _, t := range c.Tiers {
		if seen[t.Tag] {
			return fmt.Errorf("%w: duplicate worker tier tag %q", simerr.ErrConfig, t.Tag)
		}
		seen[t.Tag] = true
		if t.Capacity < 0 {
			return fmt.Errorf("%w: tier %q has negative capacity %d", simerr.ErrConfig, t.Tag, t.Capacity)
		}
		if t.StartupLatency < 0 || t.ShutdownLatency < 0 {
			return fmt.Errorf("%w: tier %q has a negative latency", simerr.ErrConfig, t.Tag)
		}
	}

	if len(c.JobClasses) == 0 {
		return fmt.Errorf("%w: at least one job class is required", simerr.ErrConfig)
	}
	for _, jc := range c.JobClasses {
		if jc.Weight <= 0 {
			return fmt.Errorf("%w: job class %q has nonpositive weight %d", simerr.ErrConfig, jc.Tag, jc.Weight)
		}
		if jc.ExecutionDuration < 0 {
			return fmt.Errorf("%w: job class %q has negative execution duration", simerr.ErrConfig, jc.Tag)
		}
	}

	if len(c.UserClasses) == 0 {
		return fmt.Errorf("%w: at least one user class is required", simerr.ErrConfig)
	}
	for _, uc := range c.UserClasses {
		if uc.Weight <= 0 {
			return fmt.Errorf("%w: user class %q has nonpositive weight %d", simerr.ErrConfig, uc.Tag, uc.Weight)
		}
		if uc.MaxJobsPerRequest <= 0 {
			return fmt.Errorf("%w: user class %q has nonpositive num_jobs", simerr.ErrConfig, uc.Tag)
		}
	}

	return nil
}

// TiersByPriority returns the configured tiers sorted by ascending
// priority (lowest number first), the order the pool's admission policy
// activates them in.
func (c *Config) TiersByPriority() []WorkerTier {
	out := make([]WorkerTier, len(c.Tiers))
	copy(out, c.Tiers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}
