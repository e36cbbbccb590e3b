// Package config gathers the parameters of a drone simulation from defaults,
// .env files and DRONESIM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sarchlab/dronesim/distribution"
	"github.com/sarchlab/dronesim/drone"
)

// EnvPrefix starts the name of every environment variable read by Load.
const EnvPrefix = "DRONESIM_"

// Config holds everything needed to set up a simulation.
type Config struct {
	Capacities    []float64
	InitialQueues []float64
	Limits        distribution.Limits
	ArrivalRate   float64
	NumTicks      uint64
	Noise         drone.Noise

	// Seed drives the noise. Zero seeds from the clock.
	Seed        int64
	ErrorPolicy drone.ErrorPolicy

	// OutputFileName is the recording path without the .sqlite3 suffix. An
	// empty name is replaced by a unique one.
	OutputFileName string
	Recording      bool

	// RecorderType is sqlite or clickhouse. ClickHouseDSN locates the server
	// for the latter.
	RecorderType  string
	ClickHouseDSN string

	Monitor      bool
	MonitorPort  int
	OpenBrowser  bool
	TickInterval time.Duration

	// LogTicks writes a line per tick to the standard logger.
	LogTicks bool
}

// Default returns the configuration of the reference simulation: five drones
// fed with 100 packets per tick for 100 ticks.
func Default() Config {
	return Config{
		Capacities:   []float64{10, 15, 20, 12, 8},
		Limits:       distribution.DefaultLimits(),
		ArrivalRate:  100,
		NumTicks:     100,
		Noise:        drone.DefaultNoise(),
		ErrorPolicy:  drone.ErrorPolicyAbort,
		Recording:    true,
		RecorderType: "sqlite",
	}
}

// Load returns the default configuration overridden by the given .env files
// and then by the process environment. Missing files are an error.
func Load(envFiles ...string) (Config, error) {
	values := map[string]string{}

	if len(envFiles) > 0 {
		fileValues, err := godotenv.Read(envFiles...)
		if err != nil {
			return Config{}, fmt.Errorf("reading env files: %w", err)
		}

		values = fileValues
	}

	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, EnvPrefix) {
			values[k] = v
		}
	}

	c := Default()

	err := c.apply(values)
	if err != nil {
		return Config{}, err
	}

	return c, nil
}

type setter func(c *Config, v string) error

var setters = map[string]setter{
	"CAPACITIES": func(c *Config, v string) (err error) {
		c.Capacities, err = ParseFloats(v)
		return err
	},
	"INITIAL_QUEUES": func(c *Config, v string) (err error) {
		c.InitialQueues, err = ParseFloats(v)
		return err
	},
	"MAX_EFFICIENCY": floatSetter(func(c *Config) *float64 {
		return &c.Limits.MaxEfficiency
	}),
	"QUEUE_MAX_SIZE": floatSetter(func(c *Config) *float64 {
		return &c.Limits.QueueMaxSize
	}),
	"ARRIVAL_RATE": floatSetter(func(c *Config) *float64 {
		return &c.ArrivalRate
	}),
	"CAPACITY_JITTER": floatSetter(func(c *Config) *float64 {
		return &c.Noise.CapacityJitter
	}),
	"RATE_FLOOR": floatSetter(func(c *Config) *float64 {
		return &c.Noise.RateFloor
	}),
	"RATE_STEP_MIN": intSetter(func(c *Config) *int {
		return &c.Noise.RateStepMin
	}),
	"RATE_STEP_MAX": intSetter(func(c *Config) *int {
		return &c.Noise.RateStepMax
	}),
	"MONITOR_PORT": intSetter(func(c *Config) *int {
		return &c.MonitorPort
	}),
	"NUM_TICKS": func(c *Config, v string) (err error) {
		c.NumTicks, err = strconv.ParseUint(v, 10, 64)
		return err
	},
	"SEED": func(c *Config, v string) (err error) {
		c.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	},
	"ERROR_POLICY": func(c *Config, v string) (err error) {
		c.ErrorPolicy, err = drone.ParseErrorPolicy(v)
		return err
	},
	"OUTPUT": func(c *Config, v string) error {
		c.OutputFileName = v
		return nil
	},
	"RECORDER": func(c *Config, v string) error {
		c.RecorderType = strings.ToLower(v)
		return nil
	},
	"CLICKHOUSE_DSN": func(c *Config, v string) error {
		c.ClickHouseDSN = v
		return nil
	},
	"RECORD": boolSetter(func(c *Config) *bool { return &c.Recording }),
	"MONITOR": boolSetter(func(c *Config) *bool { return &c.Monitor }),
	"OPEN_BROWSER": boolSetter(func(c *Config) *bool {
		return &c.OpenBrowser
	}),
	"LOG_TICKS": boolSetter(func(c *Config) *bool { return &c.LogTicks }),
	"TICK_INTERVAL": func(c *Config, v string) (err error) {
		c.TickInterval, err = time.ParseDuration(v)
		return err
	},
}

func floatSetter(field func(c *Config) *float64) setter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}

		*field(c) = f

		return nil
	}
}

func intSetter(field func(c *Config) *int) setter {
	return func(c *Config, v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}

		*field(c) = i

		return nil
	}
}

func boolSetter(field func(c *Config) *bool) setter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}

		*field(c) = b

		return nil
	}
}

func (c *Config) apply(values map[string]string) error {
	for k, v := range values {
		name, ok := strings.CutPrefix(k, EnvPrefix)
		if !ok {
			continue
		}

		set, ok := setters[name]
		if !ok {
			continue
		}

		err := set(c, strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", k, v, err)
		}
	}

	return nil
}

// ParseFloats parses a comma separated list of numbers. Blank entries are
// not allowed.
func ParseFloats(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))

	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		values[i] = v
	}

	return values, nil
}

// Validate reports every parameter that cannot start a simulation.
func (c Config) Validate() error {
	var errs []error

	if len(c.Capacities) == 0 {
		errs = append(errs, errors.New("at least one drone capacity is needed"))
	}

	for i, v := range c.Capacities {
		if !(v >= 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("capacity %d is %v", i, v))
		}
	}

	if c.InitialQueues != nil && len(c.InitialQueues) != len(c.Capacities) {
		errs = append(errs, fmt.Errorf(
			"%d initial queues for %d drones",
			len(c.InitialQueues), len(c.Capacities)))
	}

	if !(c.Limits.MaxEfficiency > 0) || math.IsInf(c.Limits.MaxEfficiency, 0) {
		errs = append(errs, fmt.Errorf(
			"max efficiency must be positive and finite, got %v",
			c.Limits.MaxEfficiency))
	}

	if !(c.Limits.QueueMaxSize >= 0) || math.IsInf(c.Limits.QueueMaxSize, 0) {
		errs = append(errs, fmt.Errorf(
			"queue max size must be finite and not negative, got %v",
			c.Limits.QueueMaxSize))
	}

	if !(c.ArrivalRate >= 0) || math.IsInf(c.ArrivalRate, 0) {
		errs = append(errs, fmt.Errorf(
			"arrival rate must be finite and not negative, got %v",
			c.ArrivalRate))
	}

	if c.NumTicks == 0 {
		errs = append(errs, errors.New("number of ticks must be positive"))
	}

	if c.Noise.RateStepMax < c.Noise.RateStepMin {
		errs = append(errs, fmt.Errorf(
			"rate step range [%d, %d) is empty",
			c.Noise.RateStepMin, c.Noise.RateStepMax))
	}

	switch c.RecorderType {
	case "", "sqlite":
	case "clickhouse":
		if c.ClickHouseDSN == "" {
			errs = append(errs, errors.New("the clickhouse recorder needs a DSN"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown recorder %q", c.RecorderType))
	}

	if c.MonitorPort < 0 || c.MonitorPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid monitor port %d", c.MonitorPort))
	}

	return errors.Join(errs...)
}
