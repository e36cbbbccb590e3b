package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sarchlab/dronesim/config"
	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/reporting"
	"github.com/sarchlab/dronesim/simulation"
)

func newRunCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "run",
		Short: "Run a full simulation and print its time series.",
		Long: `Run a full simulation. Settings come from the defaults, then ` +
			`the .env files given with --env, then DRONESIM_* environment ` +
			`variables, then the flags below.`,
		Args: cobra.NoArgs,
		RunE: runSimulation,
	}

	f := c.Flags()
	f.String("capacities", "", "Comma separated initial drone capacities")
	f.String("initial-queues", "", "Comma separated initial queue lengths")
	f.Float64("max-efficiency", 0, "Most packets a drone processes per tick")
	f.Float64("queue-max-size", 0, "Largest queue a drone may hold")
	f.Float64("arrival-rate", 0, "Initial packets arriving per tick")
	f.Uint64("ticks", 0, "Number of ticks to simulate")
	f.Int64("seed", 0, "Seed of the noise, 0 for a clock based seed")
	f.String("error-policy", "", "What to do with an invalid round, abort or skip")
	f.String("output", "", "Recording file name, without the .sqlite3 suffix")
	f.Bool("no-record", false, "Do not write a recording")
	f.String("recorder", "", "Recording backend, sqlite or clickhouse")
	f.String("clickhouse-dsn", "", "ClickHouse server for the clickhouse recorder")
	f.Bool("monitor", false, "Serve the web monitor while running")
	f.Int("monitor-port", 0, "Port of the web monitor, 0 for any port")
	f.Bool("open", false, "Open the web monitor in a browser")
	f.Duration("tick-interval", 0, "Wall time between ticks, e.g. 200ms")
	f.BoolP("verbose", "v", false, "Log every tick to stderr")
	f.Int("every", 10, "Print one row out of every this many ticks")
	f.String("csv", "", "Also write the time series to this CSV file")

	return c
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFiles, err := cmd.Flags().GetStringSlice("env")
	if err != nil {
		return config.Config{}, err
	}

	c, err := config.Load(envFiles...)
	if err != nil {
		return config.Config{}, err
	}

	err = applyFlags(cmd.Flags(), &c)
	if err != nil {
		return config.Config{}, err
	}

	return c, c.Validate()
}

func applyFlags(f *pflag.FlagSet, c *config.Config) error {
	var err error

	f.Visit(func(flag *pflag.Flag) {
		if err != nil {
			return
		}

		err = applyFlag(f, flag.Name, c)
		if err != nil {
			err = fmt.Errorf("--%s: %w", flag.Name, err)
		}
	})

	return err
}

//nolint:gocyclo
func applyFlag(f *pflag.FlagSet, name string, c *config.Config) error {
	var err error

	switch name {
	case "capacities":
		c.Capacities, err = config.ParseFloats(f.Lookup(name).Value.String())
	case "initial-queues":
		c.InitialQueues, err = config.ParseFloats(f.Lookup(name).Value.String())
	case "max-efficiency":
		c.Limits.MaxEfficiency, err = f.GetFloat64(name)
	case "queue-max-size":
		c.Limits.QueueMaxSize, err = f.GetFloat64(name)
	case "arrival-rate":
		c.ArrivalRate, err = f.GetFloat64(name)
	case "ticks":
		c.NumTicks, err = f.GetUint64(name)
	case "seed":
		c.Seed, err = f.GetInt64(name)
	case "error-policy":
		c.ErrorPolicy, err = drone.ParseErrorPolicy(f.Lookup(name).Value.String())
	case "output":
		c.OutputFileName, err = f.GetString(name)
	case "no-record":
		var noRecord bool
		noRecord, err = f.GetBool(name)
		c.Recording = !noRecord
	case "recorder":
		c.RecorderType, err = f.GetString(name)
	case "clickhouse-dsn":
		c.ClickHouseDSN, err = f.GetString(name)
	case "monitor":
		c.Monitor, err = f.GetBool(name)
	case "monitor-port":
		c.MonitorPort, err = f.GetInt(name)
	case "open":
		c.OpenBrowser, err = f.GetBool(name)
	case "tick-interval":
		c.TickInterval, err = f.GetDuration(name)
	case "verbose":
		c.LogTicks, err = f.GetBool(name)
	}

	return err
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if c.OpenBrowser {
		c.Monitor = true
	}

	s, err := simulation.MakeBuilder().WithConfig(c).Build()
	if err != nil {
		return err
	}
	defer s.Terminate()

	if c.OpenBrowser {
		err = s.GetMonitor().OpenBrowser()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot open browser: %v\n", err)
		}
	}

	summary, runErr := s.Run()

	err = printRun(cmd, s, summary)
	if err != nil {
		return err
	}

	return runErr
}

func printRun(
	cmd *cobra.Command,
	s *simulation.Simulation,
	summary simulation.Summary,
) error {
	every, _ := cmd.Flags().GetInt("every")
	samples := s.GetSeries().Samples()
	out := cmd.OutOrStdout()

	err := reporting.TableRenderer{Every: every}.Render(out, samples)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Final queues: %v\n", summary.Queues)
	fmt.Fprintf(out, "Peak average queue: %.2f\n", summary.PeakQueue)

	if s.Seed() != 0 {
		fmt.Fprintf(out, "Seed: %d\n", s.Seed())
	}

	csvPath, _ := cmd.Flags().GetString("csv")
	if csvPath != "" {
		return writeCSV(csvPath, samples)
	}

	return nil
}

func writeCSV(path string, samples []reporting.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = reporting.CSVRenderer{}.Render(f, samples)
	if err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
