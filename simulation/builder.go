package simulation

import (
	"fmt"
	"log"
	"time"

	"github.com/rs/xid"

	"github.com/sarchlab/dronesim/config"
	"github.com/sarchlab/dronesim/datarecording"
	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/monitoring"
	"github.com/sarchlab/dronesim/reporting"
	"github.com/sarchlab/dronesim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	config         config.Config
	monitorOn      bool
	recordingOn    bool
	outputFileName string
	rand           drone.RandSource
	sinks          []reporting.Sink
}

// MakeBuilder creates a builder for the default configuration, with
// recording on and monitoring off.
func MakeBuilder() Builder {
	return Builder{}.WithConfig(config.Default())
}

// WithConfig sets all the parameters of the simulation, including whether
// it records and whether it is monitored.
func (b Builder) WithConfig(c config.Config) Builder {
	b.config = c
	b.monitorOn = c.Monitor
	b.recordingOn = c.Recording
	b.outputFileName = c.OutputFileName

	return b
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithoutRecording keeps the output of the simulation in memory only.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithRandSource replaces the seeded source that drives the noise.
func (b Builder) WithRandSource(src drone.RandSource) Builder {
	b.rand = src
	return b
}

// WithSink adds a sink that receives every sample of the run.
func (b Builder) WithSink(sink reporting.Sink) Builder {
	b.sinks = append(b.sinks[:len(b.sinks):len(b.sinks)], sink)
	return b
}

// Build builds the simulation. It fails on an invalid configuration or when
// the recorder cannot be opened.
func (b Builder) Build() (*Simulation, error) {
	err := b.config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &Simulation{
		id:            xid.New().String(),
		config:        b.config,
		compNameIndex: make(map[string]int),
		series:        reporting.NewSeries(),
	}

	if b.reproducible() {
		sim.UseSequentialIDGenerator()
	} else {
		sim.UseParallelIDGenerator()
	}

	s.engine = sim.NewSerialEngine()

	err = s.buildRecording(b)
	if err != nil {
		return nil, err
	}

	s.buildFleet(b)

	if b.monitorOn {
		s.buildMonitor()
	}

	return s, nil
}

// reproducible tells if the run is driven by a fixed seed or a given rand
// source, in which case the event IDs are made to repeat as well.
func (b Builder) reproducible() bool {
	return b.rand != nil || b.config.Seed != 0
}

func (s *Simulation) buildRecording(b Builder) error {
	if !b.recordingOn {
		return nil
	}

	outputPath := b.outputFileName
	if outputPath == "" {
		outputPath = "dronesim_" + s.id
	}

	recorder, err := datarecording.NewWithConfig(datarecording.RecorderConfig{
		Type:    b.config.RecorderType,
		Path:    outputPath,
		ConnStr: b.config.ClickHouseDSN,
	})
	if err != nil {
		return fmt.Errorf("opening recorder: %w", err)
	}

	s.dataRecorder = recorder
	s.runRecorder = datarecording.NewRunRecorder(s.dataRecorder)

	return nil
}

func (s *Simulation) buildFleet(b Builder) {
	src := b.rand
	if src == nil {
		s.seed = b.config.Seed
		if s.seed == 0 {
			s.seed = time.Now().UnixNano()
		}

		src = drone.NewRandSource(s.seed)
	}

	s.fleet = drone.MakeBuilder().
		WithEngine(s.engine).
		WithCapacities(b.config.Capacities).
		WithInitialQueues(b.config.InitialQueues).
		WithLimits(b.config.Limits).
		WithArrivalRate(b.config.ArrivalRate).
		WithNumTicks(b.config.NumTicks).
		WithNoise(b.config.Noise).
		WithErrorPolicy(b.config.ErrorPolicy).
		WithRandSource(src).
		Build("Fleet")
	s.RegisterComponent(s.fleet)

	sinks := reporting.MultiSink{s.series}
	sinks = append(sinks, b.sinks...)

	if s.dataRecorder != nil {
		sinks = append(sinks, reporting.NewDBSink(s.dataRecorder))
		s.fleet.AcceptHook(reporting.NewStateTracer(s.dataRecorder))
	}

	s.fleet.AcceptHook(reporting.NewSinkHook(sinks))

	if b.config.LogTicks {
		s.fleet.AcceptHook(drone.NewTickLogger(log.Default()))
	}
}

func (s *Simulation) buildMonitor() {
	s.monitor = monitoring.NewMonitor().
		WithPortNumber(s.config.MonitorPort)
	s.monitor.RegisterEngine(s.engine)
	s.monitor.RegisterFleet(s.fleet)
	s.monitor.RegisterSeries(s.series)
	s.monitor.RegisterComponent(s.fleet)

	s.progressBar = s.monitor.CreateProgressBar(
		s.fleet.Name(), s.config.NumTicks)
	s.fleet.AcceptHook(s.progressBar)

	if s.config.TickInterval > 0 {
		s.fleet.AcceptHook(&monitoring.Pacer{Interval: s.config.TickInterval})
	}

	s.monitor.StartServer()
}
