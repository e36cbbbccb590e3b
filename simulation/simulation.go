// Package simulation wires an engine, a fleet, its output series, the
// recorder and the monitor into a runnable drone simulation.
package simulation

import (
	"fmt"
	"os"

	"github.com/sarchlab/dronesim/config"
	"github.com/sarchlab/dronesim/datarecording"
	"github.com/sarchlab/dronesim/drone"
	"github.com/sarchlab/dronesim/monitoring"
	"github.com/sarchlab/dronesim/reporting"
	"github.com/sarchlab/dronesim/sim"
)

// A Simulation owns everything a run needs.
type Simulation struct {
	id     string
	config config.Config
	seed   int64

	engine *sim.SerialEngine
	fleet  *drone.Fleet
	series *reporting.Series

	dataRecorder datarecording.DataRecorder
	runRecorder  *datarecording.RunRecorder
	monitor      *monitoring.Monitor
	progressBar  *monitoring.ProgressBar

	components    []sim.Component
	compNameIndex map[string]int
}

// Summary is the outcome of a run.
type Summary struct {
	reporting.Totals

	// Queues and Capacities are the state of the fleet after the last tick.
	Queues     []float64
	Capacities []float64
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Seed returns the seed of the noise. It is zero when the builder was given
// a rand source.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// GetFleet returns the simulated fleet.
func (s *Simulation) GetFleet() *drone.Fleet {
	return s.fleet
}

// GetSeries returns the in-memory output of the run.
func (s *Simulation) GetSeries() *reporting.Series {
	return s.series
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// when recording is off.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation. It is nil when
// monitoring is off.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// RegisterComponent registers a component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Component) {
	compName := c.Name()
	if _, found := s.compNameIndex[compName]; found {
		panic("component " + compName + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[compName] = len(s.components) - 1
}

// GetComponentByName returns the component with the given name, or nil.
func (s *Simulation) GetComponentByName(name string) sim.Component {
	i, found := s.compNameIndex[name]
	if !found {
		return nil
	}

	return s.components[i]
}

// Components returns all the registered components.
func (s *Simulation) Components() []sim.Component {
	return append([]sim.Component(nil), s.components...)
}

// Run ticks the fleet until it has run all its ticks or is aborted. The
// summary covers the ticks that ran even when an error is returned.
func (s *Simulation) Run() (Summary, error) {
	if s.runRecorder != nil {
		s.runRecorder.Start()
		s.recordConfig()
	}

	s.fleet.TickNow()
	runErr := s.engine.Run()
	s.engine.Finished()

	if s.monitor != nil {
		s.monitor.CompleteProgressBar(s.progressBar)
	}

	state := s.fleet.Snapshot()
	summary := Summary{
		Totals:     s.series.Totals(),
		Queues:     state.Queues,
		Capacities: state.Capacities,
	}

	if s.runRecorder != nil {
		s.runRecorder.Set("Ticks Run", summary.Ticks)
		s.runRecorder.Set("Skipped Ticks", summary.SkippedTicks)
		s.runRecorder.End()
	}

	if runErr != nil {
		return summary, runErr
	}

	if err := s.fleet.Err(); err != nil {
		return summary, fmt.Errorf("fleet aborted at tick %d: %w",
			state.Tick, err)
	}

	return summary, nil
}

func (s *Simulation) recordConfig() {
	c := s.config

	s.runRecorder.Set("Simulation ID", s.id)
	s.runRecorder.Set("Seed", s.seed)
	s.runRecorder.Set("Capacities", c.Capacities)
	s.runRecorder.Set("Initial Queues", c.InitialQueues)
	s.runRecorder.Set("Max Efficiency", c.Limits.MaxEfficiency)
	s.runRecorder.Set("Queue Max Size", c.Limits.QueueMaxSize)
	s.runRecorder.Set("Arrival Rate", c.ArrivalRate)
	s.runRecorder.Set("Num Ticks", c.NumTicks)
	s.runRecorder.Set("Noise", fmt.Sprintf("%+v", c.Noise))
	s.runRecorder.Set("Error Policy", c.ErrorPolicy)
}

// Terminate flushes the recording and stops the monitor.
func (s *Simulation) Terminate() {
	if s.monitor != nil {
		err := s.monitor.StopServer()
		if err != nil {
			fmt.Fprintf(os.Stderr, "stopping monitor: %v\n", err)
		}
	}

	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
