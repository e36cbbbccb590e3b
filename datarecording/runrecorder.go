package datarecording

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// RunInfoTable is the table that holds the run properties.
const RunInfoTable = "run_info"

// RunInfo is a property of a simulation run.
type RunInfo struct {
	Property string
	Value    string
}

// RunRecorder records when and how a simulation was run.
type RunRecorder struct {
	recorder DataRecorder
	entries  []RunInfo
}

// NewRunRecorder creates the run_info table on recorder.
func NewRunRecorder(recorder DataRecorder) *RunRecorder {
	recorder.CreateTable(RunInfoTable, RunInfo{})

	return &RunRecorder{recorder: recorder}
}

// Start records the start time and the command line.
func (r *RunRecorder) Start() {
	r.add("Start Time", time.Now().Format(time.RFC3339Nano))
	r.add("Command", strings.Join(os.Args, " "))

	cwd, err := os.Getwd()
	if err == nil {
		r.add("Working Directory", cwd)
	}
}

// Set records an arbitrary property, such as a configuration value.
func (r *RunRecorder) Set(property string, value any) {
	r.add(property, fmt.Sprint(value))
}

// End records the end time and writes all the properties.
func (r *RunRecorder) End() {
	r.add("End Time", time.Now().Format(time.RFC3339Nano))

	for _, entry := range r.entries {
		r.recorder.InsertData(RunInfoTable, entry)
	}

	r.entries = nil

	r.recorder.Flush()
}

func (r *RunRecorder) add(property, value string) {
	r.entries = append(r.entries, RunInfo{Property: property, Value: value})
}
