package cmd

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/sarchlab/dronesim/config"
	"github.com/sarchlab/dronesim/distribution"
)

func newDistributeCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "distribute",
		Short: "Run a single distribution round and print the result.",
		Example: `  dronesim distribute --capacities 10,15,20,12,8 --arrivals 100
  dronesim distribute --capacities 10,5 --queues 20,0 --arrivals 40`,
		Args: cobra.NoArgs,
		RunE: distribute,
	}

	limits := distribution.DefaultLimits()

	f := c.Flags()
	f.String("capacities", "", "Comma separated drone capacities")
	f.String("queues", "", "Comma separated queue lengths, all zero if omitted")
	f.Float64("arrivals", 0, "Packets arriving in this round")
	f.Float64("max-efficiency", limits.MaxEfficiency,
		"Most packets a drone processes per tick")
	f.Float64("queue-max-size", limits.QueueMaxSize,
		"Largest queue a drone may hold")

	_ = c.MarkFlagRequired("capacities")

	return c
}

func distribute(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()

	capacitiesStr, _ := f.GetString("capacities")
	queuesStr, _ := f.GetString("queues")
	arrivals, _ := f.GetFloat64("arrivals")
	maxEfficiency, _ := f.GetFloat64("max-efficiency")
	queueMaxSize, _ := f.GetFloat64("queue-max-size")

	capacities, err := config.ParseFloats(capacitiesStr)
	if err != nil {
		return fmt.Errorf("--capacities: %w", err)
	}

	queues, err := config.ParseFloats(queuesStr)
	if err != nil {
		return fmt.Errorf("--queues: %w", err)
	}

	if queues == nil {
		queues = make([]float64, len(capacities))
	}

	limits := distribution.Limits{
		MaxEfficiency: maxEfficiency,
		QueueMaxSize:  queueMaxSize,
	}

	result, err := distribution.Distribute(capacities, arrivals, queues, limits)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{
		"Drone", "Capacity", "Queue Before", "Processed", "Queue After",
	})

	for _, i := range distribution.PriorityOrder(capacities) {
		table.Append([]string{
			strconv.Itoa(i),
			formatAmount(capacities[i]),
			formatAmount(queues[i]),
			formatAmount(result.Processed[i]),
			formatAmount(result.Queues[i]),
		})
	}

	table.SetFooter([]string{
		"", "", "", "Lost",
		formatAmount(distribution.Loss(arrivals, queues, result)),
	})
	table.Render()

	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
