package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"transitkernel.dev/core/model"
	"transitkernel.dev/core/routing"
)

var stopTimeCmd = &cobra.Command{
	Use:   "stoptime <journey_pattern_point_idx>",
	Short: "Resolves the next valid stop time at a journey pattern point",
	Args:  cobra.ExactArgs(1),
	RunE:  stopTime,
}

var (
	stClockwise      bool
	stReconstructing bool
	stWheelchair     bool
)

func init() {
	stopTimeCmd.Flags().BoolVarP(&stClockwise, "clockwise", "c", true, "Search forward (earliest) rather than backward (tardiest)")
	stopTimeCmd.Flags().BoolVarP(&stReconstructing, "reconstructing", "", false, "Reconstruct a path backward from this point")
	stopTimeCmd.Flags().BoolVarP(&stWheelchair, "wheelchair", "", false, "Require wheelchair accessibility")
}

func stopTime(cmd *cobra.Command, args []string) error {
	var jpp int
	if _, err := fmt.Sscanf(args[0], "%d", &jpp); err != nil {
		return fmt.Errorf("invalid journey pattern point index %q: %w", args[0], err)
	}

	data, err := loadSnapshot()
	if err != nil {
		return err
	}

	now := time.Now()
	dt := model.NewDateTime(int(now.Unix()/86400), int(now.Unix()%86400))

	access := routing.AccessibilityParams{
		Properties: model.AccessibilityProperties{Wheelchair: stWheelchair},
	}

	st, result, found := routing.BestStopTime(data, jpp, dt, access, stClockwise, stReconstructing)
	if !found {
		fmt.Println("no compatible stop time found")
		return nil
	}

	fmt.Printf("vehicle journey %d: day %d, second %d (frequency=%v)\n",
		st.VehicleJourneyIdx, result.Date(), result.Hour(), st.IsFrequency())
	return nil
}
