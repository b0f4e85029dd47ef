// Package report renders an optimization result as a plain-text summary
// suitable for terminals and log files.
package report

import (
	"fmt"
	"io"

	"github.com/piwi3910/rodcut/internal/model"
)

const separator = "----------------------------------------------------------------------"

// Write prints the trial's recipe, the per-length production totals with an
// adequacy check against the job's demands, and the rod and waste totals.
func Write(w io.Writer, job model.Job, trial model.Trial) error {
	if _, err := fmt.Fprintln(w, separator); err != nil {
		return err
	}
	fmt.Fprintln(w)

	for _, ln := range trial.Recipe.Lines {
		fmt.Fprintf(w, "Pattern %s x %d\n", ln.Pattern, ln.Count)
		fmt.Fprintf(w, "Quantities for length:  %d: %d, %d: %d, %d: %d\n",
			job.PieceLengths[0], ln.Count*ln.Pattern.Counts[0],
			job.PieceLengths[1], ln.Count*ln.Pattern.Counts[1],
			job.PieceLengths[2], ln.Count*ln.Pattern.Counts[2])
	}

	produced := trial.Recipe.Produced()
	demands := job.Demands(trial.BatchSize)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check solution adequacy:")
	for i := 0; i < model.PieceTypes; i++ {
		status := "ok"
		if produced[i] < demands[i] {
			status = "SHORT"
		}
		fmt.Fprintf(w, "Length %d total quantity: %d (need %d, %s)\n",
			job.PieceLengths[i], produced[i], demands[i], status)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total rods needed : %d\n", trial.Recipe.Rods())
	fmt.Fprintf(w, "Batch size : %d\n", trial.BatchSize)
	fmt.Fprintf(w, "Total waste: %d\n", trial.Waste)
	_, err := fmt.Fprintln(w, separator)
	return err
}
