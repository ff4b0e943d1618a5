package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/henderiw/unioninterval/pkg/interval"
	"github.com/spf13/cobra"
)

var reals = interval.Ordered[float64]()

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

func parseSets(args []string) ([]interval.Set[float64], error) {
	sets := make([]interval.Set[float64], 0, len(args))
	for _, a := range args {
		s, err := reals.Parse(a, parseFloat)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", a, err)
		}
		sets = append(sets, s)
	}
	return sets, nil
}

type rootOptions struct {
	verbosity int
}

func (o *rootOptions) logger() logr.Logger {
	return funcr.New(func(prefix, args string) {
		fmt.Fprintln(os.Stderr, prefix, args)
	}, funcr.Options{Verbosity: o.verbosity})
}

func newRootCommand() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "intervalctl",
		Short:         "evaluate unions of intervals",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().IntVarP(&o.verbosity, "verbosity", "v", 0, "log verbosity")

	root.AddCommand(newFoldCommand("union", "union of all sets", interval.Union[float64]))
	root.AddCommand(newFoldCommand("intersect", "intersection of all sets", interval.Intersect[float64]))
	root.AddCommand(newBinaryCommand("difference", "first set minus the second", interval.Set[float64].Difference))
	root.AddCommand(newBinaryCommand("symdiff", "points in exactly one of the two sets", interval.Set[float64].SymmetricDifference))
	root.AddCommand(newComplementCommand())
	root.AddCommand(newMeasureCommand())
	root.AddCommand(newContainsCommand())
	root.AddCommand(newEnumCommand())
	root.AddCommand(newWindowsCommand(o))
	return root
}
