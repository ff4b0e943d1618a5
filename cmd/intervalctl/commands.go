package main

import (
	"fmt"
	"strconv"

	"github.com/henderiw/unioninterval/pkg/interval"
	"github.com/henderiw/unioninterval/pkg/iterint"
	"github.com/henderiw/unioninterval/pkg/windowtable"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/labels"
)

func newFoldCommand(use, short string, fold func(...interval.Set[float64]) interval.Set[float64]) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SET...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), fold(sets...))
			return nil
		},
	}
}

func newBinaryCommand(use, short string, op func(a, b interval.Set[float64]) interval.Set[float64]) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SET SET",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), op(sets[0], sets[1]))
			return nil
		},
	}
}

func newComplementCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complement SET",
		Short: "points not in the set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sets[0].Complement())
			return nil
		},
	}
}

func newMeasureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "measure SET",
		Short: "total length of a bounded set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args)
			if err != nil {
				return err
			}
			m, err := interval.MeasureNumber(sets[0], 0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strconv.FormatFloat(m, 'g', -1, 64))
			return nil
		},
	}
}

func newContainsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "contains SET VALUE|SET",
		Short: "report whether a value or a set lies in the set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args[:1])
			if err != nil {
				return err
			}
			if v, err := parseFloat(args[1]); err == nil {
				fmt.Fprintln(cmd.OutOrStdout(), sets[0].Contains(v))
				return nil
			}
			o, err := parseSets(args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sets[0].ContainsSet(o[0]))
			return nil
		},
	}
}

func newEnumCommand() *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "enum SET",
		Short: "list the integers in the set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := parseSets(args)
			if err != nil {
				return err
			}
			r := iterint.New(sets[0])
			if reverse {
				r = r.Reversed()
			}
			// a set unbounded on either side has no end to stop at
			values, err := r.Values()
			if err != nil {
				return err
			}
			for _, v := range values {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&reverse, "reverse", false, "list from the largest integer down")
	return cmd
}

type windowsOptions struct {
	at       string
	selector string
	free     string
}

func newWindowsCommand(ro *rootOptions) *cobra.Command {
	o := &windowsOptions{}
	cmd := &cobra.Command{
		Use:   "windows FILE",
		Short: "query a window table config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := windowtable.LoadFile(args[0], reals, parseFloat)
			if err != nil {
				return err
			}
			t, err := windowtable.NewTable(entries, nil, windowtable.WithLogger(ro.logger()))
			if err != nil {
				return err
			}
			selector := labels.Everything()
			if o.selector != "" {
				if selector, err = labels.Parse(o.selector); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			switch {
			case o.at != "":
				v, err := parseFloat(o.at)
				if err != nil {
					return err
				}
				for _, e := range t.Lookup(v) {
					if selector.Matches(e.Labels()) {
						fmt.Fprintln(out, e.Name())
					}
				}
			case o.free != "":
				bound, err := parseSets([]string{o.free})
				if err != nil {
					return err
				}
				fmt.Fprintln(out, t.FindFree(bound[0], selector))
			default:
				for _, e := range t.GetByLabel(selector) {
					fmt.Fprintf(out, "%s\t%s\n", e.Name(), e.Window())
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&o.at, "at", "", "list the windows containing this value")
	cmd.Flags().StringVar(&o.selector, "selector", "", "label selector to filter windows")
	cmd.Flags().StringVar(&o.free, "free", "", "print the part of this set no selected window covers")
	return cmd
}
