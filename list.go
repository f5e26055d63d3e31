package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nullmedium/exek/model"
	"github.com/nullmedium/exek/pathcomp"
	"github.com/nullmedium/exek/search"
	"github.com/nullmedium/exek/usage"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Print the ranked applications for a query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

var completeCmd = &cobra.Command{
	Use:   "complete <path>",
	Short: "Print filesystem completions for a path query",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recorded launches with their frecency",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of results (0 for all)")
	rootCmd.AddCommand(listCmd, completeCmd, historyCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")
	results := search.NewEngine(e.apps, e.store).Rank(query)
	if listLimit > 0 && len(results) > listLimit {
		results = results[:listLimit]
	}
	printResults(cmd.OutOrStdout(), results)
	return nil
}

func runComplete(cmd *cobra.Command, args []string) error {
	printCompletions(cmd.OutOrStdout(), pathcomp.New().Complete(args[0]))
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}
	printHistory(cmd.OutOrStdout(), e.store.Entries())
	return nil
}

func printResults(w io.Writer, results []model.ScoredResult) {
	for _, r := range results {
		tag := ""
		if r.App.IsPath() {
			tag = " [path]"
		}
		fmt.Fprintf(w, "%5d %8.2f  %s%s\n", r.Relevance, r.Frecency, r.App.Name, tag)
	}
}

func printCompletions(w io.Writer, comps []model.PathCompletion) {
	for _, c := range comps {
		if c.IsDir {
			fmt.Fprintln(w, c.Display+"/")
			continue
		}
		fmt.Fprintln(w, c.Display)
	}
}

func printHistory(w io.Writer, entries []usage.Entry) {
	for _, en := range entries {
		last := "never"
		if en.Record.LastLaunched != nil {
			last = en.Record.LastLaunched.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%8.2f %5d  %s  %s\n", en.Frecency, en.Record.LaunchCount, last, en.Key)
	}
}
