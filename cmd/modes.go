package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"lotuslamp/internal/lamp"
	"lotuslamp/internal/modes"
)

var animCmd = &cobra.Command{
	Use:   "anim NUMBER",
	Short: "Set an animation mode by raw number",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("mode %q is not a number", args[0])
		}
		return withSession(func(ctx context.Context, s *lamp.Session) error {
			if err := s.SetAnimation(ctx, mode); err != nil {
				return err
			}
			fmt.Printf("Mode %d: %s\n", mode, modes.Name(mode))
			return nil
		})
	},
}

var modesCmd = &cobra.Command{
	Use:   "modes [CATEGORY]",
	Short: "List animation modes, optionally for one category",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			for _, cat := range modes.Categories() {
				nums, _ := modes.CategoryModes(cat)
				printModeTable(cat, nums)
				fmt.Println()
			}
			return nil
		}
		nums, err := modes.CategoryModes(args[0])
		if err != nil {
			return err
		}
		printModeTable(args[0], nums)
		return nil
	},
}

var modesSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Search mode names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")
		results := modes.Search(query)
		if len(results) == 0 {
			return fmt.Errorf("no mode matching %q", query)
		}
		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		for _, m := range results {
			fmt.Fprintf(w, "%d\t%s\t%s\n", m.Mode, m.Name, m.Category)
		}
		return w.Flush()
	},
}

var modesCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List mode categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, cat := range modes.Categories() {
			nums, _ := modes.CategoryModes(cat)
			fmt.Printf("%s (%d modes)\n", cat, len(nums))
		}
	},
}

func printModeTable(category string, nums []int) {
	fmt.Printf("%s:\n", category)
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, n := range nums {
		fmt.Fprintf(w, "  %d\t%s\n", n, modes.Name(n))
	}
	w.Flush()
}

func init() {
	modesCmd.AddCommand(modesSearchCmd, modesCategoriesCmd)
	rootCmd.AddCommand(animCmd, modesCmd)
}
