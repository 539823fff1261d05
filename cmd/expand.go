package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand <skill>...",
	Short: "Print skills related to the given ones through the skill graph",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, config := setup()

		depth, _ := cmd.Flags().GetInt("depth")
		for _, s := range buildGraph(config).ExpandAll(args, depth) {
			fmt.Println(s)
		}
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)

	expandCmd.Flags().Int("depth", 2, "maximum number of hops")
}
