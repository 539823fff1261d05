package cmd

import (
	"fmt"

	"github.com/spigell/skillmatch/internal/skills"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <token>...",
	Short: "Tell whether each token looks like a technical skill",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		classifier := skills.NewClassifier(nil)
		for _, token := range args {
			fmt.Printf("%s\t%t\n", token, classifier.LooksLikeTech(token))
		}
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
