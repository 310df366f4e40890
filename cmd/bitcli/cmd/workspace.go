package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aikiriao/BitStream/bitstream"
)

// workspaceCmd represents the workspace command.
var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Print the workspace size a stream needs",
	Long: `workspace prints the number of bytes of caller-owned memory a stream needs
to avoid allocating, including the alignment slack.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), bitstream.WorkspaceSize())
	},
}

func init() {
	rootCmd.AddCommand(workspaceCmd)
}
