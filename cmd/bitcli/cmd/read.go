package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/aikiriao/BitStream/bitstream"
	"github.com/aikiriao/BitStream/config"
)

// readCmd represents the read command.
var readCmd = &cobra.Command{
	Use:   "read <file> [width...]",
	Short: "Read unsigned fields from a file and print them as a table",
	Long: `read reads fields of the given widths in order, most-significant bit first.
Instead of widths, a YAML layout naming each field may be given with --layout:

  fields:
    - name: sync
      width: 12
    - name: flags
      width: 4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layout, err := readLayout(args[1:])
		if err != nil {
			return err
		}
		return runRead(cmd.OutOrStdout(), args[0], layout)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().String("layout", "", "Path to a YAML field layout")
}

// readLayout builds the layout from the --layout file or from the widths
// given on the command line, naming fields by position.
func readLayout(widths []string) (*config.Layout, error) {
	if cfg.Layout != "" {
		if len(widths) > 0 {
			return nil, errors.New("field widths and --layout are mutually exclusive")
		}
		return config.LoadLayout(cfg.Layout)
	}

	l := &config.Layout{}
	for i, w := range widths {
		width, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("invalid width %q: %w", w, err)
		}
		l.Fields = append(l.Fields, config.Field{Name: "#" + strconv.Itoa(i), Width: width})
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func runRead(out io.Writer, name string, layout *config.Layout) error {
	s, err := bitstream.Open(name, "rb", streamOptions()...)
	if err != nil {
		return err
	}
	defer s.Close()

	data := make([][]string, 0, len(layout.Fields))
	for _, f := range layout.Fields {
		v, err := s.GetBits(f.Width)
		if err != nil {
			return fmt.Errorf("field `%s`: %w", f.Name, err)
		}
		data = append(data, []string{
			f.Name,
			strconv.Itoa(f.Width),
			fmt.Sprintf("0x%0*x", (f.Width+3)/4, v),
			strconv.FormatUint(v, 10),
		})
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"field", "width", "hex", "value"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
	return nil
}
