package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aikiriao/BitStream/bitstream"
)

// demoCmd represents the demo command.
var demoCmd = &cobra.Command{
	Use:   "demo <file>",
	Short: "Write a sample bit sequence and read it back",
	Long: `demo writes the bits 1111 0000 one by one followed by the 16 bit field 0x55AA
into the given file, then reads it back as two 4 bit fields followed by single bits
until the end of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(out io.Writer, name string) error {
	fmt.Fprintf(out, "Work Size: %d\n", bitstream.WorkspaceSize())

	w, err := bitstream.Open(name, "wb", streamOptions()...)
	if err != nil {
		return err
	}
	for _, bit := range []uint8{1, 1, 1, 1, 0, 0, 0, 0} {
		if err := w.PutBit(bit); err != nil {
			w.Close()
			return err
		}
	}
	if err := w.PutBits(16, 0x55AA); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	r, err := bitstream.Open(name, "rb", streamOptions()...)
	if err != nil {
		return err
	}
	defer r.Close()

	for i := 0; i < 2; i++ {
		v, err := r.GetBits(4)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "0x%x\n", v)
	}

	for {
		bit, err := r.GetBit()
		if errors.Is(err, bitstream.ErrEndOfStream) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d\n", bit)
	}
}
