package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aikiriao/BitStream/bitstream"
)

const dumpBytesPerLine = 8

// dumpCmd represents the dump command.
var dumpCmd = &cobra.Command{
	Use:   "dump <file>...",
	Short: "Print the bits of files",
	Long: `dump reads each file bit by bit until its end and prints the bits grouped by
byte. Files are read concurrently, each through its own stream.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDump(cmd.OutOrStdout(), args)
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(out io.Writer, names []string) error {
	dumps := make([]string, len(names))

	var eg errgroup.Group
	for i, name := range names {
		i, name := i, name
		eg.Go(func() error {
			d, err := dumpFile(name)
			if err != nil {
				return fmt.Errorf("dump %v: %w", name, err)
			}
			dumps[i] = d
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, d := range dumps {
		fmt.Fprint(out, d)
	}
	return nil
}

// dumpFile renders a file as groups of 8 bits.
func dumpFile(name string) (string, error) {
	info, err := os.Stat(name)
	if err != nil {
		return "", err
	}

	s, err := bitstream.Open(name, "rb", streamOptions()...)
	if err != nil {
		return "", err
	}
	defer s.Close()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", name, bytefmt.ByteSize(uint64(info.Size())))

	var n int
	for {
		bit, err := s.GetBit()
		if errors.Is(err, bitstream.ErrEndOfStream) {
			break
		}
		if err != nil {
			return "", err
		}

		if n%8 == 0 {
			switch {
			case n == 0:
			case n%(8*dumpBytesPerLine) == 0:
				sb.WriteByte('\n')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('0' + bit)
		n++
	}
	if n > 0 {
		sb.WriteByte('\n')
	}

	logger.Debug("file dumped", zap.String("file", name), zap.Int("bits", n))
	return sb.String(), nil
}
