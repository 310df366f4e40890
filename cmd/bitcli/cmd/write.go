package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aikiriao/BitStream/bitstream"
)

// writeCmd represents the write command.
var writeCmd = &cobra.Command{
	Use:   "write <file> <width:value>...",
	Short: "Write unsigned fields to a file, most-significant bit first",
	Long: `write truncates the file and writes each field in order. A field is given as
width:value, where width is 0 to 64 and value is decimal or 0x, 0o, 0b prefixed.
Only the low width bits of value are written. The last byte is zero padded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields, err := parseFields(args[1:])
		if err != nil {
			return err
		}
		return runWrite(args[0], fields)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
}

type fieldValue struct {
	width int
	value uint64
}

func parseFields(args []string) ([]fieldValue, error) {
	fields := make([]fieldValue, 0, len(args))
	for _, arg := range args {
		w, v, ok := strings.Cut(arg, ":")
		if !ok {
			return nil, fmt.Errorf("invalid field %q; expected: width:value", arg)
		}
		width, err := strconv.Atoi(w)
		if err != nil || width < 0 || width > bitstream.MaxWidth {
			return nil, fmt.Errorf("invalid field %q width; expected: [0, %d]", arg, bitstream.MaxWidth)
		}
		value, err := strconv.ParseUint(v, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid field %q value: %w", arg, err)
		}
		fields = append(fields, fieldValue{width: width, value: value})
	}
	return fields, nil
}

func runWrite(name string, fields []fieldValue) error {
	s, err := bitstream.Open(name, "wb", streamOptions()...)
	if err != nil {
		return err
	}

	var total uint64
	for _, f := range fields {
		if err := s.PutBits(f.width, f.value); err != nil {
			s.Close()
			return err
		}
		total += uint64(f.width)
	}
	if err := s.Close(); err != nil {
		return err
	}

	logger.Info("fields written",
		zap.String("file", name),
		zap.Int("fields", len(fields)),
		zap.Uint64("bits", total),
		zap.String("size", bytefmt.ByteSize((total+7)/8)),
	)
	return nil
}
