package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"code.cloudfoundry.org/bytefmt"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aikiriao/BitStream/bitstream"
	"github.com/aikiriao/BitStream/shared"
)

// copyCmd represents the copy command.
var copyCmd = &cobra.Command{
	Use:   "copy <src> <dst>",
	Short: "Re-pack a file through unaligned bit fields and verify the result",
	Long: `copy reads src in fields of --chunk bits and writes them to dst, so that
nearly every field crosses byte boundaries on both sides. dst is replaced
atomically once complete, and the sha256 digests of both files are compared.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		digest, err := runCopy(args[0], args[1], int(cfg.ChunkWidth))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)

	copyCmd.Flags().Uint("chunk", cfg.ChunkWidth, "Field width, in bits, to re-pack data with")
	copyCmd.Flags().Bool("check-space", cfg.CheckSpace, "Check for available disk space before copying")
}

// runCopy copies src to dst chunk bits at a time and returns the digest of
// the copied content.
func runCopy(src, dst string, chunk int) (string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return "", err
	}
	size := uint64(info.Size())

	if cfg.CheckSpace {
		if err := shared.RequireSpace(filepath.Dir(dst), size); err != nil {
			return "", err
		}
	}

	tmp := fmt.Sprintf("%s.tmp", dst)
	if err := repack(src, tmp, size*8, chunk); err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := atomic.ReplaceFile(tmp, dst); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("atomic replace: %w", err)
	}

	digest, err := shared.CompareDigests(src, dst)
	if err != nil {
		return "", err
	}

	logger.Info("file copied",
		zap.String("src", src),
		zap.String("dst", dst),
		zap.String("size", bytefmt.ByteSize(size)),
		zap.Int("chunk", chunk),
	)
	return digest, nil
}

// repack moves exactly total bits from src to dst in fields of chunk bits.
// The last field is shortened so no padding is read or written.
func repack(src, dst string, total uint64, chunk int) error {
	r, err := bitstream.Open(src, "rb", streamOptions()...)
	if err != nil {
		return err
	}
	defer r.Close()

	w, err := bitstream.Open(dst, "wb", streamOptions()...)
	if err != nil {
		return err
	}

	for total > 0 {
		width := chunk
		if total < uint64(chunk) {
			width = int(total)
		}

		v, err := r.GetBits(width)
		if err != nil {
			w.Close()
			return err
		}
		if err := w.PutBits(width, v); err != nil {
			w.Close()
			return err
		}
		total -= uint64(width)
	}

	return w.Close()
}
