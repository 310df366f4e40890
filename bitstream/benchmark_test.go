package bitstream_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aikiriao/BitStream/persistence"
)

func BenchmarkPutBits(b *testing.B) {
	for _, width := range []int{1, 13, 64} {
		width := width
		b.Run(fmt.Sprintf("width-%d", width), func(b *testing.B) {
			s, err := Open("bench.bin", "w", fileOpener(persistence.NewMemFile(nil)))
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := s.PutBits(width, uint64(i)); err != nil {
					b.Fatal(err)
				}
			}
			b.StopTimer()
			require.NoError(b, s.Close())
		})
	}
}

func BenchmarkGetBits(b *testing.B) {
	data := make([]byte, 1<<16)
	for _, width := range []int{1, 13, 64} {
		width := width
		b.Run(fmt.Sprintf("width-%d", width), func(b *testing.B) {
			s, err := Open("bench.bin", "r", fileOpener(persistence.NewMemFile(data)))
			require.NoError(b, err)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.GetBits(width); err != nil {
					if _, err := s.Seek(0, io.SeekStart); err != nil {
						b.Fatal(err)
					}
				}
			}
			b.StopTimer()
			require.NoError(b, s.Close())
		})
	}
}
