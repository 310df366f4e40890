package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/olekukonko/tablewriter"

	"github.com/aikiriao/BitStream/bitstream"
)

type testCase struct {
	width int
	size  uint64
}

func main() {
	dir := flag.String("dir", os.TempDir(), "directory to write the bench files to")
	size := flag.Uint64("size", 1<<20, "amount of data per test, in bytes")
	single := flag.Bool("single", false, "whether to execute a single test instead of the complete set")
	flag.Parse()

	log.Printf("bench config: dir: %v, size: %v", *dir, bytefmt.ByteSize(*size))

	cases := genTestCases(*size, *single)
	data := make([][]string, 0, len(cases))
	for i, tc := range cases {
		log.Printf("test %v/%v starting...", i+1, len(cases))
		tStart := time.Now()

		name := filepath.Join(*dir, fmt.Sprintf("bench-%d.bin", tc.width))
		values := genValues(tc)

		t := time.Now()
		if err := write(name, tc.width, values); err != nil {
			log.Fatalf("write: %v", err)
		}
		eWrite := time.Since(t)

		t = time.Now()
		if err := read(name, tc.width, values); err != nil {
			log.Fatalf("read: %v", err)
		}
		eRead := time.Since(t)

		if err := os.Remove(name); err != nil {
			log.Fatalf("cleanup: %v", err)
		}

		log.Printf("test %v/%v completed, %v", i+1, len(cases), time.Since(tStart))

		data = append(data, []string{
			strconv.Itoa(tc.width),
			bytefmt.ByteSize(tc.size),
			eWrite.Round(time.Millisecond).String(),
			rate(tc.size, eWrite),
			eRead.Round(time.Millisecond).String(),
			rate(tc.size, eRead),
		})
	}

	header := []string{"width", "size", "write", "write/s", "read", "read/s"}
	report(*dir, header, data)
}

func report(dir string, header []string, data [][]string) {
	fmt.Printf("\n\nBENCHMARKS: dir=%v\n", dir)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
}

func genTestCases(size uint64, single bool) []testCase {
	if single {
		return []testCase{{width: 13, size: size}}
	}

	cases := make([]testCase, 0)
	for _, w := range []int{1, 3, 7, 8, 13, 16, 31, 32, 57, 64} {
		cases = append(cases, testCase{width: w, size: size})
	}
	return cases
}

func genValues(tc testCase) []uint64 {
	n := tc.size * 8 / uint64(tc.width)
	values := make([]uint64, n)
	rng := rand.New(rand.NewSource(int64(tc.width)))
	for i := range values {
		v := rng.Uint64()
		if tc.width < 64 {
			v &= 1<<uint(tc.width) - 1
		}
		values[i] = v
	}
	return values
}

func write(name string, width int, values []uint64) error {
	s, err := bitstream.Open(name, "wb")
	if err != nil {
		return err
	}
	for _, v := range values {
		if err := s.PutBits(width, v); err != nil {
			s.Close()
			return err
		}
	}
	return s.Close()
}

func read(name string, width int, values []uint64) error {
	s, err := bitstream.Open(name, "rb")
	if err != nil {
		return err
	}
	defer s.Close()

	for i, expected := range values {
		v, err := s.GetBits(width)
		if err != nil {
			return err
		}
		if v != expected {
			return errors.New("value #" + strconv.Itoa(i) + " mismatch")
		}
	}
	return nil
}

func rate(size uint64, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return bytefmt.ByteSize(uint64(float64(size)/d.Seconds())) + "/s"
}
