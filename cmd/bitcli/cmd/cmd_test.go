package cmd

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/aikiriao/BitStream/shared"
)

// execute runs the root command with fresh flag values and a config file in
// a temporary directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("log-level: error\n"), shared.OwnerReadWrite))

	out := bytes.NewBuffer(nil)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestDemo(t *testing.T) {
	req := require.New(t)

	out, err := execute(t, "demo", filepath.Join(t.TempDir(), "test.bin"))
	req.NoError(err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	req.Equal([]string{"Work Size: 18", "0xf", "0x0"}, lines[:3])
	req.Equal(strings.Split("0101010110101010", ""), lines[3:])
}

func TestWriteRead(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "fields.bin")
	_, err := execute(t, "write", name, "4:0xF", "12:0xA5", "3:0b101", "1:1")
	req.NoError(err)

	data, err := os.ReadFile(name)
	req.NoError(err)
	req.Equal([]byte{0xF0, 0xA5, 0xB0}, data)

	out, err := execute(t, "read", name, "4", "12", "3", "1")
	req.NoError(err)
	req.Contains(out, "0xf")
	req.Contains(out, "0x0a5")
	req.Contains(out, "165")
	req.Contains(out, "0x5")
}

func TestRead_Layout(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	name := filepath.Join(dir, "fields.bin")
	_, err := execute(t, "write", name, "12:0xFFF", "4:0x9")
	req.NoError(err)

	layout := filepath.Join(dir, "layout.yaml")
	req.NoError(os.WriteFile(layout, []byte(`
fields:
  - name: sync
    width: 12
  - name: flags
    width: 4
`), shared.OwnerReadWrite))

	out, err := execute(t, "read", "--layout", layout, name)
	req.NoError(err)
	req.Contains(out, "sync")
	req.Contains(out, "0xfff")
	req.Contains(out, "flags")
	req.Contains(out, "0x9")

	_, err = execute(t, "read", "--layout", layout, name, "3")
	req.Error(err)
}

func TestRead_EndOfStream(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "short.bin")
	_, err := execute(t, "write", name, "8:0x01")
	req.NoError(err)

	_, err = execute(t, "read", name, "8", "8")
	req.ErrorContains(err, "end of stream")
}

func TestWrite_InvalidField(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "fields.bin")
	for _, field := range []string{"8", "65:1", "-1:0", "x:1", "8:zz"} {
		_, err := execute(t, "write", name, field)
		req.Error(err, field)
	}
}

func TestDump(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")
	req.NoError(os.WriteFile(a, []byte{0xF0, 0x55}, shared.OwnerReadWrite))
	req.NoError(os.WriteFile(b, nil, shared.OwnerReadWrite))

	out, err := execute(t, "dump", a, b)
	req.NoError(err)
	req.Contains(out, "11110000 01010101\n")
	req.Less(strings.Index(out, "a.bin"), strings.Index(out, "b.bin"))

	_, err = execute(t, "dump", filepath.Join(dir, "missing.bin"))
	req.Error(err)
}

func TestCopy(t *testing.T) {
	req := require.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	data := make([]byte, 1021)
	rand.New(rand.NewSource(3)).Read(data)
	req.NoError(os.WriteFile(src, data, shared.OwnerReadWrite))

	out, err := execute(t, "copy", "--chunk", "13", "--check-space=false", src, dst)
	req.NoError(err)

	copied, err := os.ReadFile(dst)
	req.NoError(err)
	req.Equal(data, copied)

	digest, err := shared.FileDigest(src)
	req.NoError(err)
	req.Equal(digest, strings.TrimSpace(out))

	_, err = os.Stat(dst + ".tmp")
	req.ErrorIs(err, os.ErrNotExist)
}

func TestWorkspaceFlag(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "fields.bin")
	_, err := execute(t, "--workspace", "write", name, "3:0b111")
	req.NoError(err)
	req.True(cfg.Workspace)

	out, err := execute(t, "read", name, "3")
	req.NoError(err)
	req.False(cfg.Workspace)
	req.Contains(out, "0x7")
}

func TestWorkspaceCmd(t *testing.T) {
	out, err := execute(t, "workspace")
	require.NoError(t, err)
	require.Equal(t, "18\n", out)
}

func TestInvalidConfig(t *testing.T) {
	req := require.New(t)

	_, err := execute(t, "--log-level", "loud", "workspace")
	req.Error(err)

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "workspace")
	req.Error(err)
}
