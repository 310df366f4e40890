package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aikiriao/BitStream/config"
)

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.ChunkWidth = 0
	require.Error(t, cfg.Validate())

	cfg.ChunkWidth = 65
	require.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())
}

func TestParseLayout(t *testing.T) {
	req := require.New(t)

	l, err := config.ParseLayout([]byte(`
fields:
  - name: sync
    width: 12
  - name: flags
    width: 4
  - name: payload
    width: 64
`))
	req.NoError(err)
	req.Len(l.Fields, 3)
	req.Equal(config.Field{Name: "sync", Width: 12}, l.Fields[0])
	req.Equal(80, l.TotalBits())
}

func TestParseLayout_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":     `fields: []`,
		"no name":   "fields:\n  - width: 3\n",
		"duplicate": "fields:\n  - {name: a, width: 1}\n  - {name: a, width: 2}\n",
		"too wide":  "fields:\n  - {name: a, width: 65}\n",
		"negative":  "fields:\n  - {name: a, width: -1}\n",
		"malformed": "fields: {",
	} {
		doc := doc
		t.Run(name, func(t *testing.T) {
			_, err := config.ParseLayout([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestLoadLayout(t *testing.T) {
	req := require.New(t)

	name := filepath.Join(t.TempDir(), "layout.yaml")
	req.NoError(os.WriteFile(name, []byte("fields:\n  - {name: a, width: 3}\n"), 0o600))

	l, err := config.LoadLayout(name)
	req.NoError(err)
	req.Equal(3, l.TotalBits())

	_, err = config.LoadLayout(filepath.Join(t.TempDir(), "missing.yaml"))
	req.ErrorIs(err, os.ErrNotExist)
}
