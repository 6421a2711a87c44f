package pcap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateFile(t *testing.T, opts GenerateOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, opts))
	path := filepath.Join(t.TempDir(), "gen.cap")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	for _, ng := range []bool{false, true} {
		packets, err := ReadFile(generateFile(t, GenerateOptions{Count: 50, Seed: 7, Pcapng: ng}), EthernetHeaderLength)
		require.NoError(t, err)
		require.Len(t, packets, 50)
		for _, p := range packets {
			assert.Equal(t, byte(0x45), p.Content[0])
		}
	}
}

func TestGenerate_SameSeedSamePackets(t *testing.T) {
	a, err := ReadFile(generateFile(t, GenerateOptions{Count: 20, Seed: 1}), 0)
	require.NoError(t, err)
	b, err := ReadFile(generateFile(t, GenerateOptions{Count: 20, Seed: 1}), 0)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
