package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/hashbench/internal/hashes"
)

func TestCheck(t *testing.T) {
	adapters, err := hashes.NewAll([]string{"md5", "murmur2"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, check(&buf, adapters, []string{"hello", "world"}, true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "md5\t"))
	assert.True(t, strings.HasPrefix(lines[1], "murmur2\t"))
	assert.Equal(t, "md5\tXUFAKrxLKna5cZ2REBfFkg==", lines[0])
	assert.NotEqual(t, lines[0], lines[2])
}

func TestReadLines(t *testing.T) {
	lines, err := readLines(strings.NewReader("a\nb\n\nc"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, lines)
}

// flakyHash succeeds on the first digest of each input and fails after.
type flakyHash struct {
	seen map[string]bool
}

func (f *flakyHash) ID() string   { return "flaky" }
func (f *flakyHash) Name() string { return "Flaky hash" }
func (f *flakyHash) Bits() int    { return 8 }

func (f *flakyHash) Digest(input []byte) (string, error) {
	if f.seen[string(input)] {
		return "", errors.New("digest unavailable")
	}
	f.seen[string(input)] = true
	return "AA==", nil
}

func TestCheckVerifyCountsSecondDigestErrors(t *testing.T) {
	var buf bytes.Buffer
	err := check(&buf, []hashes.Adapter{&flakyHash{seen: map[string]bool{}}}, []string{"a", "b"}, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 non-deterministic digests")
	assert.Contains(t, buf.String(), "second digest failed: digest unavailable")

	buf.Reset()
	require.NoError(t, check(&buf, []hashes.Adapter{&flakyHash{seen: map[string]bool{}}}, []string{"a"}, false))
	assert.Equal(t, "flaky\tAA==\n", buf.String())
}
