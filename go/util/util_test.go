package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aoc2020/calc/go/testutils/unittest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddParams(t *testing.T) {
	unittest.SmallTest(t)
	got := AddParams(nil, map[string]string{"a": "1"}, map[string]string{"a": "2", "b": "3"})
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, got)

	base := map[string]string{"c": "4"}
	assert.Equal(t, map[string]string{"c": "4", "d": "5"}, AddParams(base, map[string]string{"d": "5"}))
	assert.Equal(t, "5", base["d"])
}

func TestReadLines(t *testing.T) {
	unittest.SmallTest(t)
	lines, err := ReadLines(strings.NewReader("1 + 2\r\n3 * 4\n\n5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1 + 2", "3 * 4", "", "5"}, lines)

	lines, err = ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestWithReadFile(t *testing.T) {
	unittest.SmallTest(t)
	name := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(name, []byte("7 * 4 / 2\n"), 0644))

	var contents []byte
	err := WithReadFile(name, func(f io.Reader) error {
		var err error
		contents, err = io.ReadAll(f)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "7 * 4 / 2\n", string(contents))

	err = WithReadFile(filepath.Join(t.TempDir(), "missing.txt"), func(f io.Reader) error {
		return nil
	})
	assert.True(t, os.IsNotExist(err))
}
