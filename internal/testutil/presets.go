package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Sample file contents covering the shapes the editor must handle.
var (
	TextEmpty     = ""
	TextThreeLine = "one\ntwo\nthree"
	TextCRLF      = "one\r\ntwo\r\n"
	TextWide      = "世界\nab"
	TextTabs      = "\tindented\nnot"
	TextLossy     = "ok\xff\xfe"
)

// WriteFile writes data to name inside dir, creating dir, and returns the
// full path.
func WriteFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// TempFile writes data to name in a fresh temp dir.
func TempFile(t *testing.T, name, data string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), name, data)
}
