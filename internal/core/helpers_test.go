package core_test

import (
	"archive/zip"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path, member, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(member)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}
