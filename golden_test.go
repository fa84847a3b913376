package tres_test

import (
	"flag"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/testutil"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden parses every fixture and compares the written document with
// testdata/<fixture>.golden.
func TestGolden(t *testing.T) {
	files, err := fs.Glob(testutil.TestdataFS, "testdata/*.tres")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		name := path.Base(file)
		t.Run(name, func(t *testing.T) {
			r, _ := tres.Parse(testutil.MustReadTestData(name))
			actual, err := tres.Marshal(r)
			require.NoError(t, err)

			goldenFile := filepath.Join("testdata", strings.TrimSuffix(name, ".tres")+".golden")

			// The update flag can be used to automatically update the golden file.
			// To use it, run: go test -v . -update
			if *update {
				err := os.WriteFile(goldenFile, actual, 0o644)
				require.NoError(t, err)
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")

			require.Equal(t, string(expected), string(actual), "Written document does not match golden file.")
		})
	}
}
