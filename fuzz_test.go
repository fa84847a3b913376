package tres_test

import (
	"io/fs"
	"testing"

	"github.com/KimNorgaard/go-tres"
	"github.com/KimNorgaard/go-tres/internal/testutil"
	"github.com/stretchr/testify/require"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the fixture documents.
	seedFiles, err := fs.Glob(testutil.TestdataFS, "testdata/*.tres")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}
	for _, file := range seedFiles {
		data, err := fs.ReadFile(testutil.TestdataFS, file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}

	f.Add([]byte(""))
	f.Add([]byte("[resource]\n"))
	f.Add([]byte("[resource]\nx = [1, [2, \"a, b\"], Color(1, 2, 3, 4)]\n"))
	f.Add([]byte("[gd_resource type=\"Resource\" uid=\"uid://a\"]\n[resource]\nv = Vector2(1e3, -0)\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Parsing never fails, so any input yields a resource.
		r, _ := tres.Parse(data)

		// Writing a parsed resource must never fail.
		first, err := tres.Marshal(r)
		require.NoError(t, err)

		// Parsing and writing again must reproduce the same document.
		again, _ := tres.Parse(first)
		second, err := tres.Marshal(again)
		require.NoError(t, err)
		require.Equal(t, string(first), string(second), "written document is not stable")
	})
}
