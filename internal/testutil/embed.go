package testutil

import (
	"embed"
	"fmt"
	"io/fs"
)

// TestdataFS holds the embedded resource documents used as test fixtures.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded fixture.
func ReadTestData(name string) ([]byte, error) {
	path := fmt.Sprintf("testdata/%s", name)
	data, err := fs.ReadFile(TestdataFS, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// MustReadTestData is ReadTestData for fixtures that are known to exist.
func MustReadTestData(name string) []byte {
	data, err := ReadTestData(name)
	if err != nil {
		panic(err)
	}
	return data
}
