package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamcat/rigmap/pkg/constants"
)

// Example demonstrates writing an export with the standard permissions.
func Example() {
	dir, err := os.MkdirTemp("", "rigmap")
	if err != nil {
		panic(err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	file := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(file, []byte("radios: []\n"), constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_bands shows the band edges used for FCC grant frequency ranges.
func Example_bands() {
	fmt.Println(constants.HFUpperMHz, constants.VHFUpperMHz, constants.UHFUpperMHz)
	// Output:
	// 30 300 1000
}
