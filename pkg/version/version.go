// Package version reports the build information of stakx binaries.
package version

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
)

// String returns the main module version, or "(devel)" when unknown.
func String() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}

	return bi.Main.Version
}

// Requested reports whether the caller asked for version output, either
// via flag or the STAKX_VERSION environment variable.
func Requested(flag bool) bool {
	return flag || os.Getenv("STAKX_VERSION") != ""
}

// Write prints the name, version and Go toolchain of the running binary.
func Write(w io.Writer, name string) error {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return fmt.Errorf("ReadBuildInfo() failed")
	}

	_, err := fmt.Fprintf(w, "%s %s (%s)\n", name, String(), bi.GoVersion)
	return err
}
