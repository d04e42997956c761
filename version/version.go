package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the application version, set via ldflags.
	Version string
	// Branch is the git branch, set via ldflags.
	Branch string
	// BuildUser is the user who built the binary, set via ldflags.
	BuildUser string
	// BuildDate is when the binary was built, set via ldflags.
	BuildDate string

	// Revision is the git commit revision.
	Revision = getRevision()
	// GoVersion is the Go version used to build.
	GoVersion = runtime.Version()
	// GoOS is the operating system target.
	GoOS = runtime.GOOS
	// GoArch is the architecture target.
	GoArch = runtime.GOARCH
)

// String returns a single-line version description, suitable for
// [github.com/spf13/cobra.Command]'s Version field.
func String() string {
	return fmt.Sprintf("%s (revision: %s, %s %s/%s)",
		getVersion(), Revision, GoVersion, GoOS, GoArch)
}

// Print writes full build metadata to w, one field per line. Fields not
// set at build time are omitted.
func Print(w io.Writer) error {
	fields := []struct {
		name  string
		value string
	}{
		{"version", getVersion()},
		{"branch", Branch},
		{"revision", Revision},
		{"build user", BuildUser},
		{"build date", BuildDate},
		{"go version", GoVersion},
		{"platform", GoOS + "/" + GoArch},
	}

	for _, f := range fields {
		if f.value == "" {
			continue
		}

		_, err := fmt.Fprintf(w, "%-12s%s\n", f.name+":", f.value)
		if err != nil {
			return fmt.Errorf("write version: %w", err)
		}
	}

	return nil
}

// getVersion falls back to the main module's version from build info when
// no version was linked in, as happens under go install and go run.
func getVersion() string {
	if Version != "" {
		return Version
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok || buildInfo.Main.Version == "" {
		return "(devel)"
	}

	return buildInfo.Main.Version
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			rev = v.Value
		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}
