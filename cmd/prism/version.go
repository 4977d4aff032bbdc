package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time via -ldflags "-X main.Version=...".
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = ""
)

func printVersion() {
	writeVersion(os.Stdout)
}

func writeVersion(w io.Writer) {
	var b strings.Builder
	b.WriteString("prism version " + Version)
	if Build != "unknown" && Build != "" {
		fmt.Fprintf(&b, " (build: %s)", Build)
	}
	if BuildTime != "" {
		fmt.Fprintf(&b, " [%s]", BuildTime)
	}
	fmt.Fprintln(w, b.String())
	fmt.Fprintf(w, "Go version: %s\n", runtime.Version())
	fmt.Fprintf(w, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	if Version != "dev" {
		return
	}
	if rev := vcsRevision(); rev != "" {
		fmt.Fprintf(w, "Commit: %s\n", rev)
	}
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) > 7 {
			return setting.Value[:7]
		}
	}
	return ""
}
