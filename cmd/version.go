package cmd

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Version returns a `version` command to be added to any cobra (root) command.
func Version(name string) *cobra.Command {
	name = strings.TrimSpace(name)

	short := "Print version"
	if name != "" {
		short = "Print " + name + " version"
	}

	return &cobra.Command{
		Use:                   "version",
		Short:                 short,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		Run: func(cmd *cobra.Command, _ []string) {
			info := readBuildInfo()

			prefix := "version:"
			if name != "" {
				prefix = name + " " + prefix
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s from %s\n", prefix, info.revision(), info.timestamp())
		},
	}
}

type buildInfo struct {
	hash     string
	time     string
	modified bool
}

// revision returns the last git hash, or @latest for uncommitted or unknown builds.
func (b buildInfo) revision() string {
	if b.modified || b.hash == "" {
		return "@latest"
	}

	return b.hash
}

func (b buildInfo) timestamp() string {
	if b.modified || b.hash == "" {
		return time.Now().UTC().Format(time.RFC3339)
	}

	return b.time
}

// readBuildInfo returns the vcs information stamped into the binary by `go build`.
// `go run` and `go test` do not contain that info.
func readBuildInfo() buildInfo {
	var b buildInfo

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			b.hash = setting.Value
		case "vcs.time":
			b.time = setting.Value
		case "vcs.modified":
			b.modified = setting.Value == "true"
		}
	}

	return b
}
