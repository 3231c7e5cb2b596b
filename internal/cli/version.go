package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/buildinfo"
	"github.com/raidbook/raidbook/internal/ui"
)

const modulePath = "github.com/raidbook/raidbook"

type versionInfo struct {
	Version   string `json:"version"`
	Module    string `json:"module"`
	Commit    string `json:"commit,omitempty"`
	BuiltAt   string `json:"built_at,omitempty"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show raidbook version and build information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := currentVersionInfo()
	if isJSONOutput() {
		outputSuccess(info, nil)
		return nil
	}

	fmt.Println(ui.Bold.Render("raidbook " + info.Version))
	tbl := ui.NewTable(2)
	tbl.AddRow("module", info.Module)
	if info.Commit != "" {
		tbl.AddRow("commit", info.Commit)
	}
	if info.BuiltAt != "" {
		tbl.AddRow("built", info.BuiltAt)
	}
	tbl.AddRow("go", info.GoVersion)
	tbl.AddRow("platform", info.Platform)
	if info.Dirty {
		tbl.AddRow("dirty", "true")
	}
	fmt.Print(tbl.String())
	return nil
}

// currentVersionInfo prefers release values stamped with -ldflags and fills
// the gaps from the module build info.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:   "devel",
		Module:    modulePath,
		Commit:    buildinfo.Commit,
		BuiltAt:   buildinfo.Date,
		GoVersion: runtime.Version(),
	}
	if buildinfo.Version != "" {
		info.Version = buildinfo.Version
	}
	goos, goarch := runtime.GOOS, runtime.GOARCH

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		if info.Version == "devel" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuiltAt == "" {
					info.BuiltAt = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			case "GOOS":
				goos = s.Value
			case "GOARCH":
				goarch = s.Value
			}
		}
	}
	info.Platform = goos + "/" + goarch
	return info
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
