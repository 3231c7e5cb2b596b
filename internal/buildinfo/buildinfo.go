// Package buildinfo holds release metadata set with -ldflags -X at build
// time. Local builds leave them empty and fall back to debug.ReadBuildInfo.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
