package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raidbook/raidbook/internal/config"
	"github.com/raidbook/raidbook/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the raidbook config file",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Shows the configuration after defaults, the config file and the
MONGO_URI / MONGO_DB / RAIDBOOK_SEASON / RAIDBOOK_OWNER overrides are applied.
Passwords in the MongoDB URI are masked.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.CreateDefault(configPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Config file: %s", ui.FilePath(path)))
		return nil
	},
}

// redactURI masks the password of a connection string.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c := getConfig()
	path := configPath
	if strings.TrimSpace(path) == "" {
		path = config.DefaultPath()
	}

	accent, _ := ui.AccentColor()
	data := map[string]interface{}{
		"config_file":    path,
		"mongo_uri":      redactURI(c.MongoURI),
		"database":       c.Database,
		"default_season": c.DefaultSeason,
		"owner":          c.Owner,
		"paths": map[string]string{
			"source":    c.Paths.Source,
			"output":    c.Paths.Output,
			"sqlite":    c.Paths.SQLite,
			"field_map": c.Paths.FieldMap,
			"audit_log": c.Paths.AuditLog,
		},
		"accent": accent,
	}
	if isJSONOutput() {
		outputSuccess(data, nil)
		return nil
	}

	tbl := ui.NewTable(2)
	tbl.AddRow("config file", ui.FilePath(path))
	tbl.AddRow("mongo_uri", redactURI(c.MongoURI))
	tbl.AddRow("database", c.Database)
	tbl.AddRow("default_season", c.DefaultSeason)
	tbl.AddRow("owner", c.Owner)
	tbl.AddRow("paths.source", c.Paths.Source)
	tbl.AddRow("paths.output", c.Paths.Output)
	tbl.AddRow("paths.sqlite", c.Paths.SQLite)
	tbl.AddRow("paths.field_map", c.Paths.FieldMap)
	tbl.AddRow("paths.audit_log", c.Paths.AuditLog)
	tbl.AddRow("ui.accent", accent)
	fmt.Print(tbl.String())
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
