package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/projtrack/internal/flagx"
)

var ownFlags = []string{"-s", "-d", "-l", "-f", "-o"}

// parseFlags overlays cfg with the flags it owns; other arguments are
// filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("projtrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, postgres, s3, memory)")
	fs.StringVar(&cfg.SQLitePath, "d", cfg.SQLitePath, "SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format (text, json, zap)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory for attachments")

	if err := fs.Parse(flagx.FilterArgs(args, ownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
