package main

import (
	"os"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/cpcf/metergen/config"
	"github.com/cpcf/metergen/debug"
)

var version = "dev"

type CLI struct {
	Log struct {
		Level string `help:"Log level: ${log_levels}" default:"info" enum:"${log_levels}" env:"METERGEN_LOG_LEVEL"`
		File  string `help:"Also write logs to this file" type:"path" env:"METERGEN_LOG_FILE"`
	} `embed:"" prefix:"log-"`

	Version kong.VersionFlag `help:"Print the version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate headers, web modules and translations from the meter tables"`
	Check    CheckCmd    `cmd:"" help:"Fail when generated files are out of date or the tables break the previous output"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate whenever an input table, translation template or the configuration changes"`
}

func vars() kong.Vars {
	return kong.Vars{
		"version":     version,
		"config_file": config.DefaultFile,
		"log_levels":  strings.Join(debug.LevelNames(), ","),
	}
}

func main() {
	jsonPaths, yamlPaths, tomlPaths := cliConfigPaths()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("metergen"),
		kong.Description("Meter value identifier generator"),
		kong.UsageOnError(),
		vars(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := debug.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
