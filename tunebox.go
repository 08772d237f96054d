// Copyright 2023 The STMPS Authors
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/samber/lo"
	"github.com/spezifisch/tunebox/assets"
	"github.com/spezifisch/tunebox/beepplayer"
	"github.com/spezifisch/tunebox/catalog"
	"github.com/spezifisch/tunebox/config"
	"github.com/spezifisch/tunebox/logger"
	"github.com/spezifisch/tunebox/mpvplayer"
	"github.com/spezifisch/tunebox/playback"
	"github.com/spezifisch/tunebox/remote"
	tviewcommand "github.com/spezifisch/tview-command"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var osExit = os.Exit  // A variable to allow mocking os.Exit in tests
var headlessMode bool // This can be set to true during tests
var testMode bool     // This can be set to true during tests, too

const DEVELOPMENT = "development"

// Name is the program name shown in the status bar and on the session bus
var Name string = config.Name

// Version is the program version; usually set from BuildInfo
var Version string = DEVELOPMENT

// configError marks failures that exit with code 2.
type configError struct {
	err error
}

func (e *configError) Error() string { return e.err.Error() }
func (e *configError) Unwrap() error { return e.err }

// flag name -> config key
var boundFlags = map[string]string{
	"backend": config.PlayerBackend,
	"dir":     config.CatalogDir,
	"mpris":   config.MprisEnabled,
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           Name,
		Short:         "A tiny terminal music player for a handful of bundled tracks",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if lo.Must(cmd.Flags().GetBool("version")) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", Name, Version)
				return nil
			}
			return run(cmd)
		},
	}

	cmd.Flags().StringP("config", "c", "", "use config `file`")
	cmd.Flags().StringP("backend", "b", config.BackendBeep, "audio backend: beep or mpv")
	cmd.Flags().StringP("dir", "d", "", "play the audio files in `directory` instead of the bundled tracks")
	cmd.Flags().Bool("mpris", false, "enable MPRIS2")
	cmd.Flags().BoolP("list", "l", false, "print the catalog and exit")
	cmd.Flags().BoolP("version", "v", false, "print the version and exit")

	return cmd
}

// bindFlags must run after config.Setup so defaults are already registered.
func bindFlags(cmd *cobra.Command) {
	for flag, key := range boundFlags {
		lo.Must0(viper.BindPFlag(key, cmd.Flags().Lookup(flag)))
	}
}

// initCommandHandler sets up tview-command and loads the keybinding file
// named by keys.config, if any.
func initCommandHandler(logger *logger.Logger) (*tviewcommand.Config, error) {
	tviewcommand.SetLogHandler(func(msg string) {
		logger.Print(msg)
	})

	configPath := viper.GetString(config.KeysConfig)
	if configPath == "" {
		return nil, nil
	}

	cfg, err := tviewcommand.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("keybinding config %s: %w", configPath, err)
	}
	return cfg, nil
}

func loadCatalog(logger *logger.Logger) ([]catalog.Track, error) {
	if dir := viper.GetString(config.CatalogDir); dir != "" {
		return catalog.LoadDir(dir, logger)
	}
	return catalog.Load(assets.Tracks(), assets.TrackNames(), logger), nil
}

func printCatalog(w io.Writer, tracks []catalog.Track) {
	for i, track := range tracks {
		fmt.Fprintf(w, "%2d  %-24s %-20s %-20s %s\n", i+1, track.Title, track.Artist, track.GetAlbum(), track.GetYear())
	}
	fmt.Fprintf(w, "%d tracks\n", len(tracks))
}

// newOpener returns the decoder factory for the configured backend and a
// cleanup func to run on exit.
func newOpener(logger *logger.Logger) (playback.Opener, func(), error) {
	switch config.Backend() {
	case config.BackendMpv:
		opener := mpvplayer.NewOpener(logger)
		return opener, func() {
			if err := opener.Close(); err != nil {
				logger.PrintError("mpv cleanup", err)
			}
		}, nil
	case config.BackendBeep:
		if !beepplayer.AudioAvailable {
			logger.Print("beep backend built without audio output; tracks will fail to play")
		}
		return beepplayer.NewOpener(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", config.Backend())
}

func run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	if err := config.Setup(lo.Must(cmd.Flags().GetString("config"))); err != nil {
		return &configError{err}
	}
	bindFlags(cmd)
	if err := config.Validate(); err != nil {
		return &configError{err}
	}

	logger := logger.Init()
	if viper.GetBool(config.LogsWrite) {
		f, err := logger.OpenFile(viper.GetString(config.LogsDir), viper.GetString(config.LogsLevel), viper.GetBool(config.LogsJSON))
		if err != nil {
			return &configError{err}
		}
		defer f.Close()
	}
	commands, err := initCommandHandler(logger)
	if err != nil {
		return &configError{err}
	}

	tracks, err := loadCatalog(logger)
	if err != nil {
		return err
	}

	if lo.Must(cmd.Flags().GetBool("list")) {
		printCatalog(out, tracks)
		return nil
	}

	if testMode {
		fmt.Fprintln(out, "Running in test mode for testing.")
		return nil
	}

	opener, cleanup, err := newOpener(logger)
	if err != nil {
		return &configError{err}
	}
	defer cleanup()

	controller := playback.NewController(opener, logger, playback.WithPollInterval(config.PollInterval()))
	defer controller.Close()

	// init mpris2 player control (linux only but fails gracefully on other systems)
	if viper.GetBool(config.MprisEnabled) {
		mprisPlayer, err := remote.RegisterMprisPlayer(controller, logger)
		if err != nil {
			return fmt.Errorf("unable to register MPRIS with DBUS, try running without --mpris: %w", err)
		}
		defer mprisPlayer.Close()
		controller.RegisterEventConsumer(mprisPlayer)
	}

	if headlessMode {
		fmt.Fprintln(out, "Running in headless mode for testing.")
		controller.SetCatalog(tracks)
		return nil
	}

	ui := InitGui(tracks, controller, logger, UiOptions{
		AlbumArt:     viper.GetBool(config.UIAlbumArt),
		ArtCacheSize: viper.GetInt(config.UIArtCacheSize),
		Commands:     commands,
	})

	// run main loop
	return ui.Run()
}

// return codes:
// 0 - OK
// 1 - generic errors
// 2 - config and keybinding config errors
func main() {
	if Version == DEVELOPMENT {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
			Version = bi.Main.Version
		}
	}

	cmd := newRootCmd()
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", Name, err)
		var cfgErr *configError
		if errors.As(err, &cfgErr) {
			osExit(2)
			return
		}
		osExit(1)
		return
	}
	osExit(0)
}
