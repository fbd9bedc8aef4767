/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/allbin/ttymon"
	"github.com/allbin/ttymon/internal/console"
	"github.com/allbin/ttymon/internal/logging"
	"github.com/allbin/ttymon/internal/sysfs"
	"github.com/allbin/ttymon/internal/udev"
	"github.com/allbin/ttymon/internal/ui"
	"github.com/allbin/ttymon/internal/ui/styles"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ttymon",
	Short: "Monitor serial output from hot-pluggable USB devices",
	Long: `Monitor serial output from a USB serial device such as a Teensy.

ttymon waits for the device to be connected, relays everything it prints to
the console and everything typed on the console back to it, and goes back
to waiting when the device is disconnected.

Lines starting with a single letter followed by a colon are colorized by
that letter:
  W:  warning (yellow)
  D:  debug   (blue)
  C:  critical (red)
  E:  error   (red)
  I:  info    (uncolored)

Examples:
  ttymon
  ttymon --serial 12345
  ttymon --list
  ttymon --list --all
  ttymon --watcher inotify --vendor Arduino`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}
		if opts.List {
			return runList(cmd.OutOrStdout(), opts)
		}
		return runMonitor(cmd.Context(), opts)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render(fmt.Sprintf("Error: %+v", err)))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/ttymon/config.yaml)")

	rootCmd.Flags().BoolP("list", "l", false, "List matching devices currently connected")
	rootCmd.Flags().Bool("all", false, "With --list, show every USB serial port in a table")
	rootCmd.Flags().StringP("serial", "s", "", "Connect to the device with this serial number")
	rootCmd.Flags().BoolP("verbose", "v", false, "Turn on verbose messages")
	rootCmd.Flags().String("vendor", ttymon.DefaultVendorPrefix, "Vendor prefix a device must have to match")
	rootCmd.Flags().IntP("baud", "b", 115200, "Baud rate")
	rootCmd.Flags().String("watcher", "udev", "Hotplug source: udev, inotify")
	rootCmd.Flags().Bool("reset-per-line", false, "Only reset colors on lines that were colorized")

	for key, flag := range map[string]string{
		"list":           "list",
		"all":            "all",
		"serial":         "serial",
		"verbose":        "verbose",
		"vendor":         "vendor",
		"baud":           "baud",
		"watcher":        "watcher",
		"reset_per_line": "reset-per-line",
	} {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "ttymon"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("ttymon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		}
	}
}

// options is the merged view of flags, environment and config file
type options struct {
	List         bool
	All          bool
	Serial       string
	Verbose      bool
	Vendor       string
	Baud         int
	Watcher      string
	ResetPerLine bool
	Colors       map[string]string
}

func loadOptions() (options, error) {
	o := options{
		List:         viper.GetBool("list"),
		All:          viper.GetBool("all"),
		Serial:       viper.GetString("serial"),
		Verbose:      viper.GetBool("verbose"),
		Vendor:       viper.GetString("vendor"),
		Baud:         viper.GetInt("baud"),
		Watcher:      strings.ToLower(viper.GetString("watcher")),
		ResetPerLine: viper.GetBool("reset_per_line"),
		Colors:       make(map[string]string),
	}
	// viper lowercases keys; line tags are upper case
	for tag, color := range viper.GetStringMapString("colors") {
		o.Colors[strings.ToUpper(tag)] = color
	}
	if o.Vendor == "" {
		return o, fmt.Errorf("%w: vendor prefix must not be empty", ttymon.ErrInvalidConfig)
	}
	config := ttymon.DefaultLinkConfig()
	if err := ttymon.WithBaudRate(o.Baud)(&config); err != nil {
		return o, fmt.Errorf("%w: unsupported baud rate %d", err, o.Baud)
	}
	return o, nil
}

func (o options) criteria() ttymon.Criteria {
	return ttymon.Criteria{VendorPrefix: o.Vendor, Serial: o.Serial}
}

func newWatcher(kind string, logger *slog.Logger) (ttymon.Watcher, error) {
	switch kind {
	case "udev", "":
		return udev.New(logger), nil
	case "inotify":
		return sysfs.New(sysfs.WithLogger(logger)), nil
	default:
		return nil, fmt.Errorf("%w: unknown watcher %q (valid: udev, inotify)", ttymon.ErrInvalidConfig, kind)
	}
}

// prepareConsole catches SIGINT and SIGTERM, then puts stdin in cbreak mode
// when it is a terminal. Signals are caught before the terminal mode
// changes. restore undoes both.
func prepareConsole(ctx context.Context, stdin *os.File) (context.Context, func() error, error) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	fd := int(stdin.Fd())
	if !console.IsTerminal(fd) {
		return ctx, func() error { stop(); return nil }, nil
	}
	saved, err := console.MakeCbreak(fd)
	if err != nil {
		stop()
		return nil, nil, err
	}
	return ctx, func() error {
		defer stop()
		return saved.Restore()
	}, nil
}

// runMonitor bridges the console to the device until interrupted. The
// terminal mode is restored on every way out of here, including panics.
func runMonitor(ctx context.Context, o options) (err error) {
	logger := logging.New(os.Stderr, o.Verbose)
	slog.SetDefault(logger)

	palette, err := ttymon.NewPalette(o.Colors)
	if err != nil {
		return err
	}
	watcher, err := newWatcher(o.Watcher, logger)
	if err != nil {
		return err
	}
	logger.Debug("starting", "watcher", o.Watcher, "vendor", o.Vendor, "serial", o.Serial, "baud", o.Baud)

	ctx, restore, err := prepareConsole(ctx, os.Stdin)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	ctl := ttymon.NewController(watcher, console.Pump(ctx, os.Stdin), os.Stdout,
		ttymon.WithCriteria(o.criteria()),
		ttymon.WithOpener(ttymon.LinkOpener(ttymon.WithBaudRate(o.Baud))),
		ttymon.WithPalette(palette),
		ttymon.WithColorResetPerLine(o.ResetPerLine),
		ttymon.WithLogger(logger),
		ttymon.WithReporter(ui.NewReporter(os.Stdout, o.Vendor)),
	)
	if err := ctl.Run(ctx); err != nil {
		if errors.Is(err, ttymon.ErrWatcherUnavailable) {
			return fmt.Errorf("%w (try --watcher inotify)", err)
		}
		return err
	}
	return nil
}
