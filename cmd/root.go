package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/futurist-future/image-converter/internal/logging"
)

var (
	version  = "0.1.0"
	verbose  bool
	logLevel string
	logFile  string
	logJSON  bool

	logSink io.WriteCloser // rotating file opened for --log-file
)

var rootCmd = &cobra.Command{
	Use:   "imgconv",
	Short: "Filter 24/32-bit BMP images",
	Long: `imgconv applies pixel filters to uncompressed BMP images: greyscale,
sepia, invert, reflect, box blur and Sobel edge detection.

Headers are preserved byte for byte; only the pixel body changes. Single
files go through "convert", whole directories through "build", which also
writes a manifest and can bundle the results.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		level, ok := logging.ParseLevel(logLevel)
		var w io.Writer = os.Stderr
		if logFile != "" && logSink == nil {
			logSink = logging.RotatingFile(logFile)
		}
		if logSink != nil {
			w = io.MultiWriter(os.Stderr, logSink)
		}
		slog.SetDefault(logging.Logger(w, logJSON, level))
		if !ok {
			slog.WarnContext(cmd.Context(), "invalid log level, defaulting to INFO", "level", logLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the imgconv version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionString())
	},
}

// Execute runs the command tree with ctx and closes the log file, if any.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if logSink != nil {
		logSink.Close()
		logSink = nil
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&logLevel, "log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this size-rotated file")
	pf.BoolVar(&logJSON, "log-json", false, "log as JSON instead of text")
	rootCmd.SetVersionTemplate(versionString())
	rootCmd.AddCommand(versionCmd)
}

func versionString() string {
	return fmt.Sprintf("imgconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[imgconv] "+format+"\n", args...)
	}
}
