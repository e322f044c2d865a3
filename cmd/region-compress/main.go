package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ironsheep/region-compress/internal/compress"
	"github.com/ironsheep/region-compress/internal/imaging"
	"github.com/ironsheep/region-compress/internal/segment"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "region-compress <input-image>",
		Short: "Compress images by flattening regions of similar color",
		Long: "region-compress partitions an image into contiguous regions of perceptually\n" +
			"similar color and repaints each region with its average color, producing a\n" +
			"flattened, reduced-detail reconstruction.",
		Args:         cobra.ExactArgs(1),
		Version:      fmt.Sprintf("%s (%s)", Version, GitCommit),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFile, _ := cmd.Flags().GetString("log-file")
			configureLogging(logLevel, logFile)
		},
		RunE: run,
	}

	pf := cmd.Flags()
	pf.StringP("output", "o", "", "path for the compressed image (default: <input>_compressed_<algorithm><ext>)")
	pf.Float64P("threshold", "t", 0.9, "similarity threshold (0.0-1.0); higher = stricter matching, less compression")
	pf.IntP("max-region-size", "m", 0, "maximum pixels per region (0 = unbounded)")
	pf.StringP("algorithm", "a", "adaptive", "region-finding algorithm (adaptive|density)")
	pf.Bool("no-adaptive", false, "disable adaptive thresholding (adaptive algorithm only)")
	pf.Int("connectivity", 8, "neighbor connectivity (4 or 8)")
	pf.Float64("smooth", 0, "Gaussian pre-filter radius applied before segmentation (0 = off)")
	pf.String("archive", "", "also write a compact region archive to this path")
	pf.Bool("report-only", false, "compress and report without saving the image")
	pf.Bool("no-progress", false, "disable the console progress bar")

	cmd.PersistentFlags().String("log-level", "INFO", "log level (DEBUG, INFO, WARN, ERROR)")
	cmd.PersistentFlags().String("log-file", "", "write logs to this file (rotated) instead of stderr")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	input := args[0]

	algorithmName, _ := cmd.Flags().GetString("algorithm")
	algorithm, err := compress.ParseAlgorithm(algorithmName)
	if err != nil {
		return err
	}

	connectivity, _ := cmd.Flags().GetInt("connectivity")
	if connectivity != 4 && connectivity != 8 {
		return fmt.Errorf("connectivity must be 4 or 8, got %d", connectivity)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		ext := filepath.Ext(input)
		output = fmt.Sprintf("%s_compressed_%s%s", strings.TrimSuffix(input, ext), algorithm, ext)
	}

	opts := compress.DefaultOptions()
	opts.Threshold, _ = cmd.Flags().GetFloat64("threshold")
	opts.MaxRegionSize, _ = cmd.Flags().GetInt("max-region-size")
	opts.Algorithm = algorithm
	noAdaptive, _ := cmd.Flags().GetBool("no-adaptive")
	opts.AdaptiveMode = !noAdaptive
	opts.Connectivity = segment.Connectivity(connectivity)
	opts.SmoothRadius, _ = cmd.Flags().GetFloat64("smooth")

	var bar *progressBar
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); !noProgress {
		bar = newProgressBar(os.Stderr, fmt.Sprintf("Compressing (%s)", algorithm))
		opts.Progress = bar.Update
	}

	c, err := compress.New(opts)
	if err != nil {
		return err
	}

	fmt.Printf("Loading image: %s\n", input)
	if err := c.Load(input); err != nil {
		return err
	}
	if bar != nil {
		bar.Start()
	}
	if err := c.Compress(); err != nil {
		return err
	}

	if err := c.WriteReport(os.Stdout); err != nil {
		return err
	}
	printPalette(c)

	if archivePath, _ := cmd.Flags().GetString("archive"); archivePath != "" {
		if err := c.SaveArchive(archivePath); err != nil {
			return err
		}
		fmt.Printf("Region archive saved to '%s'\n", archivePath)
	}

	if reportOnly, _ := cmd.Flags().GetBool("report-only"); reportOnly {
		fmt.Println("Report-only mode: image was not saved")
		return nil
	}

	fmt.Printf("Saving compressed image to: %s\n", output)
	if err := c.Save(output); err != nil {
		return err
	}
	fmt.Printf("Success! Compressed image saved to '%s'\n", output)
	return nil
}

// printPalette lists the most common region colors of the run.
func printPalette(c *compress.Compressor) {
	weights := make([]int, len(c.Regions()))
	for i, r := range c.Regions() {
		weights[i] = len(r)
	}
	entries := imaging.Palette(c.Colors(), weights, 8)
	if len(entries) == 0 {
		return
	}
	fmt.Println("Top region colors:")
	for _, e := range entries {
		fmt.Printf("  %s  %5.1f%%\n", e.Hex, e.Percentage)
	}
}

// configureLogging sets the process-wide slog default. With a log file
// the output goes through lumberjack so long batch runs rotate instead
// of filling the disk.
func configureLogging(levelName, logFile string) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelName))); err != nil {
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stderr
	if logFile != "" {
		out = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
}
