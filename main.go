package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ZacxDev/panel-splitter/internal/config"
	"github.com/ZacxDev/panel-splitter/internal/display"
	"github.com/ZacxDev/panel-splitter/internal/logging"
	"github.com/ZacxDev/panel-splitter/pkg/videoprocessor"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "panel-splitter",
		Short: "Cut a master video into panel clips for video walls",
		Long: `panel-splitter trims a segment out of a master video and cuts it into a grid
of fixed-size panel clips for every display tier of a video wall.

Examples:
  # Split with the built-in layout (8k, 4k, 2k grids plus the hd panel)
  panel-splitter split -i static/videos/org8k.mkv -o static/videos

  # Run four ffmpeg processes at a time from a config file
  panel-splitter split --config wall.toml --concurrency 4

  # Show the panels that would be cut
  panel-splitter plan --config wall.toml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	splitCmd = &cobra.Command{
		Use:   "split",
		Short: "Trim the master video and cut every panel",
		Long: fmt.Sprintf(`Trim the master video once, then scale and crop one clip per panel.

Supported display tiers:
%s
Example:
  panel-splitter split -i org8k.mkv -o ./walls --tiers 4k,2k --concurrency 2`,
			formatSupportedTiers()),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log, err := logging.New(logging.Options{
				Format:  cfg.LogFormat,
				Verbose: cfg.Verbose,
				Writer:  os.Stderr,
			})
			if err != nil {
				return err
			}

			if probe, _ := cmd.Flags().GetBool("probe"); probe {
				meta, err := videoprocessor.CheckSource(cfg)
				if err != nil {
					return err
				}
				log.Info("source", "path", cfg.InputPath, "duration", meta.Duration,
					"width", meta.Width, "height", meta.Height, "codec", meta.Codec)
			}

			report, err := videoprocessor.SplitPanels(cmd.Context(), cfg, videoprocessor.SplitOptions{
				Logger: log,
				Stderr: os.Stderr,
			})
			if report != nil {
				fmt.Println(report.Render())
			}
			return err
		},
	}

	planCmd = &cobra.Command{
		Use:   "plan",
		Short: "List the panels a split would cut, without running ffmpeg",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jobs, err := videoprocessor.PlanPanels(cfg)
			if err != nil {
				return err
			}

			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Display", "Row", "Column", "X", "Y", "Output"})
			for _, job := range jobs {
				tw.AppendRow(table.Row{job.Resolution.Code, job.Row, job.Column, job.OriginX, job.OriginY, job.OutputPath})
			}
			tw.AppendFooter(table.Row{"", "", "", "", "Total", strconv.Itoa(len(jobs))})
			fmt.Println(tw.Render())
			return nil
		},
	}

	tiersCmd = &cobra.Command{
		Use:   "tiers",
		Short: "List the built-in display tiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := table.NewWriter()
			tw.SetStyle(table.StyleRounded)
			tw.AppendHeader(table.Row{"Code", "Width", "Height", "Layout"})
			for _, code := range display.Supported() {
				tier, err := display.Get(code)
				if err != nil {
					return err
				}
				res := tier.GetResolution()
				layout := "grid"
				if tier.IsFallback() {
					layout = "single panel"
				}
				tw.AppendRow(table.Row{res.Code, res.Width, res.Height, layout})
			}
			fmt.Println(tw.Render())
			return nil
		},
	}
)

func formatSupportedTiers() string {
	var sb strings.Builder
	for _, code := range videoprocessor.GetSupportedTiers() {
		sb.WriteString(fmt.Sprintf("- %s\n", code))
	}
	return sb.String()
}

// loadConfig reads --config over the defaults and applies the flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputPath, _ = flags.GetString("input")
	}
	if flags.Changed("output") {
		cfg.OutputDir, _ = flags.GetString("output")
	}
	if flags.Changed("intermediate") {
		cfg.IntermediatePath, _ = flags.GetString("intermediate")
	}
	if flags.Changed("format") {
		cfg.OutputFormat, _ = flags.GetString("format")
	}
	if flags.Changed("tiers") {
		cfg.Tiers, _ = flags.GetStringSlice("tiers")
		cfg.Displays = nil
	}
	if flags.Changed("fallback-tier") {
		cfg.FallbackTier, _ = flags.GetString("fallback-tier")
	}
	if flags.Changed("seek") {
		cfg.Trim.SeekSeconds, _ = flags.GetFloat64("seek")
	}
	if flags.Changed("duration") {
		cfg.Trim.DurationSeconds, _ = flags.GetFloat64("duration")
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		cfg.TimeoutSeconds = timeout.Seconds()
	}
	if flags.Changed("abort-on-failure") {
		cfg.AbortOnFailure, _ = flags.GetBool("abort-on-failure")
	}
	if flags.Changed("fail-on-job-error") {
		cfg.FailOnJobError, _ = flags.GetBool("fail-on-job-error")
	}
	if flags.Changed("ffmpeg") {
		cfg.FFmpegPath, _ = flags.GetString("ffmpeg")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addLayoutFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "TOML config file")
	cmd.Flags().StringP("input", "i", "", "Master video file")
	cmd.Flags().StringP("output", "o", "", "Output root directory")
	cmd.Flags().String("intermediate", "", "Trimmed intermediate file (reused when present)")
	cmd.Flags().String("format", "", "Output container extension (e.g. mp4)")
	cmd.Flags().StringSlice("tiers", nil,
		fmt.Sprintf("Display tiers to cut grids for (%s)", strings.Join(videoprocessor.GetSupportedTiers(), ", ")))
	cmd.Flags().String("fallback-tier", "", "Tier cut as a single top-left panel (empty disables)")
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("seek", config.DefaultSeekSeconds, "Start of the trimmed segment in seconds")
	cmd.Flags().Float64("duration", config.DefaultDurationSeconds, "Length of the trimmed segment in seconds")
	cmd.Flags().Int("concurrency", 1, "Number of ffmpeg processes per batch")
	cmd.Flags().Duration("timeout", 0, "Per-invocation ffmpeg timeout (e.g. '10m'); 0 disables")
	cmd.Flags().Bool("abort-on-failure", false, "Stop starting new batches after the first failed panel")
	cmd.Flags().Bool("fail-on-job-error", false, "Exit non-zero when any panel failed")
	cmd.Flags().Bool("probe", false, "Probe the master and check it covers the trim before starting")
	cmd.Flags().String("ffmpeg", "", "ffmpeg binary (default: ffmpeg on PATH)")
	cmd.Flags().String("log-format", "", "Log format: console or json (default: console on a terminal)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging and ffmpeg output")
}

func init() {
	addLayoutFlags(splitCmd)
	addRunFlags(splitCmd)

	addLayoutFlags(planCmd)

	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(tiersCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
