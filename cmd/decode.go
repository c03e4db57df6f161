package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"firestige.xyz/framedump/internal/config"
	"firestige.xyz/framedump/internal/core"
	"firestige.xyz/framedump/internal/core/decoder"
	"firestige.xyz/framedump/internal/log"
	"firestige.xyz/framedump/internal/metrics"
	"firestige.xyz/framedump/internal/sink/report"
	"firestige.xyz/framedump/internal/source/file"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <capture>...",
	Short: "Decode Ethernet frames from capture files",
	Long: `Decode every frame of one or more capture files and write a report.

Files are decoded concurrently; reports are written in argument order once
all files have been read. A file that cannot be read aborts the command and
no report is written. A capture that ends in a truncated or malformed frame
still produces a report listing the frames decoded before that point.

Examples:
  framedump decode frames.bin
  framedump decode --report-format json -o report.json a.pcap b.pcapng
  framedump decode --format raw --metrics-textfile /var/lib/node_exporter/framedump.prom dump.bin`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := applyDecodeFlags(cmd, cfg); err != nil {
			return err
		}
		fs := afero.NewOsFs()
		return runDecode(cfg, file.NewLoader(fs, cfg.Input.Format), fs, args, cmd.OutOrStdout())
	},
}

var (
	decodeInputFormat  config.InputFormat
	decodeReportFormat config.ReportFormat
	decodeOutput       string
	decodeMetricsFile  string
	decodeWorkers      int
)

func init() {
	decodeCmd.Flags().Var(&decodeInputFormat, "format",
		"input format: auto, raw, pcap or pcapng (default from config: auto)")
	decodeCmd.Flags().Var(&decodeReportFormat, "report-format",
		"report format: text, json or yaml (default from config: text)")
	decodeCmd.Flags().StringVarP(&decodeOutput, "output", "o", "",
		"report destination, - for stdout (default from config: -)")
	decodeCmd.Flags().StringVar(&decodeMetricsFile, "metrics-textfile", "",
		"write Prometheus tally metrics to this textfile")
	decodeCmd.Flags().IntVar(&decodeWorkers, "workers", 0,
		"files decoded in parallel (default from config: GOMAXPROCS)")
}

// applyDecodeFlags lets explicitly set flags override the loaded config.
func applyDecodeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Input.Format = decodeInputFormat
	}
	if flags.Changed("report-format") {
		cfg.Report.Format = decodeReportFormat
	}
	if flags.Changed("output") {
		cfg.Report.Output = decodeOutput
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = decodeMetricsFile
	}
	if flags.Changed("workers") {
		cfg.Workers = decodeWorkers
	}
	return cfg.ValidateAndApplyDefaults()
}

// captureLoader reads one capture file into memory.
type captureLoader interface {
	Load(path string) (*file.Capture, error)
}

// runDecode loads and decodes every path, then writes the reports to the
// configured output. stdout receives the reports when the output is "-".
func runDecode(cfg *config.Config, loader captureLoader, fs afero.Fs, paths []string, stdout io.Writer) error {
	logger := log.GetLogger()

	emitter, err := report.New(cfg.Report.Format)
	if err != nil {
		return err
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	reports := make([]*report.Report, len(paths))
	p := pool.New().WithErrors().WithMaxGoroutines(workers)
	for i, path := range paths {
		i, path := i, path
		p.Go(func() error {
			capture, err := loader.Load(path)
			if err != nil {
				return err
			}
			reports[i] = decodeCapture(capture)
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	for _, rep := range reports {
		logDecoded(logger, rep)
	}

	if err := writeReports(fs, cfg.Report.Output, stdout, emitter, reports); err != nil {
		return err
	}

	if cfg.Metrics.Textfile != "" {
		collector := metrics.NewCollector()
		for _, rep := range reports {
			collector.Observe(rep.Source, rep.Size, rep.Result)
		}
		if err := collector.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		logger.WithField("path", cfg.Metrics.Textfile).Debug("metrics textfile written")
	}
	return nil
}

// decodeCapture walks a loaded capture. Record-framed input is decoded one
// frame per record so link-layer padding never shifts the cursor.
func decodeCapture(c *file.Capture) *report.Report {
	w := decoder.NewWalker(nil)

	var res *core.Result
	if c.RecordFramed() {
		res = w.WalkRecords(c.Records)
	} else {
		res = w.Walk(c.Data)
	}

	// A record cut off by the end of the file is a truncated frame.
	if c.Truncated && res.Complete {
		res.Complete = false
		res.Err = &core.DecodeError{
			Seq:    res.Frames() + 1,
			Offset: res.StopOffset,
			Field:  "capture record",
			Err:    core.ErrTruncated,
		}
	}
	return &report.Report{Source: c.Path, Size: c.Size, RecordFramed: c.RecordFramed(), Result: res}
}

func logDecoded(logger log.Logger, rep *report.Report) {
	res := rep.Result
	entry := logger.WithFields(map[string]interface{}{
		"source": rep.Source,
		"bytes":  rep.Size,
		"frames": res.Frames(),
	})
	if !res.Complete {
		entry.WithField("offset", res.StopOffset).
			WithField("reason", metrics.Reason(res.Err)).
			Warnf("decoding stopped early: %v", res.Err)
		return
	}
	entry.Info("capture decoded")
}

func writeReports(fs afero.Fs, output string, stdout io.Writer, e report.Emitter, reports []*report.Report) error {
	if output == "" || output == "-" {
		return report.WriteAll(stdout, e, reports)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}
	f, err := fs.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open report output: %w", err)
	}
	if err := report.WriteAll(f, e, reports); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
