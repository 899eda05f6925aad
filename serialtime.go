// Serial peripheral time synchronization

package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/mmcloughlin/profile"
	"github.com/prometheus/client_golang/prometheus"

	"example.com/serial-time/base/logbase"
	"example.com/serial-time/base/timemath"

	"example.com/serial-time/benchmark"

	"example.com/serial-time/core/sync"

	"example.com/serial-time/driver/clocks"
	"example.com/serial-time/driver/serial"

	"example.com/serial-time/net/frame"

	"example.com/serial-time/service"
)

const (
	logLevelQuiet = iota
	logLevelDefault
	logLevelVerbose

	benchmarkDefaultRuns = 10
)

func initLogger(logLevel int) {
	var h slog.Handler
	if logLevel == logLevelQuiet {
		h = slog.DiscardHandler
	} else {
		var (
			addSource   bool
			level       slog.Leveler
			replaceAttr func(groups []string, a slog.Attr) slog.Attr
		)
		if logLevel == logLevelVerbose {
			_, f, _, ok := runtime.Caller(0)
			var basepath string
			if ok {
				basepath = filepath.Dir(f)
			}
			addSource = true
			level = slog.LevelDebug
			replaceAttr = func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.SourceKey {
					source := a.Value.Any().(*slog.Source)
					if basepath == "" {
						source.File = filepath.Base(source.File)
					} else {
						relpath, err := filepath.Rel(basepath, source.File)
						if err != nil {
							source.File = filepath.Base(source.File)
						} else {
							source.File = relpath
						}
					}
				}
				return a
			}
		}
		h = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource:   addSource,
			Level:       level,
			ReplaceAttr: replaceAttr,
		})
	}
	slog.SetDefault(slog.New(h))
}

func showInfo() {
	bi, ok := debug.ReadBuildInfo()
	if ok {
		fmt.Print(bi.String())
	}
}

func loadConfig(configFile string) service.Config {
	if configFile == "" {
		return service.DefaultConfig()
	}
	raw, err := os.ReadFile(configFile)
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to load configuration", slog.Any("error", err))
	}
	cfg, err := service.LoadConfig(raw)
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to decode configuration", slog.Any("error", err))
	}
	return cfg
}

func writeMetrics(log *slog.Logger, file string, reg *prometheus.Registry) {
	if file == "" {
		return
	}
	err := prometheus.WriteToTextfile(file, reg)
	if err != nil {
		log.LogAttrs(context.Background(), slog.LevelError, "failed to write metrics",
			slog.String("file", file), slog.Any("error", err))
	}
}

func runSync(configFile, device string) {
	ctx := context.Background()
	log := slog.Default()

	cfg := loadConfig(configFile)
	if device != "" {
		cfg.Device = device
	}

	reg := prometheus.NewRegistry()
	s := &service.Syncer{
		Log:     log,
		Clock:   clocks.NewSystemClock(log),
		Lister:  serial.NewPlatformLister(),
		Open:    serial.Open,
		Metrics: sync.NewMetrics(reg),
	}
	_, err := s.Run(ctx, cfg)
	writeMetrics(log, cfg.MetricsFile, reg)
	if err != nil {
		logbase.FatalContext(ctx, log, "sync failed", slog.Any("error", err))
	}
}

func runDevices(configFile string) {
	log := slog.Default()

	cfg := loadConfig(configFile)
	r, err := serial.NewResolver(log, serial.NewPlatformLister(), cfg.DevicePattern)
	if err != nil {
		logbase.Fatal(log, "invalid device pattern", slog.Any("error", err))
	}
	ids, err := r.Candidates()
	if err != nil {
		logbase.Fatal(log, "failed to list serial devices", slog.Any("error", err))
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func runDecode(s string) {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to parse frame", slog.Any("error", err))
	}
	secs, err := frame.DecodeFrame(b)
	if err != nil {
		logbase.Fatal(slog.Default(), "failed to decode frame", slog.Any("error", err))
	}
	h, m, sec := frame.TimeOfDay(secs)
	fmt.Printf("%02d:%02d:%02d (%d s)\n", h, m, sec, secs)
}

func runBenchmark(n int, minLead time.Duration, cpuProfile bool) {
	ctx := context.Background()
	log := slog.Default()

	if cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	lclk := clocks.NewSystemClock(log)
	r, err := benchmark.RunSleepBenchmark(ctx, log, lclk, n, minLead)
	if err != nil {
		logbase.FatalContext(ctx, log, "benchmark failed", slog.Any("error", err))
	}
	log.LogAttrs(ctx, slog.LevelInfo, "wake-up lateness",
		slog.Int64("samples", r.Histogram.TotalCount()),
		slog.Int("early", r.Early),
		slog.Int("missed", r.Missed),
	)
	_, _ = r.Histogram.PercentilesPrint(os.Stdout, 1, 1.0)
}

func exitWithUsage() {
	fmt.Println("usage: serialtime info | sync [-config file] [-device dev] | " +
		"devices [-config file] | decode <hex frame> | benchmark [-n runs] [-lead seconds] [-profile]")
	os.Exit(1)
}

func main() {
	var (
		quiet      bool
		verbose    bool
		configFile string
		device     string
		runs       int
		leadTime   float64
		cpuProfile bool
	)

	infoFlags := flag.NewFlagSet("info", flag.ExitOnError)
	syncFlags := flag.NewFlagSet("sync", flag.ExitOnError)
	devicesFlags := flag.NewFlagSet("devices", flag.ExitOnError)
	decodeFlags := flag.NewFlagSet("decode", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	syncFlags.BoolVar(&quiet, "quiet", false, "Disable logging")
	syncFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	syncFlags.StringVar(&configFile, "config", "", "Config file")
	syncFlags.StringVar(&device, "device", "", "Serial device, skips discovery")

	devicesFlags.BoolVar(&quiet, "quiet", false, "Disable logging")
	devicesFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	devicesFlags.StringVar(&configFile, "config", "", "Config file")

	benchmarkFlags.BoolVar(&quiet, "quiet", false, "Disable logging")
	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.IntVar(&runs, "n", benchmarkDefaultRuns, "Number of second boundaries")
	benchmarkFlags.Float64Var(&leadTime, "lead", sync.DefaultMinLeadTime.Seconds(), "Minimum lead time in seconds")
	benchmarkFlags.BoolVar(&cpuProfile, "profile", false, "Write a CPU profile")

	logLevel := func() int {
		if quiet && verbose {
			exitWithUsage()
		}
		if quiet {
			return logLevelQuiet
		}
		if verbose {
			return logLevelVerbose
		}
		return logLevelDefault
	}

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case infoFlags.Name():
		err := infoFlags.Parse(os.Args[2:])
		if err != nil || infoFlags.NArg() != 0 {
			exitWithUsage()
		}
		showInfo()
	case syncFlags.Name():
		err := syncFlags.Parse(os.Args[2:])
		if err != nil || syncFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(logLevel())
		runSync(configFile, device)
	case devicesFlags.Name():
		err := devicesFlags.Parse(os.Args[2:])
		if err != nil || devicesFlags.NArg() != 0 {
			exitWithUsage()
		}
		initLogger(logLevel())
		runDevices(configFile)
	case decodeFlags.Name():
		err := decodeFlags.Parse(os.Args[2:])
		if err != nil || decodeFlags.NArg() != 1 {
			exitWithUsage()
		}
		initLogger(logLevelDefault)
		runDecode(decodeFlags.Arg(0))
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if runs < 1 || leadTime < 0 {
			exitWithUsage()
		}
		initLogger(logLevel())
		runBenchmark(runs, timemath.Duration(leadTime), cpuProfile)
	default:
		exitWithUsage()
	}
}
