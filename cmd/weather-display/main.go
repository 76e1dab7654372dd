package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/acquire"
	"github.com/BeatGlow/weather-display/battery"
	"github.com/BeatGlow/weather-display/change"
	"github.com/BeatGlow/weather-display/config"
	"github.com/BeatGlow/weather-display/fonts"
	"github.com/BeatGlow/weather-display/framebuffer"
	"github.com/BeatGlow/weather-display/freshness"
	"github.com/BeatGlow/weather-display/icons"
	"github.com/BeatGlow/weather-display/internal/scheduler"
	"github.com/BeatGlow/weather-display/layout"
	"github.com/BeatGlow/weather-display/preview"
	"github.com/BeatGlow/weather-display/server"
	"github.com/BeatGlow/weather-display/station"
	"github.com/BeatGlow/weather-display/store"
	"github.com/BeatGlow/weather-display/store/sqlite"
)

func main() {
	os.Exit(run())
}

// run wires the station and blocks until it is stopped. It returns the process exit code;
// deferred closers run before the process exits.
func run() int {
	configFlag := flag.String("config", "", "Configuration file (YAML)")
	onceFlag := flag.Bool("once", false, "Run a single update cycle and exit")
	dumpFlag := flag.Bool("dump-config", false, "Print the effective configuration and exit")
	flag.Parse()

	c, err := config.Load(*configFlag)
	if err != nil {
		return fail(err)
	}
	if *dumpFlag {
		if err = c.Dump(os.Stdout); err != nil {
			return fail(err)
		}
		return 0
	}

	log, err := c.Logging.Logger()
	if err != nil {
		return fail(err)
	}

	if needsHost(c) {
		if _, err = host.Init(); err != nil {
			return fail(err)
		}
	}

	fb, err := display.NewFramebuffer(c.Panel.Width, c.Panel.Height)
	if err != nil {
		return fail(err)
	}
	size := fb.Bounds().Size()

	var st store.Store
	switch c.Store.Kind {
	case config.StoreSQLite:
		db, err := sqlite.Open(c.Store.Path, c.Precipitation.Hours)
		if err != nil {
			return fail(err)
		}
		defer db.Close()
		st = db
	default:
		st = store.NewMemory(c.Precipitation.Hours)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := station.NewMetrics(reg)
	if err != nil {
		return fail(err)
	}

	var srv *server.Server
	if c.Panel.Has(config.OutputHTTP) {
		if srv, err = server.New(size, st, reg, log); err != nil {
			return fail(err)
		}
	}

	panel, err := openPanel(c, size, srv, log)
	if err != nil {
		return fail(err)
	}
	defer panel.Close()
	log.WithField("panel", panel.String()).Info("panel ready")

	reader, err := openBattery(c.Battery)
	if err != nil {
		return fail(err)
	}

	var chart layout.Chart
	if err = chart.Set(c.Chart.Style); err != nil {
		return fail(err)
	}

	s, err := station.New(station.Config{
		Fetcher: acquire.New(acquire.Config{
			URL:        c.API.URL,
			Timeout:    c.API.Timeout,
			Retries:    c.API.Retries,
			RetryDelay: c.API.RetryDelay,
			Hours:      c.Precipitation.Hours,
		}, log),
		Battery:     reader,
		Store:       st,
		Compositor:  layout.New(layout.Default.Scaled(size), chart, fonts.MustLoad(), icons.Default()),
		Panel:       panel,
		Framebuffer: fb,
		Detector:    change.New(c.Battery.Tolerance),
		Freshness:   freshness.Calculator{Threshold: c.ThresholdMinutes()},
		Hours:       c.Precipitation.Hours,
		Metrics:     metrics,
		Log:         log,
	})
	if err != nil {
		return fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *onceFlag {
		if res, err := s.Cycle(ctx); err != nil {
			log.WithError(err).WithField("cycle", res.ID).Error("cycle failed")
			return 1
		}
		return 0
	}

	sched := scheduler.New(c.UpdateInterval, log)
	if err = sched.Start(ctx, func(ctx context.Context) {
		res, err := s.Cycle(ctx)
		if err != nil {
			log.WithError(err).WithField("cycle", res.ID).Error("cycle failed")
		}
	}); err != nil {
		log.WithError(err).Error("scheduler")
		return 1
	}
	defer sched.Stop()

	if srv != nil {
		go func() {
			if err := srv.Listen(c.Server.Listen); err != nil {
				log.WithError(err).Error("http server stopped")
				stop()
			}
		}()
	}

	<-ctx.Done()
	log.Info("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err = srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("http server shutdown")
		}
	}
	return 0
}

// needsHost reports whether any configured component talks to local hardware through periph.
func needsHost(c *config.Config) bool {
	switch {
	case c.Panel.PowerPin != "":
		return true
	case c.Battery.Source == config.BatteryADC, c.Battery.Source == config.BatteryINA260:
		return true
	}
	return false
}

// openPanel builds the panel fan-out for the configured outputs. srv is the HTTP panel, if
// enabled.
func openPanel(c *config.Config, size image.Point, srv *server.Server, log logrus.FieldLogger) (display.Panel, error) {
	var panels display.Multi
	for _, output := range c.Panel.Outputs {
		switch output {
		case config.OutputFramebuffer:
			p, err := openFramebuffer(c.Panel)
			if err != nil {
				panels.Close()
				return nil, err
			}
			panels = append(panels, p)
		case config.OutputPNG:
			panels = append(panels, &preview.PNG{Path: c.Panel.PNGPath, Size: size})
		case config.OutputTerminal:
			panels = append(panels, preview.NewTerminal(nil, size, c.Panel.TerminalColumns))
		case config.OutputHTTP:
			panels = append(panels, srv)
		}
	}

	for _, p := range panels {
		if b := p.Bounds(); b.Size() != size {
			panels.Close()
			return nil, fmt.Errorf("%w: %s is %s, frame is %s", display.ErrBounds, p, b.Size(), size)
		}
		log.WithField("output", p.String()).Debug("output enabled")
	}
	if len(panels) == 1 {
		return panels[0], nil
	}
	return panels, nil
}

func openFramebuffer(c config.PanelConfig) (display.Panel, error) {
	rotation, err := display.ParseRotation(c.Rotation)
	if err != nil {
		return nil, err
	}
	p, err := framebuffer.Open(c.Framebuffer)
	if err != nil {
		return nil, err
	}
	if c.PowerPin != "" {
		pin := gpioreg.ByName(c.PowerPin)
		if pin == nil {
			_ = p.Close()
			return nil, fmt.Errorf("no such power pin %q", c.PowerPin)
		}
		p = display.Powered{Panel: p, Pin: pin, Settle: c.PowerSettle}
	}
	if rotation != display.NoRotation {
		p = display.Rotated{Panel: p, Rotation: rotation}
	}
	return p, nil
}

func openBattery(c config.BatteryConfig) (battery.Reader, error) {
	switch c.Source {
	case config.BatteryADC:
		return battery.OpenADC(c.Pin, c.Divider)
	case config.BatterySysfs:
		return battery.Sysfs{Path: c.SysfsPath}, nil
	case config.BatteryINA260:
		bus, err := i2creg.Open(c.I2CBus)
		if err != nil {
			return nil, err
		}
		return battery.NewINA260(bus, c.I2CAddress), nil
	default:
		return battery.Fixed(c.Fixed), nil
	}
}

// fail reports err on stderr and returns the exit code for it.
func fail(err error) int {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	return 1
}
