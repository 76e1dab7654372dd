// Package server exposes the station over HTTP: the last frame as PNG, the stored state, and
// Prometheus metrics.
//
// A Server is also a panel; every refresh it receives becomes the new preview.
package server

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	lru "github.com/hashicorp/golang-lru"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/BeatGlow/weather-display"
	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/preview"
	"github.com/BeatGlow/weather-display/store"
)

// DefaultListen is the default listen address.
const DefaultListen = ":8080"

const cacheSize = 16

var validate = validator.New()

// Server is an HTTP server and a display.Panel.
type Server struct {
	app   *fiber.App
	size  image.Point
	store store.Store
	cache *lru.Cache
	log   logrus.FieldLogger

	mu          sync.RWMutex
	frame       *pixel.Gray4Image
	generation  uint64
	transferred time.Time
}

// New returns a server for frames of the given size. Metrics are served from gatherer; a nil
// gatherer serves the default registry.
func New(size image.Point, st store.Store, gatherer prometheus.Gatherer, log logrus.FieldLogger) (*Server, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		size:  size,
		store: st,
		cache: cache,
		log:   log,
		app: fiber.New(fiber.Config{
			AppName:               "weather-display",
			DisableStartupMessage: true,
		}),
	}
	s.app.Get("/healthz", s.healthz)
	s.app.Get("/state", s.state)
	s.app.Get("/preview.png", s.preview)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	return s, nil
}

// Listen serves HTTP on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	if addr == "" {
		addr = DefaultListen
	}
	s.log.WithField("addr", addr).Info("http server listening")
	return s.app.Listen(addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) healthz(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func (s *Server) state(c *fiber.Ctx) error {
	state, err := s.store.Load(c.UserContext())
	if err != nil {
		s.log.WithError(err).Warn("state unavailable")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load state")
	}

	s.mu.RLock()
	generation, transferred := s.generation, s.transferred
	s.mu.RUnlock()

	return c.JSON(fiber.Map{
		"state":       state,
		"generation":  generation,
		"transferred": transferred,
	})
}

// previewQuery holds the query parameters of the preview endpoint.
type previewQuery struct {
	Scale int `validate:"min=1,max=4"`
}

func parsePreviewQuery(c *fiber.Ctx) (previewQuery, error) {
	q := previewQuery{Scale: 1}
	if v := c.Query("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, fmt.Errorf("invalid scale %q", v)
		}
		q.Scale = n
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func (s *Server) preview(c *fiber.Ctx) error {
	q, err := parsePreviewQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.RLock()
	frame, generation := s.frame, s.generation
	s.mu.RUnlock()
	if frame == nil {
		return fiber.NewError(fiber.StatusNotFound, "no frame rendered yet")
	}

	key := strconv.FormatUint(generation, 10) + "/" + strconv.Itoa(q.Scale)
	if b, ok := s.cache.Get(key); ok {
		return sendPNG(c, b.([]byte))
	}

	var buf bytes.Buffer
	if err = preview.Encode(&buf, frame, q.Scale); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to encode frame")
	}
	s.cache.Add(key, buf.Bytes())
	return sendPNG(c, buf.Bytes())
}

func sendPNG(c *fiber.Ctx, b []byte) error {
	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	return c.Send(b)
}

func (s *Server) String() string {
	return "http preview"
}

// Bounds of the frames served.
func (s *Server) Bounds() image.Rectangle {
	return image.Rectangle{Max: s.size}
}

// PowerOn is a no-op.
func (s *Server) PowerOn() error { return nil }

// Clear is a no-op; the previous frame is served until the next transfer.
func (s *Server) Clear() error { return nil }

// PowerOff is a no-op.
func (s *Server) PowerOff() error { return nil }

// Transfer keeps a copy of fb as the current preview.
func (s *Server) Transfer(fb *pixel.Gray4Image) error {
	frame := fb.Clone()
	s.mu.Lock()
	s.frame = frame
	s.generation++
	s.transferred = time.Now()
	s.mu.Unlock()
	return nil
}

// Close shuts the server down.
func (s *Server) Close() error {
	return s.app.Shutdown()
}

var _ display.Panel = (*Server)(nil)
