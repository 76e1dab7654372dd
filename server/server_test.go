package server

import (
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/weather-display/pixel"
	"github.com/BeatGlow/weather-display/store"
	"github.com/BeatGlow/weather-display/weather"
)

func testServer(t *testing.T) (*Server, *store.Memory, *prometheus.Registry) {
	t.Helper()
	st := store.NewMemory(weather.DefaultHours)
	reg := prometheus.NewRegistry()
	log, _ := logtest.NewNullLogger()
	s, err := New(image.Pt(8, 4), st, reg, log)
	require.NoError(t, err)
	return s, st, reg
}

func get(t *testing.T, s *Server, target string) *http.Response {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	return resp
}

func TestHealthz(t *testing.T) {
	s, _, _ := testServer(t)
	resp := get(t, s, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "ok", string(body))
}

func TestPreview(t *testing.T) {
	s, _, _ := testServer(t)

	resp := get(t, s, "/preview.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	fb := pixel.NewGray4Image(8, 4)
	fb.Clear()
	fb.SetGray4(0, 0, pixel.Black)
	require.NoError(t, s.Transfer(fb))

	// Later drawing into the caller's framebuffer must not leak into the preview.
	fb.SetGray4(1, 0, pixel.Black)

	for scale, size := range map[string]image.Point{"": {8, 4}, "?scale=1": {8, 4}, "?scale=3": {24, 12}} {
		resp = get(t, s, "/preview.png"+scale)
		require.Equal(t, http.StatusOK, resp.StatusCode, scale)
		assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

		img, err := png.Decode(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, size, img.Bounds().Size())

		g := img.(*image.Gray)
		assert.EqualValues(t, 0x00, g.GrayAt(0, 0).Y)
		assert.EqualValues(t, 0xff, g.GrayAt(size.X-1, size.Y-1).Y)
		assert.EqualValues(t, 0xff, g.GrayAt(size.X/8, 0).Y)
	}
	assert.Equal(t, 2, s.cache.Len())
}

func TestPreviewScaleValidation(t *testing.T) {
	s, _, _ := testServer(t)
	require.NoError(t, s.Transfer(pixel.NewGray4Image(8, 4)))

	for _, q := range []string{"0", "5", "-1", "big"} {
		resp := get(t, s, "/preview.png?scale="+q)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, q)
	}
}

func TestPreviewGeneration(t *testing.T) {
	s, _, _ := testServer(t)

	fb := pixel.NewGray4Image(8, 4)
	fb.Clear()
	require.NoError(t, s.Transfer(fb))
	resp := get(t, s, "/preview.png")
	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.EqualValues(t, 0xff, img.(*image.Gray).GrayAt(0, 0).Y)

	fb.Fill(pixel.Black)
	require.NoError(t, s.Transfer(fb))
	resp = get(t, s, "/preview.png")
	img, err = png.Decode(resp.Body)
	require.NoError(t, err)
	assert.EqualValues(t, 0x00, img.(*image.Gray).GrayAt(0, 0).Y)
}

func TestState(t *testing.T) {
	s, st, _ := testServer(t)

	state := store.Initial(weather.DefaultHours)
	state.Previous.Current = 72
	state.Previous.Valid = true
	state.Previous.Condition = weather.Sunny
	state.Battery = 81
	state.Failures = 2
	require.NoError(t, st.Save(context.Background(), state))
	require.NoError(t, s.Transfer(pixel.NewGray4Image(8, 4)))

	resp := get(t, s, "/state")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		State      store.State `json:"state"`
		Generation uint64      `json:"generation"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 72, body.State.Previous.Current)
	assert.Equal(t, weather.Sunny, body.State.Previous.Condition)
	assert.Equal(t, 81, body.State.Battery)
	assert.Equal(t, 2, body.State.Failures)
	assert.EqualValues(t, 1, body.Generation)
}

func TestMetrics(t *testing.T) {
	s, _, reg := testServer(t)
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "weather_display_test_total",
		Help: "Test counter.",
	})
	reg.MustRegister(counter)
	counter.Add(3)

	resp := get(t, s, "/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.Contains(string(body), "weather_display_test_total 3"), string(body))
}

func TestPanel(t *testing.T) {
	s, _, _ := testServer(t)
	assert.Equal(t, image.Rect(0, 0, 8, 4), s.Bounds())
	assert.NoError(t, s.PowerOn())
	assert.NoError(t, s.Clear())
	assert.NoError(t, s.PowerOff())
}
