// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package server exposes arrowhead meshes over HTTP.
//
// Routes:
//
//	GET /healthz        liveness probe
//	GET /v1/mesh        encoded vertex and index buffers (render.EncodeMesh)
//	GET /v1/stats       JSON mesh statistics
//	GET /v1/curve.png   software-rendered PNG
//	GET /metrics        Prometheus metrics
//
// Mesh routes accept the query parameters variant, depth, scale, color
// and gradient. Missing parameters take the server defaults.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/arrowhead"
	"github.com/gogpu/arrowhead/internal/cache"
	"github.com/gogpu/arrowhead/internal/config"
	"github.com/gogpu/arrowhead/render"
)

// MaxImageSize bounds the width and height of /v1/curve.png.
const MaxImageSize = 4096

// ErrBadRequest marks query parameters that could not be used.
var ErrBadRequest = errors.New("server: bad request")

// Option configures a Server.
type Option func(*Server)

// WithDefaults sets the parameters used for omitted query values.
func WithDefaults(p arrowhead.Params) Option {
	return func(s *Server) {
		s.defaults = p
	}
}

// WithMaxDepth caps the depth a client may request.
func WithMaxDepth(d int) Option {
	return func(s *Server) {
		s.maxDepth = d
	}
}

// WithRegistry sets the Prometheus registry served on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		s.registry = reg
	}
}

// WithRaster sets the default PNG size and raster options.
func WithRaster(width, height int, opts ...render.RasterOption) Option {
	return func(s *Server) {
		s.width, s.height = width, height
		s.rasterOpts = opts
	}
}

// Server serves meshes from a cache.
type Server struct {
	meshes     *cache.Meshes
	defaults   arrowhead.Params
	maxDepth   int
	registry   *prometheus.Registry
	metrics    *Metrics
	width      int
	height     int
	rasterOpts []render.RasterOption
	router     chi.Router
}

// New builds the router. Without WithRegistry a fresh registry is used.
// The default depth is clamped to the maximum depth.
func New(meshes *cache.Meshes, opts ...Option) *Server {
	s := &Server{
		meshes:   meshes,
		defaults: arrowhead.DefaultParams(),
		maxDepth: 10,
		width:    512,
		height:   512,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.defaults.Depth = min(s.defaults.Depth, s.maxDepth)
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = NewMetrics(s.registry, meshes)

	r := chi.NewRouter()
	r.Get("/healthz", s.healthz)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/mesh", s.mesh)
		r.Get("/stats", s.stats)
		r.Get("/curve.png", s.png)
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	arrowhead.Logger().Info("server: listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) mesh(w http.ResponseWriter, r *http.Request) {
	p, err := s.params(r.URL.Query())
	if err != nil {
		s.fail(w, "mesh", err)
		return
	}
	blob, source, err := s.blob(r.Context(), p)
	if err != nil {
		s.fail(w, "mesh", err)
		return
	}
	n := arrowhead.PointCount(p.Depth)
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("X-Arrowhead-Source", source)
	w.Header().Set("X-Arrowhead-Vertices", strconv.Itoa(n))
	w.Header().Set("Content-Length", strconv.Itoa(len(blob)))
	_, _ = w.Write(blob)
	s.metrics.vertices.Add(float64(n))
	s.metrics.requests.WithLabelValues("mesh", source, "200").Inc()
}

// statsResponse is the body of /v1/stats.
type statsResponse struct {
	Variant  string     `json:"variant"`
	Depth    int        `json:"depth"`
	Vertices int        `json:"vertices"`
	Indices  int        `json:"indices"`
	Segments int        `json:"segments"`
	Min      [3]float32 `json:"min"`
	Max      [3]float32 `json:"max"`
	Source   string     `json:"source"`
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	p, err := s.params(r.URL.Query())
	if err != nil {
		s.fail(w, "stats", err)
		return
	}
	mesh, source, err := s.meshFor(r.Context(), p)
	if err != nil {
		s.fail(w, "stats", err)
		return
	}
	lo, hi := mesh.Bounds()
	resp := statsResponse{
		Variant:  p.Variant.String(),
		Depth:    p.Depth,
		Vertices: mesh.VertexCount(),
		Indices:  mesh.IndexCount(),
		Segments: mesh.SegmentCount(),
		Min:      [3]float32{lo.X, lo.Y, lo.Z},
		Max:      [3]float32{hi.X, hi.Y, hi.Z},
		Source:   source,
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
	s.metrics.requests.WithLabelValues("stats", source, "200").Inc()
}

func (s *Server) png(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := s.params(q)
	if err != nil {
		s.fail(w, "png", err)
		return
	}
	width, err := intParam(q, "width", s.width, 1, MaxImageSize)
	if err != nil {
		s.fail(w, "png", err)
		return
	}
	height, err := intParam(q, "height", s.height, 1, MaxImageSize)
	if err != nil {
		s.fail(w, "png", err)
		return
	}
	opts := append([]render.RasterOption(nil), s.rasterOpts...)
	if v := q.Get("projection"); v != "" {
		proj, err := render.ParseProjection(v)
		if err != nil {
			s.fail(w, "png", fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}
		opts = append(opts, render.WithProjection(proj))
	}

	mesh, source, err := s.meshFor(r.Context(), p)
	if err != nil {
		s.fail(w, "png", err)
		return
	}
	raster := render.NewRaster(width, height, opts...)
	defer raster.Close()
	if err := raster.Draw(mesh); err != nil {
		if errors.Is(err, render.ErrEmptyMesh) {
			err = fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		s.fail(w, "png", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Arrowhead-Source", source)
	if err := raster.EncodePNG(w); err != nil {
		arrowhead.Logger().Warn("server: png write failed", "error", err)
		return
	}
	s.metrics.requests.WithLabelValues("png", source, "200").Inc()
}

func (s *Server) blob(ctx context.Context, p arrowhead.Params) ([]byte, string, error) {
	start := time.Now()
	blob, source, err := s.meshes.Blob(ctx, p)
	if err == nil {
		s.metrics.duration.WithLabelValues(p.Variant.String(), source).Observe(time.Since(start).Seconds())
	}
	return blob, source, err
}

func (s *Server) meshFor(ctx context.Context, p arrowhead.Params) (*arrowhead.Mesh, string, error) {
	start := time.Now()
	mesh, source, err := s.meshes.Mesh(ctx, p)
	if err != nil {
		return nil, "", err
	}
	s.metrics.duration.WithLabelValues(p.Variant.String(), source).Observe(time.Since(start).Seconds())
	return mesh, source, nil
}

// params reads mesh parameters from the query over the defaults.
func (s *Server) params(q url.Values) (arrowhead.Params, error) {
	p := s.defaults
	if v := q.Get("variant"); v != "" {
		variant, err := arrowhead.ParseVariant(v)
		if err != nil {
			return p, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		p.Variant = variant
	}
	depth, err := intParam(q, "depth", p.Depth, 0, s.maxDepth)
	if err != nil {
		return p, err
	}
	p.Depth = depth
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return p, fmt.Errorf("%w: scale %q", ErrBadRequest, v)
		}
		p.Scale = float32(f)
	}
	if v := q.Get("color"); v != "" {
		c, err := config.ParseColor(v)
		if err != nil {
			return p, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		p.Color = c
	}
	if v := q.Get("gradient"); v != "" {
		g, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: gradient %q", ErrBadRequest, v)
		}
		p.Gradient = g
	}
	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return p, nil
}

func intParam(q url.Values, name string, def, lo, hi int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("%w: %s %q not in [%d, %d]", ErrBadRequest, name, v, lo, hi)
	}
	return n, nil
}

func (s *Server) fail(w http.ResponseWriter, route string, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, ErrBadRequest) {
		code = http.StatusBadRequest
	} else {
		arrowhead.Logger().Error("server: request failed", "route", route, "error", err)
	}
	s.metrics.requests.WithLabelValues(route, "", strconv.Itoa(code)).Inc()
	http.Error(w, err.Error(), code)
}
