package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"kstep/cfg"
	"kstep/core/logging"
	"kstep/core/render"
	"kstep/pkg/datagen"
	"kstep/pkg/kmeans"
	"kstep/pkg/kmeans/common"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const errMissingRequired = "Data and k are required."

// Default k for the generated page at '/'.
const defaultPageK = 3

type handler struct {
	cfg     cfg.Config
	log     *zap.Logger
	mux     *http.ServeMux
	limiter *rate.Limiter
	metrics *metrics
	gather  prometheus.Gatherer
}

type route struct {
	method string
	fn     http.HandlerFunc
	// Limited routes go through the rate limiter.
	limited bool
}

func (h *handler) setRoutes() {
	routes := map[string]route{
		"/":                 {http.MethodGet, h.index, true},
		"/api/kmeans":       {http.MethodPost, h.runKMeans, true},
		"/api/kmeans/chart": {http.MethodPost, h.runKMeansChart, true},
		"/api/dataset":      {http.MethodGet, h.dataset, true},
		"/metrics":          {http.MethodGet, promhttp.HandlerFor(h.gather, promhttp.HandlerOpts{}).ServeHTTP, false},
	}
	for path, rt := range routes {
		var next http.Handler = h.allowMethod(rt.method, rt.fn)
		if rt.limited {
			next = h.rateLimit(next)
		}
		h.mux.Handle(path, h.instrument(path, h.exactPath(path, next)))
		h.log.Debug("route is up", zap.String(logging.FieldRoute, path))
	}
}

// statusRecorder keeps the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *handler) instrument(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		h.metrics.latency.WithLabelValues(path).Observe(time.Since(start).Seconds())
		h.metrics.requests.WithLabelValues(path, strconv.Itoa(rec.status)).Inc()
		h.log.Debug("request served",
			zap.String(logging.FieldRoute, r.URL.Path),
			zap.Int(logging.FieldStatus, rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// exactPath answers 404 for anything but 'path' itself. ServeMux sends
// every unmatched path to "/", and those must not reach the method check or
// the rate limiter.
func (h *handler) exactPath(path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			h.writeJSONError(w, http.StatusNotFound, "not found")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) allowMethod(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			h.writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter != nil && !h.limiter.Allow() {
			h.writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// tryUnpackRequestOptions will try to decode the request body into
// <targetOpt>. If the task fails, then an automatic error response is sent
// to the requester and false is returned. Else, nothing is written to the
// requester and the return is true.
func (h *handler) tryUnpackRequestOptions(
	w http.ResponseWriter, r *http.Request, targetOpt interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, h.cfg.API.MaxBodyBytes)
	err := json.NewDecoder(body).Decode(targetOpt)
	if err == nil {
		return true
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return false
	}
	h.writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
	return false
}

// statusFor maps engine errors to client errors, anything else is ours.
func statusFor(err error) int {
	switch {
	case errors.Is(err, kmeans.ErrUnsupportedMethod),
		errors.Is(err, kmeans.ErrCentroidCount),
		errors.Is(err, kmeans.ErrEmptyData),
		errors.Is(err, kmeans.ErrInvalidK):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// run executes one k-means run with logging and metrics attached. The
// returned status is only meaningful when err != nil.
func (h *handler) run(args kmeans.RunArgs) (kmeans.History, int, error) {
	runLog := h.log.With(
		zap.String(logging.FieldRunID, uuid.NewString()),
		zap.Stringer(logging.FieldMethod, args.Method),
		zap.Int(logging.FieldK, args.K),
		zap.Int(logging.FieldPoints, len(args.Points)),
	)

	start := time.Now()
	hist, err := kmeans.Run(args)
	if err != nil {
		status := statusFor(err)
		h.metrics.runs.WithLabelValues(args.Method.String(), "error").Inc()
		if status == http.StatusInternalServerError {
			runLog.Error("kmeans run failed", zap.Error(err))
		} else {
			runLog.Warn("kmeans run rejected", zap.Error(err))
		}
		return nil, status, err
	}

	h.metrics.runs.WithLabelValues(args.Method.String(), "ok").Inc()
	h.metrics.steps.Observe(float64(hist.Steps()))
	runLog.Info("kmeans run finished",
		zap.Int(logging.FieldRecords, len(hist)),
		zap.Bool(logging.FieldConverged, hist.Converged(args.Tolerance)),
		zap.Duration("duration", time.Since(start)),
	)
	return hist, 0, nil
}

// parseRun unpacks and validates a k-means request. On false, a response
// has already been written.
func (h *handler) parseRun(w http.ResponseWriter, r *http.Request) (kmeans.RunArgs, bool) {
	var req kmeansRequest
	if !h.tryUnpackRequestOptions(w, r, &req) {
		return kmeans.RunArgs{}, false
	}
	if req.missingRequired() {
		h.writeJSONError(w, http.StatusBadRequest, errMissingRequired)
		return kmeans.RunArgs{}, false
	}
	args, err := req.toRunArgs(h.cfg.KMeans)
	if err != nil {
		h.log.Debug("bad kmeans request", zap.Error(err))
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
		return kmeans.RunArgs{}, false
	}
	return args, true
}

// POST /api/kmeans.
func (h *handler) runKMeans(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseRun(w, r)
	if !ok {
		return
	}
	hist, status, err := h.run(args)
	if err != nil {
		h.writeJSONError(w, status, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, kmeansResponse{History: historyToSteps(hist)})
}

// POST /api/kmeans/chart.
func (h *handler) runKMeansChart(w http.ResponseWriter, r *http.Request) {
	args, ok := h.parseRun(w, r)
	if !ok {
		return
	}
	hist, status, err := h.run(args)
	if err != nil {
		h.writeJSONError(w, status, err.Error())
		return
	}
	h.renderPage(w, render.PageArgs{
		Title:     fmt.Sprintf("k-means (%s, k=%d)", args.Method, hist[0].K()),
		Points:    args.Points,
		History:   hist,
		Tolerance: args.Tolerance,
	})
}

// GET /?n=&k=&method=&seed=
func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	method, err := kmeans.ParseMethod(q.method)
	if err != nil {
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	rnd := common.NewRand(q.seed)
	points := datagen.Uniform(datagen.UniformArgs{N: q.n, Rand: rnd})
	args := kmeans.RunArgs{
		Points:        points,
		K:             q.k,
		Method:        method,
		Rand:          rnd,
		MaxIterations: h.cfg.KMeans.MaxIterations,
		Tolerance:     h.cfg.KMeans.Tolerance,
		MaxK:          h.cfg.KMeans.MaxK,
	}
	hist, status, err := h.run(args)
	if err != nil {
		h.writeJSONError(w, status, err.Error())
		return
	}
	h.renderPage(w, render.PageArgs{
		Title:     fmt.Sprintf("k-means (%s, k=%d, %d points)", method, hist[0].K(), len(points)),
		Points:    points,
		History:   hist,
		Tolerance: args.Tolerance,
	})
}

// GET /api/dataset?n=&seed=
func (h *handler) dataset(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseQuery(r)
	if err != nil {
		h.writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	points := datagen.Uniform(datagen.UniformArgs{N: q.n, Rand: common.NewRand(q.seed)})
	h.writeJSON(w, http.StatusOK, datasetResponse{Data: points})
}

func (h *handler) renderPage(w http.ResponseWriter, args render.PageArgs) {
	var buf bytes.Buffer
	if err := render.Page(&buf, args); err != nil {
		h.log.Error("failed to render page", zap.Error(err))
		h.writeJSONError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	h.writeHTML(w, buf.Bytes())
}

type pageQuery struct {
	n      int
	k      int
	method string
	seed   int64
}

// parseQuery reads n, k, method and seed from the query string. n is
// clamped to [1, Dataset.MaxPoints].
func (h *handler) parseQuery(r *http.Request) (pageQuery, error) {
	q := pageQuery{
		n:      h.cfg.Dataset.DefaultPoints,
		k:      defaultPageK,
		method: kmeans.MethodRandom.String(),
		seed:   h.cfg.KMeans.Seed,
	}
	values := r.URL.Query()
	var err error
	if s := values.Get("n"); s != "" {
		if q.n, err = strconv.Atoi(s); err != nil {
			return q, fmt.Errorf("query n: %w", err)
		}
	}
	if s := values.Get("k"); s != "" {
		if q.k, err = strconv.Atoi(s); err != nil {
			return q, fmt.Errorf("query k: %w", err)
		}
	}
	if s := values.Get("seed"); s != "" {
		if q.seed, err = strconv.ParseInt(s, 10, 64); err != nil {
			return q, fmt.Errorf("query seed: %w", err)
		}
		if q.seed == 0 {
			return q, fmt.Errorf("query seed: %w", errZeroSeed)
		}
	}
	if s := values.Get("method"); s != "" {
		q.method = s
	}
	if q.n < 1 {
		q.n = 1
	}
	if q.n > h.cfg.Dataset.MaxPoints {
		q.n = h.cfg.Dataset.MaxPoints
	}
	return q, nil
}
