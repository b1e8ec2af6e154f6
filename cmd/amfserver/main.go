// amfserver exposes AMF compilation as an HTTP service and, optionally, a
// directory watcher: drop an .amfxml file into the watched directory and its
// compile outcome is logged and counted without any request at all.
//
// Usage:
//
//	amfserver [options]
//
// Options:
//
//	-addr <host:port>  listen address (default :8089)
//	-ref <path>         reference config path (default: built-in studio config)
//	-log <path>         log file path (default: ./amfserver.log)
//	-watch <dir>        directory to watch for dropped .amfxml files
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrjoshuak/go-amf/amf"
	"github.com/mrjoshuak/go-amf/internal/workerpool"
)

const (
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

func main() {
	addr := flag.String("addr", ":8089", "listen address")
	refPath := flag.String("ref", "", "reference config path (default: built-in studio config)")
	logPath := flag.String("log", "./amfserver.log", "log file path")
	watchDir := flag.String("watch", "", "directory to watch for dropped .amfxml files")
	flag.Parse()

	logger := newLogger(*logPath)
	defer logger.Sync()

	srv := newServer(amf.Options{RefConfigPath: *refPath}, logger)

	if *watchDir != "" {
		if err := srv.watch(*watchDir); err != nil {
			logger.Fatal("cannot start directory watch", zap.String("dir", *watchDir), zap.Error(err))
		}
		logger.Info("watching directory for dropped amfxml files", zap.String("dir", *watchDir))
	}

	logger.Info("amfserver listening", zap.String("addr", *addr))
	if err := srv.router.Run(*addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

// newLogger builds a zap logger that writes JSON lines through a rotating
// lumberjack writer, the same rotation knobs the teacher's audio tools use
// for their own on-device logs.
func newLogger(path string) *zap.Logger {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.NewMultiWriteSyncer(zapcore.AddSync(rotator), zapcore.AddSync(os.Stdout)),
		zapcore.InfoLevel,
	)
	return zap.New(core)
}

// server is the amfserver HTTP handler set.
type server struct {
	router  *gin.Engine
	logger  *zap.Logger
	opts    amf.Options
	metrics *metrics
	watcher *fsnotify.Watcher
}

func newServer(opts amf.Options, logger *zap.Logger) *server {
	s := &server{
		router:  gin.Default(),
		logger:  logger,
		opts:    opts,
		metrics: newMetrics(),
	}
	s.setupRoutes()
	return s
}

func (s *server) setupRoutes() {
	s.router.GET("/healthz", s.getHealthz)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	s.router.POST("/compile", s.postCompile)
}

func (s *server) getHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// compileRequest names one or more server-local AMF files to compile. The
// service trusts its caller to have already placed the files (and any LUTs
// they reference) on a filesystem it can read; it never accepts file
// contents over the wire.
type compileRequest struct {
	Paths []string `json:"paths"`
}

// compileResult mirrors one path's outcome: either the populated AMFInfo or
// an error message, never both.
type compileResult struct {
	Path  string      `json:"path"`
	Info  *amf.AMFInfo `json:"info,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (s *server) postCompile(c *gin.Context) {
	var req compileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Paths) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paths must contain at least one entry"})
		return
	}

	results := workerpool.Run(len(req.Paths), workerpool.DefaultConfig(), func(i int) (any, error) {
		path := req.Paths[i]
		start := time.Now()
		var info amf.AMFInfo
		_, err := amf.Compile(path, &info, s.opts)
		s.metrics.compileDuration.Observe(time.Since(start).Seconds())
		return compileJob(path, info, err), nil
	})

	out := make([]compileResult, len(results))
	for i, r := range results {
		cr := r.Value.(compileResult)
		out[i] = cr
		s.recordOutcome(cr)
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func compileJob(path string, info amf.AMFInfo, err error) compileResult {
	if err != nil {
		return compileResult{Path: path, Error: err.Error()}
	}
	return compileResult{Path: path, Info: &info}
}

func (s *server) recordOutcome(r compileResult) {
	if r.Error == "" {
		s.metrics.compilesTotal.WithLabelValues("ok").Inc()
		s.logger.Info("compiled", zap.String("path", r.Path), zap.String("clip", r.Info.ClipName))
		return
	}
	kind := errorKindLabel(r.Error)
	s.metrics.compilesTotal.WithLabelValues(kind).Inc()
	s.logger.Warn("compile failed", zap.String("path", r.Path), zap.String("kind", kind), zap.String("error", r.Error))
}

// errorKindLabel pulls the amf.ErrorKind string out of a CompileError's
// formatted message ("amf: <kind>[ at line N]: ...") for the per-kind
// Prometheus breakdown, without needing the service to import amf's
// unexported error plumbing.
func errorKindLabel(msg string) string {
	const prefix = "amf: "
	if !strings.HasPrefix(msg, prefix) {
		return "unknown"
	}
	rest := msg[len(prefix):]
	if idx := strings.IndexAny(rest, ": "); idx >= 0 {
		return rest[:idx]
	}
	return "unknown"
}

// watch starts an fsnotify watch on dir: every .amfxml file that is created
// or written there is compiled immediately, with the outcome logged and
// counted exactly as a /compile request would be. It never responds to
// anything; it is meant for hot folders fed by an NLE or pipeline tool.
func (s *server) watch(dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return fmt.Errorf("cannot watch %s: %w", dir, err)
	}
	s.watcher = w

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if !strings.EqualFold(filepath.Ext(ev.Name), ".amfxml") {
					continue
				}
				start := time.Now()
				var info amf.AMFInfo
				_, err := amf.Compile(ev.Name, &info, s.opts)
				s.metrics.compileDuration.Observe(time.Since(start).Seconds())
				s.recordOutcome(compileJob(ev.Name, info, err))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.logger.Error("watch error", zap.Error(err))
			}
		}
	}()
	return nil
}
