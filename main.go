package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gogpu/gg"

	"cover-photo/api"
	"cover-photo/assets"
	"cover-photo/discovery"
	"cover-photo/export"
	"cover-photo/feedback"
	"cover-photo/preset"
	"cover-photo/raster"
	"cover-photo/render"
	"cover-photo/session"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid %s %q", key, v)
	}
	return n
}

func main() {
	port := getenv("PORT", "8080")
	portNum, err := strconv.Atoi(port)
	if err != nil {
		log.Fatalf("invalid PORT %q", port)
	}

	if getenv("LOG_LEVEL", "info") == "debug" {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	presetFile := getenv("PRESET_FILE", "/data/presets.json")
	pm, err := preset.NewManager(presetFile)
	if err != nil {
		log.Fatalf("failed to load presets: %v", err)
	}

	scale, err := strconv.ParseFloat(getenv("EXPORT_SCALE", "2"), 64)
	if err != nil || scale <= 0 {
		log.Fatalf("invalid EXPORT_SCALE %q", os.Getenv("EXPORT_SCALE"))
	}

	var sender feedback.Sender = feedback.LogSender{}
	if url := os.Getenv("FEEDBACK_URL"); url != "" {
		timeout, err := time.ParseDuration(getenv("FEEDBACK_TIMEOUT", "10s"))
		if err != nil {
			log.Fatalf("invalid FEEDBACK_TIMEOUT: %v", err)
		}
		sender = feedback.NewHTTPSender(url, timeout)
	}

	manager := session.NewManagerWithOptions(session.Options{
		Presets: pm,
		Canvas: render.Canvas{
			Width:  intEnv("CANVAS_WIDTH", render.DefaultCanvas.Width),
			Height: intEnv("CANVAS_HEIGHT", render.DefaultCanvas.Height),
		},
		Capturer: func(res assets.Resolver) export.Capturer {
			return raster.New(res, raster.Options{Scale: scale})
		},
		Feedback: sender,
	})
	router := api.RegisterRoutes(manager, pm, staticFiles, api.Options{
		MaxUploadBytes: int64(intEnv("MAX_UPLOAD_BYTES", api.DefaultMaxUploadBytes)),
	})

	if v := os.Getenv("MDNS"); v == "1" || v == "true" {
		server, err := discovery.Advertise(portNum, []string{"cover-photo"})
		if err != nil {
			log.Printf("mDNS disabled: %v", err)
		} else {
			log.Printf("advertising %s on port %d", discovery.ServiceType, portNum)
			go func() {
				sig := make(chan os.Signal, 1)
				signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
				<-sig
				server.Shutdown()
				os.Exit(0)
			}()
		}
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("cover-photo listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
