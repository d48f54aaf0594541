package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"camo-inv-go/internal/assembler"
	"camo-inv-go/internal/catalog"
	"camo-inv-go/internal/enricher"
	"camo-inv-go/internal/extractor"
	"camo-inv-go/internal/inventory"
	"camo-inv-go/internal/logger"
	"camo-inv-go/internal/pipeline"
	"camo-inv-go/internal/search"
	"camo-inv-go/internal/transcription"
	"camo-inv-go/internal/types"
)

// processResponse is the envelope plus the identifiers generated when the
// caller asks for immediate persistence.
type processResponse struct {
	types.Envelope
	SKUID       string `json:"sku_id,omitempty"`
	InventoryID string `json:"inventory_id,omitempty"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "camo-inv-go").Info("starting service")

	// collaborators are constructed here and injected; the pipeline itself
	// holds no process-global clients
	ext := extractor.NewFromEnv()
	if catPath := os.Getenv("CATALOG_PATH"); catPath != "" {
		summary, err := catalog.LoadAndSummarize(catPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load equipment catalog")
		}
		ext.Catalog = summary
	}
	orch := pipeline.New(transcription.NewFromEnv(), ext, enricher.New(search.NewFromEnv()))
	inv := inventory.NewFromEnv()

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// voice intake endpoint: multipart audio or {"sample": true}
	mux.HandleFunc("/api/process-audio", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "process-audio")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		reqLog.Info("process request received")

		var audio []byte
		useSample := false
		ct := r.Header.Get("Content-Type")
		switch {
		case strings.HasPrefix(ct, "multipart/form-data"):
			file, _, err := r.FormFile("audio")
			if err != nil {
				reqLog.WithError(err).Warn("missing audio part")
				http.Error(w, "missing audio part", http.StatusBadRequest)
				return
			}
			defer file.Close()
			audio, err = io.ReadAll(file)
			if err != nil {
				http.Error(w, "failed to read audio", http.StatusBadRequest)
				return
			}
		default:
			var body struct {
				Sample bool `json:"sample"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid request body", http.StatusBadRequest)
				return
			}
			useSample = body.Sample
		}

		start := time.Now()
		env := orch.Run(r.Context(), audio, useSample)
		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("processing_status", env.ProcessingStatus).
			Info("pipeline finished")

		res := processResponse{Envelope: env}
		if env.Success && r.URL.Query().Get("create") == "1" && inv.Configured() {
			persist(r, &res, inv, reqLog)
		}
		writeJSON(w, res, reqLog)
	})

	// text intake endpoint: already-transcribed description
	mux.HandleFunc("/api/process-text", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "process-text")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		env := orch.RunText(r.Context(), body.Text)
		res := processResponse{Envelope: env}
		if env.Success && r.URL.Query().Get("create") == "1" && inv.Configured() {
			persist(r, &res, inv, reqLog)
		}
		writeJSON(w, res, reqLog)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// persist creates the SKU and inventory item for a successful envelope.
// Persistence failures do not fail the response; the envelope already
// carries the extracted data.
func persist(r *http.Request, res *processResponse, inv *inventory.Client, reqLog *logrus.Entry) {
	payload, err := assembler.Assemble(res.EquipmentRecord)
	if err != nil {
		reqLog.WithError(err).Error("assemble for persistence failed")
		return
	}
	if user := r.Header.Get("X-User"); user != "" {
		payload.CreatedBy = user
	}

	ctx := r.Context()
	skuID, err := inv.CreateSKU(ctx, inventory.SKUFromPayload(payload))
	if err != nil {
		reqLog.WithError(err).Warn("sku creation failed")
	} else {
		res.SKUID = skuID
	}
	itemID, err := inv.CreateItem(ctx, payload)
	if err != nil {
		reqLog.WithError(err).Warn("inventory creation failed")
		return
	}
	res.InventoryID = itemID
}

func writeJSON(w http.ResponseWriter, v any, reqLog *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		reqLog.WithError(err).Error("failed to write response")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
