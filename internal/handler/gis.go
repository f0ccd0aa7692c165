package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/territoria/territoria/internal/geo"
	"github.com/territoria/territoria/internal/validation"
)

type gisHandler struct {
	gateway   geo.Gateway
	uploadDir string
}

func NewGISHandler(gateway geo.Gateway, uploadDir string) *gisHandler {
	return &gisHandler{
		gateway:   gateway,
		uploadDir: uploadDir,
	}
}

// BulkGeocode accepts a territory CSV, hands it to the geocoding worker and
// relays the worker's JSON output. The uploaded file is removed afterwards.
func (h *gisHandler) BulkGeocode(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(validation.CSVConstraints.MaxSize)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No CSV file uploaded.")
		return
	}
	defer file.Close()

	err = validation.ValidateFile(header, validation.CSVConstraints)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	csvPath, err := h.saveUpload(file)
	if err != nil {
		slog.Error("failed to stage csv upload", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}
	defer func() {
		rmErr := os.Remove(csvPath)
		if rmErr != nil {
			slog.Warn("failed to remove uploaded csv", "error", rmErr, "path", csvPath)
		}
	}()

	payload, err := h.gateway.BulkGeocode(r.Context(), csvPath)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "CSV processing failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

type processRowsRequest struct {
	Rows []geo.Row `json:"rows"`
}

// ProcessRows extracts render-ready map points from the selected rows.
// No subprocess involved.
func (h *gisHandler) ProcessRows(w http.ResponseWriter, r *http.Request) {
	var req processRowsRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if len(req.Rows) == 0 {
		respondError(w, http.StatusBadRequest, "Invalid input. 'rows' must be a non-empty array.")
		return
	}

	points, err := geo.PointsFromRows(req.Rows)
	if err != nil {
		respondError(w, http.StatusBadRequest, "No valid lat/lon found in the selected rows.")
		return
	}

	respond(w, http.StatusOK, envelope{"points": points})
}

type reversePointRequest struct {
	// Coordinates may arrive as JSON numbers or strings
	Lat any `json:"lat"`
	Lon any `json:"lon"`
}

// ReversePoint resolves a single coordinate pair via the worker script.
func (h *gisHandler) ReversePoint(w http.ResponseWriter, r *http.Request) {
	var req reversePointRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lat, latOK := coordString(req.Lat)
	lon, lonOK := coordString(req.Lon)
	if !latOK || !lonOK {
		respondError(w, http.StatusBadRequest, "lat and lon required")
		return
	}

	payload, err := h.gateway.ReversePoint(r.Context(), lat, lon)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Reverse geocoding failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func coordString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}

func (h *gisHandler) saveUpload(file io.Reader) (string, error) {
	path := filepath.Join(h.uploadDir, uuid.New().String()+".csv")

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	if err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}
