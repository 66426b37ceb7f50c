package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/market"
)

// Export serves GET /api/export as a file download.
func Export(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		if err := d.Market.Export(r.Context(), &buf); err != nil {
			d.Logger.Error("export failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", market.ExportFilename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// Import serves POST /api/import; the body is a JSON array of listings.
func Import(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := r.Body
		if d.MaxImportBytes > 0 {
			body = http.MaxBytesReader(w, r.Body, d.MaxImportBytes)
		}

		res, err := d.Market.Import(r.Context(), body)
		var tooLarge *http.MaxBytesError
		switch {
		case err == nil:
			writeJSON(w, http.StatusOK, res)
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "import file too large")
		case errors.Is(err, market.ErrMalformedImport), errors.Is(err, market.ErrNotArray):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeSaveError(w, d, "import", err)
		}
	}
}
