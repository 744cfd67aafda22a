package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nutrirag/nutrirag/internal/chunking"
	"github.com/nutrirag/nutrirag/internal/indexer"
	"github.com/nutrirag/nutrirag/internal/llm"
	"github.com/nutrirag/nutrirag/internal/parsing"
	"github.com/nutrirag/nutrirag/internal/vectordb"
)

// MaxUploadSize caps uploads at 10MB.
const MaxUploadSize = 10 * 1024 * 1024

// UploadHandler ingests one document: extract, chunk, index.
type UploadHandler struct {
	LLM    llm.Client
	Index  vectordb.Index
	Logger *slog.Logger
}

type uploadResponse struct {
	Filename        string `json:"filename"`
	ChunksProcessed int    `json:"chunks_processed"`
	Status          string `json:"status"`
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.LLM == nil || h.Index == nil {
		writeError(w, http.StatusServiceUnavailable, "Services not initialized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		h.Logger.Error("error parsing multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "The uploaded file is too big. Please choose a file that's less than 10MB in size")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("error retrieving the file", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid file upload")
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !parsing.SupportedFile(filename) {
		writeError(w, http.StatusBadRequest, "Only PDF, DOCX, TXT files supported")
		return
	}

	// The file lands on disk for the duration of this request only,
	// success or failure.
	tempPath := filepath.Join(os.TempDir(), uuid.NewString()+"_"+filename)
	if err := saveUpload(file, tempPath); err != nil {
		h.Logger.Error("failed to save uploaded file", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer os.Remove(tempPath)

	text, err := parsing.Extract(tempPath, filename)
	if err != nil {
		h.Logger.Error("text extraction failed", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	chunks := chunking.Split(text)

	if err := indexer.IndexChunks(r.Context(), h.Index, filename, chunks); err != nil {
		var upsertErr *vectordb.UpsertError
		if !errors.As(err, &upsertErr) {
			h.Logger.Error("unexpected indexing failure", "filename", filename, "error", err)
		} else {
			h.Logger.Error("chunk upsert failed", "filename", filename, "error", err)
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Logger.Info("document indexed", "filename", filename, "chunks", len(chunks))

	writeJSON(w, http.StatusOK, uploadResponse{
		Filename:        filename,
		ChunksProcessed: len(chunks),
		Status:          "success",
	})
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
