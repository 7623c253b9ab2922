package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ankit-kv/gridmaker/pkg/errors"
	"github.com/ankit-kv/gridmaker/pkg/fonts"
	"github.com/ankit-kv/gridmaker/pkg/grid"
	"github.com/ankit-kv/gridmaker/pkg/imgio"
	"github.com/ankit-kv/gridmaker/pkg/pipeline"
	"github.com/ankit-kv/gridmaker/pkg/preset"
)

// artifactInfo describes one downloadable artifact in a compose response.
type artifactInfo struct {
	Format   string `json:"format"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Size     int    `json:"size"`
}

// composeResponse is the JSON manifest returned by POST /compose.
type composeResponse struct {
	ID           string            `json:"id"`
	CanvasWidth  int               `json:"canvas_width"`
	CanvasHeight int               `json:"canvas_height"`
	Artifacts    []artifactInfo    `json:"artifacts"`
	Warnings     []string          `json:"warnings,omitempty"`
	EncodeErrors map[string]string `json:"encode_errors,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preset.Builtin().List())
}

func (s *Server) handleCompose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidConfig, "parse multipart form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	params, err := parseParams(r.MultipartForm.Value)
	if err != nil {
		writeError(w, err)
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		writeError(w, errors.New(errors.ErrCodeInvalidConfig, "no images uploaded"))
		return
	}
	images := make([]grid.SourceImage, 0, len(files))
	for _, header := range files {
		src, err := decodeUpload(header)
		if err != nil {
			writeError(w, err)
			return
		}
		images = append(images, src)
	}

	opts := pipeline.Options{
		Config:      params.config,
		Images:      images,
		Placement:   params.placement,
		Font:        fonts.Source{Name: params.fontName},
		Formats:     params.formats,
		JPEGQuality: params.quality,
		Logger:      s.logger,
	}

	runner := pipeline.NewRunner(s.logger)
	result, err := runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	job := s.store.Put(params.baseName, result.Artifacts)

	resp := composeResponse{
		ID:           job.ID,
		CanvasWidth:  result.Stats.CanvasWidth,
		CanvasHeight: result.Stats.CanvasHeight,
		Warnings:     result.Warnings,
	}
	for format, data := range result.Artifacts {
		filename := format.Filename(job.Base)
		resp.Artifacts = append(resp.Artifacts, artifactInfo{
			Format:   string(format),
			Filename: filename,
			URL:      fmt.Sprintf("/artifacts/%s/%s", job.ID, filename),
			Size:     len(data),
		})
	}
	if len(result.EncodeErrors) > 0 {
		resp.EncodeErrors = make(map[string]string, len(result.EncodeErrors))
		for format, encodeErr := range result.EncodeErrors {
			resp.EncodeErrors[string(format)] = errors.UserMessage(encodeErr)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	job, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	filename := chi.URLParam(r, "filename")
	data, format, err := job.Artifact(filename)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.MIME())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, indexHTML)
}

// decodeUpload decodes one uploaded file into a source image.
func decodeUpload(header *multipart.FileHeader) (grid.SourceImage, error) {
	file, err := header.Open()
	if err != nil {
		return grid.SourceImage{}, errors.Wrap(errors.ErrCodeDecodeImage, err, "open upload %q", header.Filename)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return grid.SourceImage{}, errors.Wrap(errors.ErrCodeDecodeImage, err, "read upload %q", header.Filename)
	}
	return imgio.Decode(header.Filename, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes a JSON body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPlacement, errors.ErrCodeInvalidPreset,
		errors.ErrCodeInvalidPath, errors.ErrCodeDecodeImage,
		errors.ErrCodeDecodeFont:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeArtifactNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

const indexHTML = `<!doctype html>
<html>
<head><title>gridmaker</title></head>
<body>
<h1>gridmaker</h1>
<form action="/compose" method="post" enctype="multipart/form-data">
  <p><input type="file" name="images" multiple accept="image/*"></p>
  <p>
    rows <input type="number" name="rows" value="5" size="3">
    cols <input type="number" name="cols" value="3" size="3">
    spacing <input type="number" name="spacing" value="10" size="3">
  </p>
  <p>
    formats <input type="text" name="format" value="png">
    preset <input type="text" name="preset" placeholder="contact-sheet">
  </p>
  <p><button type="submit">Compose</button></p>
</form>
</body>
</html>
`
