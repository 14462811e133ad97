package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/IvanShishkin/permlens/internal/config"
	"github.com/IvanShishkin/permlens/internal/filesystem"
	"github.com/IvanShishkin/permlens/internal/report"
	"github.com/IvanShishkin/permlens/pkg/models"
	"go.uber.org/zap"
)

// Tabs of the index page
const (
	tabUpload = "upload"
	tabPath   = "path"
)

// multipartOverhead is allowed on top of the upload limit for form framing
const multipartOverhead = 64 << 10

// pageData is the view model of the index page
type pageData struct {
	Tab       string
	Path      string
	Quick     []QuickPath
	MaxUpload string

	Uploaded string // original name of an uploaded file
	Analyzed string // path shown in the "Analyzing" notice
	Result   *models.InspectionResult
	Error    string
}

func (s *Server) newPage(tab string) *pageData {
	return &pageData{
		Tab:       tab,
		Quick:     s.quick,
		MaxUpload: s.config.Upload.MaxSize,
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, s.newPage(tabUpload))
}

// handleInspect analyzes a server-side path submitted from the form
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	page := s.newPage(tabPath)
	if err := r.ParseForm(); err != nil {
		page.Error = "Invalid form submission"
		s.render(w, r, http.StatusBadRequest, page)
		return
	}

	// Quick-access buttons submit their path under a separate name
	page.Path = r.PostFormValue("path")
	if quick := r.PostFormValue("quick"); quick != "" {
		page.Path = quick
	}
	page.Analyzed = filesystem.NormalizePath(page.Path)

	result, err := s.analyzer.Analyze(page.Path)
	if err != nil {
		logger(r).Debug("Analysis failed", zap.String("path", page.Path), zap.Error(err))
		page.Error = err.Error()
	}
	page.Result = result

	s.render(w, r, http.StatusOK, page)
}

// handleUpload stages an uploaded file and analyzes the staged copy
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	page := s.newPage(tabUpload)
	log := logger(r)

	limit := s.config.MaxUploadBytes()
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	part, err := filePart(r)
	if err != nil {
		log.Debug("Upload rejected", zap.Error(err))
		page.Error, _ = uploadError(err)
		s.render(w, r, http.StatusBadRequest, page)
		return
	}
	defer part.Close()

	page.Uploaded = part.FileName()
	err = s.stager.WithStagedFile(part.FileName(), part, func(path string) error {
		result, err := s.analyzer.Analyze(path)
		if err != nil {
			return err
		}
		page.Result = result
		return nil
	})
	if err != nil {
		var analysisErr *models.AnalysisError
		if errors.As(err, &analysisErr) {
			page.Error = analysisErr.Error()
			s.render(w, r, http.StatusOK, page)
			return
		}

		msg, status := uploadError(err)
		if status == http.StatusInternalServerError {
			log.Error("Upload failed", zap.Error(err))
		}
		page.Uploaded = ""
		page.Error = msg
		s.render(w, r, status, page)
		return
	}

	log.Info("Analyzed upload", zap.String("name", page.Uploaded), zap.Int("warnings", len(page.Result.Warnings)))
	s.render(w, r, http.StatusOK, page)
}

// errNoFile is returned when the multipart body carries no "file" part
var errNoFile = errors.New("no file uploaded")

// filePart returns the "file" part of a multipart request without buffering
// it, so the staged copy is the only copy on disk
func filePart(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() == "file" && part.FileName() != "" {
			return part, nil
		}
		part.Close()
	}
}

// uploadError maps an upload failure to a user message and status code
func uploadError(err error) (string, int) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, errNoFile):
		return "Please choose a file to upload", http.StatusBadRequest
	case errors.Is(err, filesystem.ErrUploadTooLarge), errors.As(err, &maxBytesErr):
		return "Upload exceeds the maximum size", http.StatusRequestEntityTooLarge
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
		return "Invalid upload request", http.StatusBadRequest
	default:
		return "Failed to process upload", http.StatusInternalServerError
	}
}

// apiError is the JSON body of a failed API call
type apiError struct {
	Error string           `json:"error"`
	Kind  models.ErrorKind `json:"kind,omitempty"`
	Path  string           `json:"path,omitempty"`
}

// handleAPIInspect returns the analysis of ?path= as JSON or another report format
func (s *Server) handleAPIInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	format := query.Get("format")
	if format == "" {
		format = "json"
	}
	if !isReportFormat(format) {
		writeJSON(w, http.StatusBadRequest, apiError{Error: "unknown format: " + format})
		return
	}

	result, err := s.analyzer.Analyze(query.Get("path"))
	if err != nil {
		var analysisErr *models.AnalysisError
		if !errors.As(err, &analysisErr) {
			logger(r).Error("Analysis failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}

		status := http.StatusUnprocessableEntity
		if models.IsNotFound(err) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, apiError{Error: analysisErr.Message, Kind: analysisErr.Kind, Path: analysisErr.Path})
		return
	}

	data, err := report.Render(format, result)
	if err != nil {
		logger(r).Error("Failed to render result", zap.String("format", format), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, apiError{Error: "failed to render result"})
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func isReportFormat(format string) bool {
	for _, f := range config.ReportFormats {
		if f == format {
			return true
		}
	}
	return false
}

func contentType(format string) string {
	switch format {
	case "json":
		return "application/json"
	case "yaml", "yml":
		return "application/yaml"
	case "md", "markdown":
		return "text/markdown; charset=utf-8"
	case "html":
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// render executes the index page template
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page *pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, "index.tmpl", page); err != nil {
		logger(r).Error("Failed to render page", zap.Error(err))
	}
}
