package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/mpl-analyzer/internal/interfaces/render"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const uploadFormField = "file"

var ErrUploadTooLarge = errors.New("upload too large")

// ReportGenerator builds a report from one uploaded sheet.
type ReportGenerator interface {
	Generate(ctx context.Context, input usecase.GenerateInput) (usecase.Report, error)
}

type reportQuery struct {
	Policy string `validate:"omitempty,oneof=simple weighted"`
}

type Handler struct {
	reports        ReportGenerator
	uploadMaxBytes int64
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(reports ReportGenerator, uploadMaxBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = 10 << 20
	}

	return &Handler{
		reports:        reports,
		uploadMaxBytes: uploadMaxBytes,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateReport")
	defer span.End()

	report, err := h.generateFromUpload(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, render.NewReportView(report))
}

func (h *Handler) CreateMVPChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMVPChart")
	defer span.End()

	report, err := h.generateFromUpload(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := render.MVPChart(buf, report); err != nil {
		if !errors.Is(err, render.ErrNoContenders) {
			h.logger.ErrorContext(ctx, "render mvp chart failed", "file", report.Source, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) generateFromUpload(ctx context.Context, w http.ResponseWriter, r *http.Request) (usecase.Report, error) {
	query := reportQuery{Policy: strings.ToLower(strings.TrimSpace(r.URL.Query().Get("policy")))}
	if err := h.validator.Struct(query); err != nil {
		return usecase.Report{}, fmt.Errorf("%w: policy must be one of simple, weighted", usecase.ErrInvalidInput)
	}

	filename, data, err := h.readUpload(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "read upload failed", "error", err)
		return usecase.Report{}, err
	}

	return h.reports.Generate(ctx, usecase.GenerateInput{
		Filename: filename,
		Data:     data,
		Policy:   query.Policy,
	})
}

func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, error) {
	if r.ContentLength > h.uploadMaxBytes {
		return "", nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, h.uploadMaxBytes)
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", nil, fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, h.uploadMaxBytes)
		}
		return "", nil, fmt.Errorf("%w: expected multipart form with field %q", usecase.ErrInvalidInput, uploadFormField)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		return "", nil, fmt.Errorf("%w: missing form field %q", usecase.ErrInvalidInput, uploadFormField)
	}
	defer file.Close()

	data, err := readAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return header.Filename, data, nil
}

func readAll(file multipart.File) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := io.Copy(buf, file); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}
