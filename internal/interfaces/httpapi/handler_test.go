package httpapi

import (
	"bytes"
	"fmt"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/awards"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/player"
	"github.com/riskibarqy/mpl-analyzer/internal/domain/team"
	httpapimock "github.com/riskibarqy/mpl-analyzer/internal/mocks/httpapi"
	"github.com/riskibarqy/mpl-analyzer/internal/platform/logging"
	"github.com/riskibarqy/mpl-analyzer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func num(v float64) *float64 { return &v }

func uploadRequest(t *testing.T, target, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(uploadFormField, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func stubReport() usecase.Report {
	standing := 1
	champion := team.Record{Name: "Alpha", Standing: &standing}
	ember := player.Record{
		Name: "Ember", Team: "Delta", Role: player.RoleGold,
		Kills: num(100), Assists: num(50), Deaths: num(20), KillParticipation: num(0.72),
	}
	mvp := awards.MVPScore{
		Candidate:         awards.Candidate{Player: ember, Efficiency: 7.5},
		KillParticipation: 0.72,
		Kills:             100,
		Score:             540,
	}
	return usecase.Report{
		Source:      "season.xlsx",
		Policy:      awards.PolicyWeighted,
		Rows:        7,
		Standings:   awards.Standings{Top: []team.Record{champion}, Champion: &champion, Eligible: 1},
		MVP:         &mvp,
		Contenders:  []awards.MVPScore{mvp},
		Warnings:    []string{"only one eligible Gold player: second all-star slot is empty"},
		GeneratedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(t *testing.T, reports ReportGenerator, opts RouterOptions) http.Handler {
	t.Helper()
	handler := NewHandler(reports, 1<<20, logging.NewNop())
	return NewRouter(handler, logging.NewNop(), opts)
}

func TestHandler_CreateReport_Success(t *testing.T) {
	reports := httpapimock.NewReportGenerator(t)
	reports.
		On("Generate", mock.Anything, mock.MatchedBy(func(in usecase.GenerateInput) bool {
			return in.Filename == "season.xlsx" && string(in.Data) == "sheet-bytes" && in.Policy == "simple"
		})).
		Return(stubReport(), nil).
		Once()

	rec := httptest.NewRecorder()
	newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports?policy=Simple", "season.xlsx", []byte("sheet-bytes")))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body struct {
		APIVersion string `json:"apiVersion"`
		Data       struct {
			Source   string `json:"source"`
			Champion struct {
				Name string `json:"name"`
			} `json:"champion"`
			MVP struct {
				Name  string  `json:"name"`
				Score float64 `json:"score"`
			} `json:"mvp"`
			Warnings []string `json:"warnings"`
		} `json:"data"`
	}
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2.0", body.APIVersion)
	assert.Equal(t, "season.xlsx", body.Data.Source)
	assert.Equal(t, "Alpha", body.Data.Champion.Name)
	assert.Equal(t, "Ember", body.Data.MVP.Name)
	assert.InDelta(t, 540.0, body.Data.MVP.Score, 1e-9)
	assert.Len(t, body.Data.Warnings, 1)
}

func TestHandler_CreateReport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{name: "unsupported format", err: fmt.Errorf("load: %w", usecase.ErrUnsupportedFormat), wantStatus: http.StatusUnsupportedMediaType, wantReason: "unsupportedFormat"},
		{name: "malformed sheet", err: fmt.Errorf("load: %w", usecase.ErrMalformedTable), wantStatus: http.StatusUnprocessableEntity, wantReason: "malformedSpreadsheet"},
		{name: "invalid input", err: fmt.Errorf("%w: file is empty", usecase.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantReason: "invalidInput"},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError, wantReason: "internalError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reports := httpapimock.NewReportGenerator(t)
			reports.On("Generate", mock.Anything, mock.Anything).Return(usecase.Report{}, tt.err).Once()

			rec := httptest.NewRecorder()
			newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports", "season.xlsx", []byte("x")))

			require.Equal(t, tt.wantStatus, rec.Code)
			var body googleResponseEnvelope
			require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			require.Len(t, body.Error.Errors, 1)
			assert.Equal(t, tt.wantReason, body.Error.Errors[0].Reason)
		})
	}
}

func TestHandler_CreateReport_RejectsBadRequests(t *testing.T) {
	t.Run("unknown policy", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		rec := httptest.NewRecorder()
		newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports?policy=vibes", "season.xlsx", []byte("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing file field", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewBufferString("plain"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("upload too large", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		handler := NewHandler(reports, 64, logging.NewNop())
		router := NewRouter(handler, logging.NewNop(), RouterOptions{})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, uploadRequest(t, "/v1/reports", "season.xlsx", bytes.Repeat([]byte("x"), 1024)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("wrong method", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		rec := httptest.NewRecorder()
		newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandler_CreateMVPChart(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		reports.On("Generate", mock.Anything, mock.Anything).Return(stubReport(), nil).Once()

		rec := httptest.NewRecorder()
		newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports/mvp-chart", "season.xlsx", []byte("x")))

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		_, err := png.DecodeConfig(bytes.NewReader(rec.Body.Bytes()))
		require.NoError(t, err)
	})

	t.Run("no contenders", func(t *testing.T) {
		reports := httpapimock.NewReportGenerator(t)
		reports.On("Generate", mock.Anything, mock.Anything).Return(usecase.Report{Source: "empty.csv"}, nil).Once()

		rec := httptest.NewRecorder()
		newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports/mvp-chart", "empty.csv", []byte("x")))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestRouter_RateLimitsReportRoutes(t *testing.T) {
	reports := httpapimock.NewReportGenerator(t)
	reports.On("Generate", mock.Anything, mock.Anything).Return(stubReport(), nil).Once()

	router := newTestRouter(t, reports, RouterOptions{RateLimiter: NewIPRateLimiter(rate.Every(time.Hour), 1)})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, uploadRequest(t, "/v1/reports", "season.xlsx", []byte("x")))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, uploadRequest(t, "/v1/reports", "season.xlsx", []byte("x")))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, health.Code)
}

func TestRouter_MetricsRoute(t *testing.T) {
	reports := httpapimock.NewReportGenerator(t)

	missing := httptest.NewRecorder()
	newTestRouter(t, reports, RouterOptions{}).ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("mpl_analyzer_reports_generated_total 1\n"))
	})
	rec := httptest.NewRecorder()
	newTestRouter(t, reports, RouterOptions{Metrics: metrics}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "reports_generated_total")
}

func TestRouter_RecoversPanics(t *testing.T) {
	reports := httpapimock.NewReportGenerator(t)
	reports.On("Generate", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("selector exploded")
	}).Return(usecase.Report{}, nil).Once()

	rec := httptest.NewRecorder()
	newTestRouter(t, reports, RouterOptions{}).ServeHTTP(rec, uploadRequest(t, "/v1/reports", "season.xlsx", []byte("x")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIPRateLimiter_SeparatesClients(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 1)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"))
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5123"
	assert.Equal(t, "192.0.2.10", resolveClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", resolveClientIP(req))

	req.Header.Set("Fly-Client-IP", "not-an-ip")
	assert.Equal(t, "203.0.113.7", resolveClientIP(req))
}
