// Package handler implements the quiz result notifier HTTP endpoint.
//
// A POST with a quiz submission is validated, rendered as a Telegram message
// and sent to the configured chat in a single attempt. OPTIONS answers CORS
// preflight requests. Failures are reported as *Error values and converted to
// a JSON error body in one place, writeError.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pfrederiksen/quiz-results/internal/logger"
	"github.com/pfrederiksen/quiz-results/internal/metrics"
	"github.com/pfrederiksen/quiz-results/internal/notifier"
	"github.com/pfrederiksen/quiz-results/internal/submission"
	"github.com/pfrederiksen/quiz-results/internal/telegram"
)

// maxBodyBytes caps the submission body; real submissions are a few hundred bytes
const maxBodyBytes = 1 << 20

// SuccessMessage is returned with every delivered submission
const SuccessMessage = "Results submitted successfully"

// Config is the handler's view of the deployment settings
type Config struct {
	BotToken string
	ChatID   string
	// APIURL overrides the Bot API endpoint; empty uses telegram.DefaultBaseURL
	APIURL string
	// Timeout bounds one delivery; zero uses telegram.DefaultTimeout
	Timeout time.Duration
	// Location is the zone for the message timestamp; nil uses time.Local
	Location *time.Location
}

// Handler is the result notifier. It is safe for concurrent use.
type Handler struct {
	cfg        Config
	notifier   notifier.Notifier
	httpClient *http.Client
	now        func() time.Time
	log        *logger.Logger
	metrics    *metrics.Recorder
}

// Option configures a Handler
type Option func(*Handler)

// WithNotifier delivers through n instead of the Telegram Bot API. The
// credential check is skipped since n needs none.
func WithNotifier(n notifier.Notifier) Option {
	return func(h *Handler) {
		h.notifier = n
	}
}

// WithHTTPClient sets the HTTP client used for Bot API calls
func WithHTTPClient(hc *http.Client) Option {
	return func(h *Handler) {
		if hc != nil {
			h.httpClient = hc
		}
	}
}

// WithClock replaces time.Now for the message timestamp
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// WithLogger sets the logger; the package default is used otherwise
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithMetrics records request outcomes and delivery timings on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(h *Handler) {
		h.metrics = r
	}
}

// New creates a Handler. Credentials are not checked here; a request that
// arrives while they are missing gets a configuration error.
func New(cfg Config, opts ...Option) *Handler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = telegram.DefaultTimeout
	}

	h := &Handler{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		now:        time.Now,
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles one submission request
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	requestID := uuid.NewString()
	w.Header().Set("X-Request-Id", requestID)

	// Handle preflight request
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		h.metrics.ObserveOutcome(metrics.OutcomePreflight)
		return
	}

	if err := h.submit(r, requestID); err != nil {
		h.writeError(w, requestID, err)
		return
	}

	h.metrics.ObserveOutcome(metrics.OutcomeDelivered)
	writeJSON(w, http.StatusOK, successResponse{
		Success: true,
		Message: SuccessMessage,
	})
}

// submit runs validation, the credential check, formatting and delivery
func (h *Handler) submit(r *http.Request, requestID string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = newError(KindInternal, fmt.Errorf("panic: %v", rec))
		}
	}()

	if r.Method != http.MethodPost {
		return newError(KindMethod, fmt.Errorf("method %s", r.Method))
	}

	body, err := readBody(r)
	if err != nil {
		return err
	}

	sub, err := submission.Parse(body)
	if err != nil {
		h.log.Debug("Unparseable submission body", logger.Fields{
			"request_id": requestID,
			"bytes":      len(body),
		})
	}
	if err := sub.Validate(); err != nil {
		return newError(KindValidation, err)
	}

	n, err := h.notifierFor()
	if err != nil {
		return err
	}

	message := telegram.FormatResult(sub, h.now().In(h.cfg.Location))

	if h.log.Enabled(logger.LevelDebug) {
		if preview, err := telegram.PlainText(message); err == nil {
			h.log.Debug("Rendered notification", logger.Fields{
				"request_id": requestID,
				"preview":    preview,
			})
		}
	}

	// The send is awaited in full even if the caller goes away; the client
	// timeout still bounds it.
	start := time.Now()
	err = n.Notify(context.WithoutCancel(r.Context()), message)
	h.metrics.ObserveDelivery(time.Since(start))
	if err != nil {
		if errors.Is(err, telegram.ErrMalformedResponse) {
			return newError(KindInternal, err)
		}
		return newError(KindDelivery, err)
	}

	h.log.Info("Results submitted", logger.Fields{
		"request_id": requestID,
		"student":    sub.Student.String(),
		"score":      sub.Score.String(),
		"duration":   time.Since(start).String(),
	})

	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, newError(KindInternal, fmt.Errorf("reading body: %w", err))
	}
	if len(body) > maxBodyBytes {
		return nil, newError(KindValidation, errBodyTooLarge)
	}
	return body, nil
}

// notifierFor returns the injected notifier or a Telegram client for the
// configured credentials. Credentials are checked on every call.
func (h *Handler) notifierFor() (notifier.Notifier, error) {
	if h.notifier != nil {
		return h.notifier, nil
	}

	if h.cfg.BotToken == "" || h.cfg.ChatID == "" {
		return nil, newError(KindConfiguration, errMissingCredentials)
	}

	client, err := telegram.NewClient(h.cfg.BotToken, h.cfg.ChatID,
		telegram.WithBaseURL(h.cfg.APIURL),
		telegram.WithHTTPClient(h.httpClient),
		telegram.WithTimeout(h.cfg.Timeout),
	)
	if err != nil {
		return nil, newError(KindConfiguration, err)
	}

	return client, nil
}

// writeError is the single place where failures become responses. Details
// go to the log only; the caller sees the fixed message for the kind.
func (h *Handler) writeError(w http.ResponseWriter, requestID string, err error) {
	e := asError(err)

	fields := logger.Fields{
		"request_id": requestID,
		"kind":       e.Kind.String(),
		"status":     e.Kind.Status(),
	}

	switch e.Kind {
	case KindMethod, KindValidation:
		fields["reason"] = e.Error()
		h.log.Warn("Rejected submission", fields)
	case KindConfiguration:
		h.log.Error("Telegram credentials not configured", fields, e.Err)
	case KindDelivery:
		h.log.Error("Telegram API error", fields, e.Err)
	default:
		h.log.Error("Error submitting results", fields, e.Err)
	}

	h.metrics.ObserveOutcome(e.Kind.outcome())
	writeJSON(w, e.Kind.Status(), errorResponse{Error: e.Kind.Message()})
}

func setCORSHeaders(header http.Header) {
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
