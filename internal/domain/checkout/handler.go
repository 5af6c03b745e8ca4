package checkout

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mwork/eopayment/internal/pkg/gateway"
	"github.com/mwork/eopayment/internal/pkg/logger"
	"github.com/mwork/eopayment/internal/pkg/response"
	"github.com/mwork/eopayment/internal/pkg/validator"
)

// maxNotificationSize bounds notification bodies
const maxNotificationSize = 64 << 10

// Handler handles checkout HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates checkout handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreatePayment handles POST /payments
// @Summary Start a payment
// @Description Builds the redirect URL or HTML form sending the customer to the bank
// @Tags Payment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreatePaymentRequest true "Payment parameters"
// @Success 201 {object} response.Response{data=CreatePaymentResponse}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /payments [post]
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	out, err := h.service.CreatePayment(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	response.Created(w, out)
}

// Notify handles GET|POST /payments/notify
// @Summary Bank notification
// @Description Parses a bank notification. Acknowledgements expected by the bank are returned as plain text.
// @Tags Payment Webhooks
// @Produce json
// @Produce plain
// @Success 200 {object} response.Response{data=Notification}
// @Failure 400 {object} response.Response
// @Router /payments/notify [get]
// @Router /payments/notify [post]
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.RawQuery
	if r.Method == http.MethodPost {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxNotificationSize))
		if err != nil {
			response.BadRequest(w, "Invalid notification body")
			return
		}
		if len(body) > 0 {
			rawQuery = string(body)
		}
	}

	notification, content, err := h.service.HandleNotification(r.Context(), rawQuery)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if content != "" {
		response.Text(w, http.StatusOK, content)
		return
	}
	response.OK(w, notification)
}

// Describe handles GET /backends/{kind}
// @Summary Backend options
// @Tags Payment
// @Produce json
// @Param kind path string true "Backend name"
// @Success 200 {object} response.Response{data=gateway.Description}
// @Failure 404 {object} response.Response
// @Router /backends/{kind} [get]
func (h *Handler) Describe(w http.ResponseWriter, r *http.Request) {
	kind, err := gateway.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		response.NotFound(w, "Unknown payment backend")
		return
	}
	desc, err := h.service.Describe(kind)
	if err != nil {
		response.NotFound(w, "Unknown payment backend")
		return
	}
	response.OK(w, desc)
}

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *gateway.ValidationError
	switch {
	case errors.As(err, &validationErr):
		response.ErrorWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed",
			map[string]string{validationErr.Field: validationErr.Reason})
	case errors.Is(err, gateway.ErrValidation):
		response.BadRequest(w, err.Error())
	default:
		logger.FromContext(r.Context()).Error().Err(err).
			Str("backend", h.service.Backend().String()).
			Msg("payment operation failed")
		response.InternalError(w)
	}
}

// Routes returns the payment router. Only payment creation is behind
// authMiddleware: notifications come from the banks.
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.With(authMiddleware).Post("/", h.CreatePayment)
	r.Get("/notify", h.Notify)
	r.Post("/notify", h.Notify)
	return r
}

// BackendRoutes returns the backend description router
func (h *Handler) BackendRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{kind}", h.Describe)
	return r
}
