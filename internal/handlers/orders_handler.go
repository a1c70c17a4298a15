package handlers

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-qr-orderform/internal/aws"
	"github.com/imrishuroy/go-qr-orderform/internal/catalog"
	"github.com/imrishuroy/go-qr-orderform/internal/orders"
	"github.com/imrishuroy/go-qr-orderform/internal/validation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const defaultSideEffectTimeout = 2 * time.Second

// OrderFeed receives every created order. *aws.Publisher satisfies it.
type OrderFeed interface {
	PublishOrder(ctx context.Context, res *orders.Result) error
}

// OrderMetrics records every created order. *aws.Metrics satisfies it.
type OrderMetrics interface {
	RecordOrder(ctx context.Context, o orders.Order) error
}

// HandlerConfig groups dependencies for the order form handlers.
// Feed and Metrics are optional.
type HandlerConfig struct {
	Catalog           *catalog.Catalog
	Pipeline          *orders.Pipeline
	Validator         *validatorv10.Validate
	StrictValidation  bool
	Feed              OrderFeed
	Metrics           OrderMetrics
	Logger            *slog.Logger
	SideEffectTimeout time.Duration
}

type ordersHandler struct {
	HandlerConfig
}

// RegisterOrdersRoutes installs the page templates and the order form routes.
func RegisterOrdersRoutes(r *gin.Engine, cfg HandlerConfig) {
	if cfg.SideEffectTimeout <= 0 {
		cfg.SideEffectTimeout = defaultSideEffectTimeout
	}
	h := &ordersHandler{HandlerConfig: cfg}

	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.tmpl")))

	r.GET("/", h.orderForm)
	r.POST("/generate-order", h.generateOrder)
	r.GET("/api/catalog", h.listCatalog)
}

func (h *ordersHandler) orderForm(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{
		"Entries": h.Catalog.Entries(),
		"Prices":  h.Catalog.Prices(),
		"Modes":   orders.DiningModes,
	})
}

func (h *ordersHandler) listCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.Catalog.Entries()})
}

func (h *ordersHandler) generateOrder(c *gin.Context) {
	ctx := c.Request.Context()
	log := requestLogger(c, h.Logger)

	var sub orders.Submission
	if err := validation.BindSubmission(c, &sub); err != nil {
		// keep whatever was bound; an incomplete form still yields an order
		log.WarnContext(ctx, "bind_failed", slog.String("error", err.Error()))
	}

	if fields := validation.Check(h.Validator, sub); len(fields) > 0 {
		if h.StrictValidation {
			log.InfoContext(ctx, "validation_failed", slog.Any("fields", fields))
			h.fail(c, http.StatusBadRequest, "validation_failed", "Please fill all fields and add at least one item.", fields)
			return
		}
		log.WarnContext(ctx, "order_advisory", slog.Any("fields", fields))
	}

	res, err := h.Pipeline.Submit(ctx, sub)
	if err != nil {
		log.ErrorContext(ctx, "order_failed", slog.String("error", err.Error()))
		h.fail(c, http.StatusInternalServerError, "order_failed", "The order could not be created.", nil)
		return
	}

	img, err := h.Pipeline.EncodeImage(ctx, res)
	if err != nil {
		status, code := http.StatusInternalServerError, "encode_failed"
		if errors.Is(err, context.DeadlineExceeded) {
			status, code = http.StatusGatewayTimeout, "encode_timeout"
		}
		log.ErrorContext(ctx, code,
			slog.String("order_id", res.Order.OrderID),
			slog.Int("payload_bytes", len(res.Compact)),
			slog.String("error", err.Error()),
		)
		h.fail(c, status, code, "The order QR code could not be generated.", nil)
		return
	}

	h.notify(ctx, log, res)

	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		c.JSON(http.StatusOK, gin.H{
			"order":      res.Order,
			"qr_image":   img,
			"order_json": string(res.Pretty),
		})
	default:
		c.HTML(http.StatusOK, "order.tmpl", gin.H{
			"Order":     res.Order,
			"Lines":     h.Pipeline.Lines(res.Order),
			"QRImage":   template.URL(img),
			"OrderJSON": string(res.Pretty),
		})
	}
}

// notify hands the order to the optional feed and metrics sinks.
// Failures are logged and never retried; the customer already has a valid order.
func (h *ordersHandler) notify(ctx context.Context, log *slog.Logger, res *orders.Result) {
	if h.Feed == nil && h.Metrics == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.SideEffectTimeout)
	defer cancel()

	if h.Feed != nil {
		if err := h.Feed.PublishOrder(ctx, res); err != nil {
			log.WarnContext(ctx, "feed_publish_failed",
				slog.String("order_id", res.Order.OrderID),
				slog.String("aws_error_code", aws.ErrorCode(err)),
				slog.String("error", err.Error()),
			)
		}
	}
	if h.Metrics != nil {
		if err := h.Metrics.RecordOrder(ctx, res.Order); err != nil {
			log.WarnContext(ctx, "metrics_failed",
				slog.String("order_id", res.Order.OrderID),
				slog.String("aws_error_code", aws.ErrorCode(err)),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (h *ordersHandler) fail(c *gin.Context, status int, code, message string, fields map[string]string) {
	switch c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) {
	case gin.MIMEJSON:
		body := gin.H{"error": code, "msg": message}
		if len(fields) > 0 {
			body["fields"] = fields
		}
		c.JSON(status, body)
	default:
		c.HTML(status, "error.tmpl", gin.H{"Message": message, "Fields": fields})
	}
}
