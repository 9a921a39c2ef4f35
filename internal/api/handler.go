// Package api serves the ledger read accessor as a read-only JSON API.
package api

import (
	"context"
	"errors"
	"strconv"

	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultLimit caps /api/transactions when no limit is given.
const DefaultLimit = 100

// Reader is the read side of the ledger.
type Reader interface {
	Ping(ctx context.Context) error
	ListTransactions(ctx context.Context, filter ledger.TransactionFilter) ([]models.LedgerRow, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	Stats(ctx context.Context) (ledger.Stats, error)
}

// TreeSource returns the category tree.
type TreeSource interface {
	Tree() []models.CategoryNode
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	reader     Reader
	categories TreeSource
	logger     logging.Logger
}

// NewHandler creates a Handler.
func NewHandler(reader Reader, categories TreeSource, logger logging.Logger) *Handler {
	return &Handler{reader: reader, categories: categories, logger: logging.OrDefault(logger)}
}

// NewApp builds a fiber app with every route registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "fintrack",
		DisableStartupMessage: true,
		ErrorHandler:          h.handleError,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Get("/health", h.handleHealth)
	api.Get("/transactions", h.handleTransactions)
	api.Get("/accounts", h.handleAccounts)
	api.Get("/stats", h.handleStats)
	api.Get("/categories", h.handleCategories)
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	if err := h.reader.Ping(c.UserContext()); err != nil {
		h.logger.WithError(err).Warn("Health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *Handler) handleTransactions(c *fiber.Ctx) error {
	filter := ledger.TransactionFilter{Limit: DefaultLimit}

	if raw := c.Query("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "account_id must be a positive integer")
		}
		filter.AccountID = &id
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
		}
		filter.Limit = limit
	}

	rows, err := h.reader.ListTransactions(c.UserContext(), filter)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = []models.LedgerRow{}
	}
	return c.JSON(rows)
}

func (h *Handler) handleAccounts(c *fiber.Ctx) error {
	accounts, err := h.reader.ListAccounts(c.UserContext())
	if err != nil {
		return err
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return c.JSON(accounts)
}

func (h *Handler) handleStats(c *fiber.Ctx) error {
	stats, err := h.reader.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

func (h *Handler) handleCategories(c *fiber.Ctx) error {
	tree := h.categories.Tree()
	if tree == nil {
		tree = []models.CategoryNode{}
	}
	return c.JSON(tree)
}

// handleError renders errors as {"error": "..."}; storage failures become 500.
func (h *Handler) handleError(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		h.logger.WithError(err).Error("Request failed",
			logging.F("path", c.Path()))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
