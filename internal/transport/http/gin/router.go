package httpgin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kirinyoku/eventbuzz/internal/auth"
	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/metrics"
	"github.com/kirinyoku/eventbuzz/internal/repository"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/accounts"
	"github.com/kirinyoku/eventbuzz/internal/service/admin"
	"github.com/kirinyoku/eventbuzz/internal/service/catalog"
	"github.com/kirinyoku/eventbuzz/internal/service/checkin"
	"github.com/kirinyoku/eventbuzz/internal/service/checkout"
	"github.com/kirinyoku/eventbuzz/internal/service/tickets"
)

// NewRouter wires the HTTP API. idem and m may be nil.
func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	tokens *auth.TokenManager,
	m *metrics.Metrics,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		MetricsMiddleware(m),
		CORS(),
		Authenticate(tokens),
	)
	for _, mw := range middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/seats", handleGetSeatMap(svcs))
	r.POST("/events/:id/quote", handleQuote(svcs))
	r.POST("/events/:id/checkout", handleCheckout(svcs, idem, logger))

	r.GET("/tickets/:id", handleGetTicket(svcs))
	r.GET("/tickets/:id/qr.png", handleTicketQR(svcs))

	r.POST("/checkin", handleCheckIn(svcs))

	ag := r.Group("/admin", RequireRole(domain.RoleAdmin))
	{
		ag.GET("/events", handleAdminListEvents(svcs))
		ag.POST("/events", handleCreateEvent(svcs))
		ag.PUT("/events/:id", handleUpdateEvent(svcs))
		ag.DELETE("/events/:id", handleDeleteEvent(svcs))
		ag.GET("/events/:id/tickets", handleListEventTickets(svcs))
	}

	return r
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	var (
		conflict   checkout.SeatConflictError
		limited    checkout.RateLimitedError
		used       checkin.AlreadyUsedError
		badSeat    checkout.InvalidSeatError
		badEvent   admin.InvalidEventError
		badAccount accounts.InvalidInputError
	)

	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, SeatConflictResponse{Error: conflict.Error(), Seats: conflict.Seats})
	case errors.As(err, &used):
		c.JSON(http.StatusConflict, AlreadyUsedResponse{
			Error:       checkin.ErrAlreadyUsed.Error(),
			TicketID:    used.TicketID,
			CheckedInAt: used.CheckedInAt,
		})
	case errors.As(err, &limited):
		secs := int(limited.RetryAfter.Round(time.Second) / time.Second)
		c.Header("Retry-After", strconv.Itoa(max(secs, 1)))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: checkout.ErrRateLimited.Error()})
	case errors.As(err, &badSeat):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: badSeat.Error()})
	case errors.As(err, &badEvent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: badEvent.Error()})
	case errors.As(err, &badAccount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: badAccount.Error()})

	case errors.Is(err, checkout.ErrUnauthenticated),
		errors.Is(err, accounts.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: rootMessage(err)})

	case errors.Is(err, checkout.ErrEmptySelection),
		errors.Is(err, checkout.ErrInvalidBuyer):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: rootMessage(err)})

	case errors.Is(err, catalog.ErrEventNotFound),
		errors.Is(err, admin.ErrEventNotFound),
		errors.Is(err, checkout.ErrEventNotFound),
		errors.Is(err, checkin.ErrTicketNotFound),
		errors.Is(err, tickets.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: rootMessage(err)})

	case errors.Is(err, checkout.ErrSeatConflict),
		errors.Is(err, checkin.ErrAlreadyUsed),
		errors.Is(err, accounts.ErrEmailTaken),
		errors.Is(err, admin.ErrEventConflict),
		errors.Is(err, admin.ErrGridImmutable),
		errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: rootMessage(err)})

	case errors.Is(err, repository.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "service unavailable"})

	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

// rootMessage strips the op prefixes added while the error travelled up.
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
