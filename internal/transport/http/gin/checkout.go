package httpgin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/identity"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
	redisrepo "github.com/kirinyoku/eventbuzz/internal/repository/redis"
	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/checkout"
)

const idemLockTTL = 60 * time.Second

// @Summary      Buy seats
// @Description  Reserves the seats and issues one ticket. Idempotent per Idempotency-Key when provided.
// @Security     BearerAuth
// @Param        id               path    string           true   "Event ID"
// @Param        Idempotency-Key  header  string           false  "Idempotency key"
// @Param        body             body    CheckoutRequest  true   "buyer and seats"
// @Success      201  {object}  TicketResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  SeatConflictResponse
// @Failure      429  {object}  ErrorResponse
// @Router       /events/{id}/checkout [post]
func handleCheckout(svcs *service.Services, idem *redisrepo.IdempotencyStore, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}

		ctx := c.Request.Context()
		eventID := c.Param("id")
		idemHeader := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

		var idemKey string
		if actor, ok := identity.FromContext(ctx); ok && idem != nil && idemHeader != "" {
			idemKey = redisrepo.KeyIdemCheckout(eventID, actor.ID, idemHeader)

			payload, found, err := idem.GetResult(ctx, idemKey)
			if err != nil {
				logger.Error("idempotency lookup failed", slog.String("key", idemKey), slog.Any("err", err))
				c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "idempotency store unavailable"})
				return
			}
			if found {
				c.Header("Idempotency-Key", idemHeader)
				c.Header("Idempotent-Replayed", "true")
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(ctx, idemKey, idemLockTTL)
			if err != nil {
				logger.Error("idempotency lock failed", slog.String("key", idemKey), slog.Any("err", err))
				c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "idempotency store unavailable"})
				return
			}
			if !locked {
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		t, err := svcs.Checkout.Issue(ctx, checkout.IssueRequest{
			EventID:      eventID,
			Buyer:        domain.Buyer{Name: req.Buyer.Name, Email: req.Buyer.Email},
			Seats:        req.Seats,
			RateLimitKey: "ip:" + c.ClientIP(),
		})
		if err != nil {
			if idemKey != "" {
				_ = idem.Release(context.WithoutCancel(ctx), idemKey)
			}
			respondErr(c, err)
			return
		}

		resp := TicketResponse{Ticket: *t, Receipt: receipt.Build(*t, nil)}
		if v, err := svcs.Tickets.Get(ctx, t.ID); err == nil {
			resp = ticketResponse(v.Ticket, v.Event, v.Receipt)
		} else {
			logger.Warn("load issued ticket failed", slog.String("ticket_id", t.ID), slog.Any("err", err))
		}

		body, err := json.Marshal(resp)
		if err != nil {
			respondErr(c, err)
			return
		}

		if idemKey != "" {
			if err := idem.SaveResult(context.WithoutCancel(ctx), idemKey, string(body)); err != nil {
				logger.Warn("save idempotent result failed", slog.String("key", idemKey), slog.Any("err", err))
			}
			c.Header("Idempotency-Key", idemHeader)
		}

		c.Header("Location", "/tickets/"+t.ID)
		c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
	}
}
