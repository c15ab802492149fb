package httpgin

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/eventbuzz/internal/domain"
	"github.com/kirinyoku/eventbuzz/internal/receipt"
	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/checkin"
)

func ticketResponse(t domain.Ticket, e *domain.Event, r receipt.Receipt) TicketResponse {
	return TicketResponse{
		Ticket:  t,
		Event:   e,
		Receipt: r,
		Mailto:  r.MailtoURL(),
	}
}

// @Summary  Get ticket
// @Param    id  path  string  true  "Ticket ID"
// @Success  200  {object}  TicketResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /tickets/{id} [get]
func handleGetTicket(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, err := svcs.Tickets.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ticketResponse(v.Ticket, v.Event, v.Receipt))
	}
}

// @Summary   Ticket QR code
// @Produce   png
// @Param     id  path  string  true  "Ticket ID"
// @Success   200  {file}    binary
// @Failure   404  {object}  ErrorResponse
// @Router    /tickets/{id}/qr.png [get]
func handleTicketQR(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		png, err := svcs.Tickets.QRCode(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.Header("Cache-Control", "private, max-age=300")
		c.Data(http.StatusOK, "image/png", png)
	}
}

// @Summary      Check in a ticket
// @Description  Accepts a ticket ID or the scanned QR payload. A ticket is admitted once.
// @Param        body  body  CheckInRequest  true  "ticket_id or payload"
// @Success      200  {object}  CheckInResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  AlreadyUsedResponse
// @Router       /checkin [post]
func handleCheckIn(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckInRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}

		var (
			res *checkin.Result
			err error
		)
		switch {
		case strings.TrimSpace(req.TicketID) != "":
			res, err = svcs.CheckIn.CheckIn(c.Request.Context(), req.TicketID)
		case strings.TrimSpace(req.Payload) != "":
			res, err = svcs.CheckIn.CheckInPayload(c.Request.Context(), req.Payload)
		default:
			badRequest(c, "ticket_id or payload is required")
			return
		}
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, CheckInResponse{
			Status:     "checked_in",
			Ticket:     res.Ticket,
			Event:      res.Event,
			SeatLabels: res.SeatLabels,
		})
	}
}
