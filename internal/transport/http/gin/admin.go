package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/admin"
	"github.com/kirinyoku/eventbuzz/internal/service/catalog"
)

func (r EventRequest) input() admin.EventInput {
	return admin.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Venue:       r.Venue,
		Date:        r.Date,
		Rows:        r.Rows,
		Cols:        r.Cols,
		Price:       r.Price,
	}
}

// @Summary   Admin: list events
// @Security  BearerAuth
// @Param     q  query  string  false  "search"
// @Success   200  {array}   domain.Event
// @Failure   403  {object}  ErrorResponse
// @Router    /admin/events [get]
func handleAdminListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Catalog.List(c.Request.Context(), catalog.ListParams{
			Query: c.Query("q"),
			Sort:  catalog.SortAsc,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// @Summary   Admin: create event
// @Security  BearerAuth
// @Param     body  body  EventRequest  true  "event"
// @Success   201  {object}  domain.Event
// @Failure   400  {object}  ErrorResponse
// @Failure   403  {object}  ErrorResponse
// @Router    /admin/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}

		e, err := svcs.Admin.CreateEvent(c.Request.Context(), req.input())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// @Summary      Admin: update event
// @Description  Updates metadata. Reserved seats are kept; the grid size cannot change.
// @Security     BearerAuth
// @Param        id    path  string        true  "Event ID"
// @Param        body  body  EventRequest  true  "event"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /admin/events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req EventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}

		e, err := svcs.Admin.UpdateEvent(c.Request.Context(), c.Param("id"), req.input())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// @Summary   Admin: delete event
// @Security  BearerAuth
// @Param     id  path  string  true  "Event ID"
// @Success   204
// @Failure   404  {object}  ErrorResponse
// @Router    /admin/events/{id} [delete]
func handleDeleteEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Admin.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary   Admin: list tickets of an event
// @Security  BearerAuth
// @Param     id  path  string  true  "Event ID"
// @Success   200  {array}   domain.Ticket
// @Failure   404  {object}  ErrorResponse
// @Router    /admin/events/{id}/tickets [get]
func handleListEventTickets(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ts, err := svcs.Admin.ListEventTickets(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, ts)
	}
}
