package httpgin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kirinyoku/eventbuzz/internal/service"
	"github.com/kirinyoku/eventbuzz/internal/service/catalog"
	"github.com/kirinyoku/eventbuzz/internal/service/selection"
)

// @Summary  List events
// @Param    q     query  string  false  "search in title, description and venue"
// @Param    sort  query  string  false  "asc or desc by date"
// @Success  200  {array}   domain.Event
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := svcs.Catalog.List(c.Request.Context(), catalog.ListParams{
			Query: c.Query("q"),
			Sort:  catalog.ParseSortOrder(c.Query("sort")),
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// @Summary  Get event
// @Param    id  path  string  true  "Event ID"
// @Success  200  {object}  domain.Event
// @Success  304
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, err := svcs.Catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, e, "no-cache")
	}
}

// @Summary  Get seat map
// @Param    id  path  string  true  "Event ID"
// @Success  200  {object}  catalog.SeatMap
// @Failure  404  {object}  ErrorResponse
// @Router   /events/{id}/seats [get]
func handleGetSeatMap(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sm, err := svcs.Catalog.SeatMap(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, sm, "no-cache")
	}
}

// @Summary      Quote a seat selection
// @Description  Replays seat toggles in click order. Reserved and unknown seats are ignored.
// @Param        id    path  string        true  "Event ID"
// @Param        body  body  QuoteRequest  true  "toggles"
// @Success      200  {object}  QuoteResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /events/{id}/quote [post]
func handleQuote(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req QuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid body")
			return
		}

		e, err := svcs.Catalog.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}

		s := selection.Replay(*e, req.Toggles)
		c.JSON(http.StatusOK, QuoteResponse{
			EventID: s.EventID(),
			Seats:   s.Selected(),
			Labels:  s.Labels(),
			Count:   s.Count(),
			Total:   s.Total().StringFixed(2),
			Summary: s.Summary(),
		})
	}
}
