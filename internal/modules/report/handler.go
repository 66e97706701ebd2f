package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentalbot/internal/catalog"
	"rentalbot/internal/modules/availability"
	"rentalbot/internal/modules/booking"
	"rentalbot/internal/modules/events"
	"rentalbot/internal/pkg/response"
)

// Handler exposes the read-only reports API: active bookings, the archive,
// busy dates and availability lookups, plus the live events feed. It sits
// behind the internal-token middleware; nothing here mutates the store beyond
// the opportunistic archive sweep the listings already run.
type Handler struct {
	bookings *booking.Service
	avail    *availability.Service
	catalog  *catalog.Catalog
	hub      *events.Hub
}

func NewHandler(bookings *booking.Service, avail *availability.Service, c *catalog.Catalog, hub *events.Hub) *Handler {
	return &Handler{bookings: bookings, avail: avail, catalog: c, hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.listBookings)
	rg.GET("/bookings/archive", h.listArchive)
	rg.GET("/dates", h.listDates)
	rg.GET("/availability", h.getAvailability)
	rg.GET("/events", h.serveEvents)
}

func (h *Handler) listBookings(c *gin.Context) {
	list, err := h.bookings.ListAllBookings(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) listArchive(c *gin.Context) {
	list, err := h.bookings.ListArchive(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list archive")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) listDates(c *gin.Context) {
	dates, err := h.bookings.BusyDates(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "failed to list dates")
		return
	}
	response.Success(c, http.StatusOK, dates)
}

func (h *Handler) getAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "date is required")
		return
	}

	if item := c.Query("item"); item != "" {
		free, err := h.avail.Available(c.Request.Context(), item, date, 0)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "unknown item")
			return
		}
		if free < 0 {
			free = 0
		}
		response.Success(c, http.StatusOK, availabilityDTO{Date: date, Item: item, Available: free})
		return
	}

	booked, err := h.avail.BookedByDate(c.Request.Context(), date, 0)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "failed to compute availability")
		return
	}

	var out []availabilityDTO
	for _, cat := range h.catalog.Categories() {
		for _, it := range h.catalog.Items(cat) {
			free := it.Stock - booked[it.Name]
			if free < 0 {
				free = 0
			}
			out = append(out, availabilityDTO{Date: date, Item: it.Name, Category: cat, Available: free})
		}
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) serveEvents(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
