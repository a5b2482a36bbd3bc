package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"stayhub/config"
	"stayhub/dto"
	"stayhub/models"
	"stayhub/repositories"
	"stayhub/response"
	"stayhub/services"
	"stayhub/services/logger"
	"stayhub/validator"
)

const quoteCacheTTL = 10 * time.Minute

func toReservationResponse(r *models.Reservation) dto.ReservationResponse {
	resp := dto.ReservationResponse{
		ID:           r.ID,
		LodgingID:    r.LodgingID,
		GuestID:      r.GuestID,
		GuestName:    r.GuestName,
		CheckInDate:  r.CheckInDate.Format(validator.DateLayout),
		CheckOutDate: r.CheckOutDate.Format(validator.DateLayout),
		Status:       r.Status,
		TotalAmount:  r.TotalAmount,
		TaxAmount:    r.TaxAmount,
		CreatedAt:    r.CreatedAt,
	}
	for _, line := range r.Lines {
		resp.Rooms = append(resp.Rooms, dto.RoomLineResponse{
			RoomID:             line.RoomID,
			BasePriceAtBooking: line.BasePriceAtBooking,
			Occupancy:          line.Occupancy,
			FinalPrice:         line.FinalPrice,
		})
	}
	return resp
}

type BookingController struct {
	orchestrator *services.BookingOrchestrator
	availability *services.AvailabilityChecker
	payments     *services.PaymentService
	rooms        repositories.RoomCatalog
	rdb          *redis.Client
	log          logger.Logger
}

func NewBookingController(
	orchestrator *services.BookingOrchestrator,
	availability *services.AvailabilityChecker,
	payments *services.PaymentService,
	rooms repositories.RoomCatalog,
	rdb *redis.Client,
	log logger.Logger,
) *BookingController {
	return &BookingController{
		orchestrator: orchestrator,
		availability: availability,
		payments:     payments,
		rooms:        rooms,
		rdb:          rdb,
		log:          log,
	}
}

// CheckAvailability answers GET /availability?roomIds=1,2,3&from=&to=
func (ctl *BookingController) CheckAvailability(c *gin.Context) {
	roomIDsParam := c.Query("roomIds")
	if roomIDsParam == "" {
		response.BadRequest(c, "roomIds is required")
		return
	}
	var roomIDs []uint
	for _, part := range strings.Split(roomIDsParam, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			response.BadRequest(c, "roomIds must be a comma-separated list of ids")
			return
		}
		roomIDs = append(roomIDs, uint(id))
	}

	from, err := validator.ParseDate(c.Query("from"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	to, err := validator.ParseDate(c.Query("to"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	available, err := ctl.availability.AreAvailable(c.Request.Context(), roomIDs, from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}

	result := make([]dto.RoomAvailability, 0, len(roomIDs))
	for _, id := range roomIDs {
		result = append(result, dto.RoomAvailability{RoomID: id, Available: available[id]})
	}
	response.Success(c, result)
}

// GetQuote answers GET /rooms/:id/quote?from=&to= with the per-night
// calendar prices. Responses are cached per room and range.
func (ctl *BookingController) GetQuote(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid room id")
		return
	}
	from, err := validator.ParseDate(c.Query("from"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	to, err := validator.ParseDate(c.Query("to"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	cacheKey := fmt.Sprintf("quote:room:%d:%s:%s", roomID, c.Query("from"), c.Query("to"))
	var cached services.Quote
	if err := services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &cached); err == nil && len(cached.PerNight) > 0 {
		response.Success(c, cached)
		return
	}

	profile, err := ctl.rooms.GetPricingProfile(c.Request.Context(), uint(roomID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	quote, err := services.BuildQuote(profile, from, to)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, quote, quoteCacheTTL); err != nil {
		ctl.log.Error("cannot cache quote for room %d: %v", roomID, err)
	}
	response.Success(c, quote)
}

// CreateReservation answers POST /reservations
func (ctl *BookingController) CreateReservation(c *gin.Context) {
	var request dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	checkIn, checkOut, err := validator.ValidateCreateReservation(&request)
	if err != nil {
		response.FromError(c, err)
		return
	}

	cmd := services.CreateReservationCommand{
		LodgingID:  request.LodgingID,
		GuestID:    request.GuestID,
		GuestName:  request.GuestName,
		GuestEmail: request.GuestEmail,
		GuestPhone: request.GuestPhone,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		PaymentID:  request.PaymentID,
	}
	for _, line := range request.Rooms {
		cmd.Lines = append(cmd.Lines, services.RoomLineRequest{
			RoomID:    line.RoomID,
			Occupancy: line.Occupancy,
		})
	}

	reservation, err := ctl.orchestrator.CreateReservation(c.Request.Context(), cmd)
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctl.invalidateQuoteCache(reservation)
	response.Success(c, toReservationResponse(reservation))
}

// ChangeReservationStatus answers PUT /reservations/status
func (ctl *BookingController) ChangeReservationStatus(c *gin.Context) {
	var request dto.ReservationStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	reservation, err := ctl.payments.TransitionReservation(
		c.Request.Context(), request.ID, models.ReservationState(request.Status))
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctl.invalidateQuoteCache(reservation)
	response.Success(c, toReservationResponse(reservation))
}

// invalidateQuoteCache drops cached calendars for every room touched by
// the reservation; best-effort
func (ctl *BookingController) invalidateQuoteCache(r *models.Reservation) {
	for _, line := range r.Lines {
		pattern := fmt.Sprintf("quote:room:%d:*", line.RoomID)
		if err := services.DeleteKeysByPattern(config.Ctx, ctl.rdb, pattern); err != nil {
			ctl.log.Error("cannot invalidate quote cache for room %d: %v", line.RoomID, err)
		}
	}
}
