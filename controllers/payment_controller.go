package controllers

import (
	"github.com/gin-gonic/gin"

	"stayhub/dto"
	"stayhub/models"
	"stayhub/response"
	"stayhub/services"
)

func toPaymentResponse(p *models.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:              p.ID,
		ReservationID:   p.ReservationID,
		Method:          p.Method,
		TransactionCode: p.TransactionCode,
		AmountRoom:      p.AmountRoom,
		AmountTax:       p.AmountTax,
		AmountTotal:     p.AmountTotal,
		Status:          p.Status,
		PaidAt:          p.PaidAt,
		CreatedAt:       p.CreatedAt,
	}
}

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// CreatePayment answers POST /payments. Card payments resolve
// synchronously in this request; transfer payments stay PENDING.
func (ctl *PaymentController) CreatePayment(c *gin.Context) {
	var request dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	payment, err := ctl.payments.CreatePayment(c.Request.Context(), services.CreatePaymentCommand{
		GuestID:       request.GuestID,
		ReservationID: request.ReservationID,
		Method:        request.Method,
		CardID:        request.CardID,
		AmountRoom:    request.AmountRoom,
		AmountTax:     request.AmountTax,
		AmountTotal:   request.AmountTotal,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPaymentResponse(payment))
}

// ChangePaymentStatus answers PUT /payments/status
func (ctl *PaymentController) ChangePaymentStatus(c *gin.Context) {
	var request dto.PaymentStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	payment, err := ctl.payments.TransitionPayment(
		c.Request.Context(), request.ID, models.PaymentState(request.Status))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPaymentResponse(payment))
}

// AttachReservation answers PUT /payments/reservation
func (ctl *PaymentController) AttachReservation(c *gin.Context) {
	var request dto.AttachReservationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	payment, err := ctl.payments.AttachReservation(
		c.Request.Context(), request.PaymentID, request.ReservationID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, toPaymentResponse(payment))
}
