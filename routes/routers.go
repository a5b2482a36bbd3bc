package routes

import (
	"github.com/gin-gonic/gin"

	"stayhub/controllers"
)

func SetupRoutes(router *gin.Engine, booking *controllers.BookingController, payment *controllers.PaymentController) {
	v1 := router.Group("/api/v1")

	v1.GET("/availability", booking.CheckAvailability)
	v1.GET("/rooms/:id/quote", booking.GetQuote)

	v1.POST("/reservations", booking.CreateReservation)
	v1.PUT("/reservations/status", booking.ChangeReservationStatus)

	v1.POST("/payments", payment.CreatePayment)
	v1.PUT("/payments/status", payment.ChangePaymentStatus)
	v1.PUT("/payments/reservation", payment.AttachReservation)
}
