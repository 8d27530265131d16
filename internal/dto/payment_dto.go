package dto

import (
	"time"

	"github.com/noah-isme/skillpath-api/internal/models"
)

// PaymentIntentRequest asks the processor for a payment intent for the given price.
type PaymentIntentRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// PaymentIntentResponse returns the secret the client confirms the payment with.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Provider     string `json:"provider"`
}

// PaymentCreateRequest records a completed payment for a class.
type PaymentCreateRequest struct {
	ClassID       uint    `json:"classId" validate:"required"`
	TransactionID string  `json:"transactionId" validate:"required,max=255"`
	Price         float64 `json:"price" validate:"gte=0"`
	TotalEnrolled int     `json:"totalEnrolled" validate:"gte=0"`
}

// EnrollmentUpdateRequest bumps the enrollment counter of a class.
type EnrollmentUpdateRequest struct {
	TotalEnrolled int    `json:"totalEnrolled" validate:"gte=0"`
	StudentEmail  string `json:"studentEmail" validate:"required,email"`
	TransactionID string `json:"transactionId" validate:"required,max=255"`
}

// PaymentResponse serializes a payment receipt.
type PaymentResponse struct {
	ID            uint      `json:"id"`
	ClassID       uint      `json:"classId"`
	StudentID     uint      `json:"studentId"`
	StudentEmail  string    `json:"studentEmail"`
	TransactionID string    `json:"transactionId"`
	Amount        float64   `json:"amount"`
	TotalEnrolled int       `json:"totalEnrolled"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// EnrolledClassResponse pairs a receipt with the class it paid for.
type EnrolledClassResponse struct {
	Payment PaymentResponse `json:"payment"`
	Class   ClassResponse   `json:"class"`
}

// NewPaymentResponse converts a model into a DTO.
func NewPaymentResponse(payment models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		ClassID:       payment.ClassID,
		StudentID:     payment.StudentID,
		StudentEmail:  payment.StudentEmail,
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		TotalEnrolled: payment.TotalEnrolled,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
