package validator

import (
	"regexp"
	"time"

	"stayhub/dto"
	apperrors "stayhub/errors"
)

// DateLayout is the wire format for booking dates
const DateLayout = "02/01/2006"

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^[0-9]{10}$`)
)

// ParseDate parses a wire-format booking date
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidDate,
			"invalid date, expected dd/mm/yyyy", err)
	}
	return parsed, nil
}

// ValidateCreateReservation checks the request and returns the parsed
// check-in and check-out dates
func ValidateCreateReservation(req *dto.CreateReservationRequest) (time.Time, time.Time, error) {
	if req.LodgingID == 0 {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
			"lodging id is required", apperrors.ErrMissingRequired)
	}
	if len(req.Rooms) == 0 {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
			"at least one room is required", apperrors.ErrMissingRequired)
	}
	for _, line := range req.Rooms {
		if line.RoomID == 0 {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"room id is required", apperrors.ErrMissingRequired)
		}
		if line.Occupancy < 1 {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeValidation,
				"occupancy must be at least 1", apperrors.ErrInvalidInput)
		}
	}

	checkIn, err := ParseDate(req.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	checkOut, err := ParseDate(req.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidDate,
			"check-out date must be after check-in date", apperrors.ErrInvalidInput)
	}

	if req.GuestID == nil {
		if req.GuestName == "" {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeRequiredField,
				"guest name is required", apperrors.ErrMissingRequired)
		}
		if !phoneRegex.MatchString(req.GuestPhone) {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
				"guest phone is invalid", apperrors.ErrInvalidFormat)
		}
		if req.GuestEmail != "" && !emailRegex.MatchString(req.GuestEmail) {
			return time.Time{}, time.Time{}, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat,
				"guest email is invalid", apperrors.ErrInvalidFormat)
		}
	}
	return checkIn, checkOut, nil
}
