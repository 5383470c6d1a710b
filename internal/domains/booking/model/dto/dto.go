package dto

import (
	"errors"
	"time"
	"villa/internal/domains/booking/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

var (
	ErrInvalidStartDate = errors.New("start_date must be an ISO 8601 date")
	ErrInvalidEndDate   = errors.New("end_date must be an ISO 8601 date")
	ErrInvalidRange     = errors.New("end_date must be after start_date")
)

// ParseRange reads an ISO 8601 date pair and checks end is after start.
func ParseRange(startValue, endValue string) (start, end time.Time, err error) {
	start, err = timezone.ParseISO(startValue)
	if err != nil {
		return start, end, ErrInvalidStartDate
	}

	end, err = timezone.ParseISO(endValue)
	if err != nil {
		return start, end, ErrInvalidEndDate
	}

	if !end.After(start) {
		return start, end, ErrInvalidRange
	}

	return start, end, nil
}

type CreateBookingRequest struct {
	StartDate     string  `json:"start_date"               validate:"required"`
	EndDate       string  `json:"end_date"                 validate:"required"`
	Guests        int     `json:"guests"                   validate:"required,min=1"`
	GuestName     string  `json:"guest_name"               validate:"required,max=100"`
	GuestEmail    string  `json:"guest_email"              validate:"required,email"`
	GuestPhone    *string `json:"guest_phone,omitempty"    validate:"omitempty,max=30"`
	Notes         *string `json:"notes,omitempty"          validate:"omitempty,max=2000"`
	PromotionCode *string `json:"promotion_code,omitempty" validate:"omitempty,alphanum,max=32"`
}

func (r *CreateBookingRequest) ToModel(userID *string, actor string, start, end time.Time) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		GuestName:     r.GuestName,
		GuestEmail:    r.GuestEmail,
		GuestPhone:    r.GuestPhone,
		StartDate:     start,
		EndDate:       end,
		Guests:        r.Guests,
		Notes:         r.Notes,
		Status:        model.StatusPending,
		PromotionCode: r.PromotionCode,
		Metadata:      gModel.NewMetadata(actor, timezone.Now()),
	}
}

// AdminCreateBookingRequest books on behalf of a guest, optionally in a
// status other than pending.
type AdminCreateBookingRequest struct {
	CreateBookingRequest
	UserID *string      `json:"user_id,omitempty" validate:"omitempty,uuid"`
	Status model.Status `json:"status,omitempty"  validate:"omitempty,enum"`
}

type UpdateBookingRequest struct {
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	Guests     *int    `json:"guests,omitempty"      validate:"omitempty,min=1"`
	GuestName  *string `json:"guest_name,omitempty"  validate:"omitempty,max=100"`
	GuestEmail *string `json:"guest_email,omitempty" validate:"omitempty,email"`
	GuestPhone *string `json:"guest_phone,omitempty" validate:"omitempty,max=30"`
	Notes      *string `json:"notes,omitempty"       validate:"omitempty,max=2000"`
}

// BookingChanges is the column set an update writes.
type BookingChanges struct {
	StartDate  *time.Time `db:"start_date"`
	EndDate    *time.Time `db:"end_date"`
	Guests     *int       `db:"guests"`
	GuestName  *string    `db:"guest_name"`
	GuestEmail *string    `db:"guest_email"`
	GuestPhone *string    `db:"guest_phone"`
	Notes      *string    `db:"notes"`
}

// ToChanges merges the request over current and validates the resulting range.
func (r *UpdateBookingRequest) ToChanges(current model.Booking) (BookingChanges, error) {
	changes := BookingChanges{
		Guests:     r.Guests,
		GuestName:  r.GuestName,
		GuestEmail: r.GuestEmail,
		GuestPhone: r.GuestPhone,
		Notes:      r.Notes,
	}

	start, end := current.StartDate, current.EndDate

	if r.StartDate != nil {
		parsed, err := timezone.ParseISO(*r.StartDate)
		if err != nil {
			return changes, ErrInvalidStartDate
		}

		start = parsed
		changes.StartDate = &start
	}

	if r.EndDate != nil {
		parsed, err := timezone.ParseISO(*r.EndDate)
		if err != nil {
			return changes, ErrInvalidEndDate
		}

		end = parsed
		changes.EndDate = &end
	}

	if !end.After(start) {
		return changes, ErrInvalidRange
	}

	return changes, nil
}

type UpdateStatusRequest struct {
	Status model.Status `json:"status" validate:"required,enum"`
}

type StatusChange struct {
	Status model.Status `db:"status"`
}

type BookingResponse struct {
	ID            string       `json:"id"`
	UserID        *string      `json:"user_id,omitempty"`
	GuestName     string       `json:"guest_name"`
	GuestEmail    string       `json:"guest_email"`
	GuestPhone    *string      `json:"guest_phone,omitempty"`
	StartDate     string       `json:"start_date"`
	EndDate       string       `json:"end_date"`
	Guests        int          `json:"guests"`
	Notes         *string      `json:"notes,omitempty"`
	Status        model.Status `json:"status"`
	PromotionCode *string      `json:"promotion_code,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.StartDate = timezone.FormatISO(model.StartDate)
	r.EndDate = timezone.FormatISO(model.EndDate)
	r.Guests = model.Guests
	r.Notes = model.Notes
	r.Status = model.Status
	r.PromotionCode = model.PromotionCode
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, m := range models {
		r.Bookings[i].FromModel(m)
	}
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type AvailabilityResponse struct {
	Available bool        `json:"available"`
	Conflicts []DateRange `json:"conflicts"`
}

func (r *AvailabilityResponse) FromModels(conflicts []model.Booking) {
	r.Available = len(conflicts) == 0
	r.Conflicts = make([]DateRange, len(conflicts))

	for i, booking := range conflicts {
		r.Conflicts[i] = DateRange{
			StartDate: timezone.FormatISO(booking.StartDate),
			EndDate:   timezone.FormatISO(booking.EndDate),
		}
	}
}
