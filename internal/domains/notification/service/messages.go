package service

import (
	"fmt"
	"villa/shared/event"
)

// message bodies are plain text; emails get an HTML twin via shared.TextToHTML

func bookingReceivedToGuest(villa string, p event.BookingPayload) (subject, text string) {
	subject = fmt.Sprintf("%s: we received your booking request", villa)
	text = fmt.Sprintf("Hi %s,\n\nThank you for your request to stay at %s from %s to %s for %d guest(s).\n"+
		"We will confirm your booking shortly.\n\nReference: %s",
		p.GuestName, villa, p.StartDate, p.EndDate, p.Guests, p.BookingID)

	return subject, text
}

func bookingReceivedToAdmin(p event.BookingPayload) (subject, text string) {
	subject = fmt.Sprintf("New booking request from %s", p.GuestName)
	text = fmt.Sprintf("Guest: %s <%s> %s\nDates: %s to %s\nGuests: %d\nReference: %s",
		p.GuestName, p.GuestEmail, p.GuestPhone, p.StartDate, p.EndDate, p.Guests, p.BookingID)

	return subject, text
}

func bookingAdminPing(p event.BookingPayload) string {
	return fmt.Sprintf("New booking request: %s, %s to %s, %d guest(s).", p.GuestName, p.StartDate, p.EndDate, p.Guests)
}

func bookingStatusToGuest(villa string, p event.BookingPayload) (subject, text string) {
	subject = fmt.Sprintf("%s: your booking is %s", villa, p.Status)
	text = fmt.Sprintf("Hi %s,\n\nYour booking at %s from %s to %s is now %s.\n\nReference: %s",
		p.GuestName, villa, p.StartDate, p.EndDate, p.Status, p.BookingID)

	return subject, text
}

func bookingReminder(villa string, p event.BookingPayload) string {
	return fmt.Sprintf("Hi %s, a reminder that your stay at %s starts on %s. We look forward to welcoming you!",
		p.GuestName, villa, p.StartDate)
}

func contactToAdmin(p event.ContactPayload) (subject, text string) {
	subject = "New contact message"
	if p.Subject != "" {
		subject = "New contact message: " + p.Subject
	}

	text = fmt.Sprintf("From: %s <%s> %s\n\n%s", p.Name, p.Email, p.Phone, p.Message)

	return subject, text
}

func chatAdminPing(p event.ChatPayload) string {
	return fmt.Sprintf("New chat message from %s: %s", p.Username, p.Body)
}
