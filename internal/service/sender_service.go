package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"campusbook/internal/db"
	"campusbook/internal/entities"
	"campusbook/internal/utils"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// NotifyReservation sends the confirmation or cancellation email and SMS for
// a reservation. Both sends are fire-and-forget; failures are logged, never
// surfaced to the booking flow.
func (s *SenderService) NotifyReservation(user *db.User, res *db.Reservation, facilityName, status string) {
	s.sendReservationEmail(user, res, facilityName, status)
	if user.Phone != "" {
		s.sendReservationSMS(user, res, facilityName, status)
	}
}

func (s *SenderService) sendReservationEmail(user *db.User, res *db.Reservation, facilityName, status string) {
	endTime := res.StartTime.Add(time.Duration(res.DurationHours * float64(time.Hour)))

	equipmentSummary := "None"
	if res.Equipment != "" && res.Equipment != utils.NoEquipment {
		equipmentSummary = res.Equipment
	}

	emailData := entities.ReservationEmailData{
		UserName:           user.Name,
		ReservationCode:    res.Code,
		FacilityName:       facilityName,
		StartTimeFormatted: res.StartTime.Format("02 Jan 2006 15:04 MST"),
		EndTimeFormatted:   endTime.Format("02 Jan 2006 15:04 MST"),
		EquipmentSummary:   equipmentSummary,
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your CampusBook reservation is %s - Code: %s", status, emailData.ReservationCode)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour reservation at %s is %s.\n\n"+
			"Reservation Details:\n"+
			"Reservation Code: %s\n"+
			"Facility: %s\n"+
			"Start: %s\n"+
			"End: %s\n"+
			"Equipment: %s\n\n"+
			"Thank you for using CampusBook.",
		emailData.UserName, emailData.FacilityName, status,
		emailData.ReservationCode, emailData.FacilityName,
		emailData.StartTimeFormatted, emailData.EndTimeFormatted, emailData.EquipmentSummary,
	)

	tmplPath := filepath.Join("internal", "templates", "reservation_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("ALERT: Could not parse HTML email template (%s): %v", tmplPath, err)
		return
	}

	var htmlBodyBuffer bytes.Buffer
	if err := tmpl.Execute(&htmlBodyBuffer, emailData); err != nil {
		log.Printf("ALERT: Could not execute HTML email template for reservation %s: %v", emailData.ReservationCode, err)
	}
	htmlBody := htmlBodyBuffer.String()

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent)
		if errEmail != nil {
			log.Printf("ALERT (async): Email delivery for reservation %s failed: %v", emailData.ReservationCode, errEmail)
		}
	}(user.Email, emailData.UserName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) sendReservationSMS(user *db.User, res *db.Reservation, facilityName, status string) {
	smsMessage := fmt.Sprintf("CampusBook: Reservation %s at %s has been %s!\nStart: %s.\nMore details in your email.",
		res.Code, facilityName, status,
		res.StartTime.Format("02/01 15:04"),
	)

	go func(phone, body, code string) {
		if errSMS := SendSMS(phone, body); errSMS != nil {
			log.Printf("ALERT (async): SMS delivery for reservation %s failed: %v", code, errSMS)
		}
	}(user.Phone, smsMessage, res.Code)
}
