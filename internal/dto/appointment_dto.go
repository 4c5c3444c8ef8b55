package dto

import "time"

type AppointmentRequest struct {
	Title string `json:"title" validate:"max=255"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

type AppointmentResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}
