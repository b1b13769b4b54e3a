package domain

import "time"

// Message is a contact-form submission. Anonymous visitors may send one.
type Message struct {
	ID      string    `json:"id" bson:"_id"`
	Name    string    `json:"name" bson:"name" validate:"required,personname"`
	Email   string    `json:"email" bson:"email" validate:"required,blogemail"`
	Subject string    `json:"subject" bson:"subject" validate:"required,min=3,max=100"`
	Content string    `json:"content" bson:"content" validate:"required,trimmin=10,trimmax=5000"`
	SentAt  time.Time `json:"sent_at" bson:"sent_at"`
	Read    bool      `json:"read" bson:"read"`
}
