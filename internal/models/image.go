package models

import "time"

// Image is an uploaded picture kept inline as a data URL.
type Image struct {
	ID          string    `json:"_id" bson:"_id" mapstructure:"id"`
	Filename    string    `json:"filename" bson:"filename" mapstructure:"filename"`
	ContentType string    `json:"contentType" bson:"contentType" mapstructure:"content_type"`
	Size        int64     `json:"size" bson:"size" mapstructure:"size"`
	DataURL     string    `json:"imageUrl" bson:"imageUrl" mapstructure:"data_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt" mapstructure:"created_at"`
}
