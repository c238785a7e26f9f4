package domain

import "time"

// CheckIn records a completed field-service job visit. SyncKey is the
// client-generated idempotency key used by the mobile offline-sync path;
// it is empty for check-ins submitted through the web API.
type CheckIn struct {
	ID            int64     `json:"id" bson:"id"`
	CompanyID     int64     `json:"company_id" bson:"company_id"`
	TechnicianID  int64     `json:"technician_id" bson:"technician_id"`
	JobType       string    `json:"job_type" bson:"job_type"`
	Notes         string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CustomerName  string    `json:"customer_name,omitempty" bson:"customer_name,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty" bson:"customer_email,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Photos        []string  `json:"photos,omitempty" bson:"photos,omitempty"`
	Latitude      float64   `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude     float64   `json:"longitude,omitempty" bson:"longitude,omitempty"`
	SyncKey       string    `json:"sync_key,omitempty" bson:"sync_key,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
