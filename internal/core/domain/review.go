package domain

import "time"

// ReviewRequest delivery methods and lifecycle states.
const (
	ReviewMethodEmail = "email"
	ReviewMethodSMS   = "sms"

	ReviewStatusPending   = "pending"
	ReviewStatusSent      = "sent"
	ReviewStatusResponded = "responded"
	ReviewStatusExhausted = "exhausted"
)

// MaxFollowUps caps how many reminders a customer receives after the
// initial request.
const MaxFollowUps = 3

// followUpDelays is the cadence between the initial send and each reminder.
var followUpDelays = [MaxFollowUps]time.Duration{
	24 * time.Hour,
	72 * time.Hour,
	7 * 24 * time.Hour,
}

// ReviewRequest tracks a customer review solicitation and its follow-up
// schedule. NextFollowUpAt is zero once the request is responded to or the
// follow-up budget is exhausted.
type ReviewRequest struct {
	ID             int64     `json:"id" bson:"id"`
	CompanyID      int64     `json:"company_id" bson:"company_id"`
	CheckInID      int64     `json:"check_in_id" bson:"check_in_id"`
	TechnicianID   int64     `json:"technician_id" bson:"technician_id"`
	CustomerName   string    `json:"customer_name" bson:"customer_name"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Method         string    `json:"method" bson:"method"`
	Status         string    `json:"status" bson:"status"`
	SentAt         time.Time `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
	FollowUpCount  int       `json:"follow_up_count" bson:"follow_up_count"`
	NextFollowUpAt time.Time `json:"next_follow_up_at,omitempty" bson:"next_follow_up_at,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// NextFollowUpDue returns when the next reminder should fire after a send at
// the given time, or false when the follow-up budget is exhausted.
func (r *ReviewRequest) NextFollowUpDue(sentAt time.Time) (time.Time, bool) {
	if r.FollowUpCount >= MaxFollowUps {
		return time.Time{}, false
	}
	return sentAt.Add(followUpDelays[r.FollowUpCount]), true
}
