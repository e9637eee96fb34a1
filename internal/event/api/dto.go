package api

type EventReq struct {
	Title          string `json:"title" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone"`
	ClientEmail    string `json:"client_email" binding:"omitempty,email"`
	Venue          string `json:"venue"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	Status         string `json:"status" binding:"omitempty,oneof=INQUIRY BOOKED COMPLETED CANCELLED"`
	ProcessingFees string `json:"processing_fees"`
	SplitPolicyID  *int64 `json:"split_policy_id"`
	TechNotes      string `json:"tech_notes"`
}
