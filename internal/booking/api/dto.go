package api

type AssignmentReq struct {
	EventID    int64  `json:"event_id" binding:"required"`
	MusicianID int64  `json:"musician_id" binding:"required"`
	Status     string `json:"status" binding:"omitempty,oneof=PENDING ACCEPTED DECLINED CANCELLED"`
	AgreedFee  string `json:"agreed_fee"`
	Notes      string `json:"notes"`
}

type CreateMusicianReq struct {
	Name       string `json:"name" binding:"required"`
	Instrument string `json:"instrument"`
	Phone      string `json:"phone"`
	Email      string `json:"email" binding:"omitempty,email"`
	DefaultFee string `json:"default_fee"`
	Notes      string `json:"notes"`
}
