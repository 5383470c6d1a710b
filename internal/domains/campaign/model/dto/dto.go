package dto

import (
	"villa/infras/bird"
	userModel "villa/internal/domains/user/model"
)

type Audience string

func (a Audience) IsValid() bool {
	switch a {
	case userModel.AudienceAll, userModel.AudienceMarketing, userModel.AudienceGuests:
		return true
	default:
		return false
	}
}

type EmailCampaignRequest struct {
	Subject  string   `json:"subject"  validate:"required,max=200"`
	Body     string   `json:"body"     validate:"required,max=20000"`
	Audience Audience `json:"audience" validate:"required,enum"`
}

type MessageCampaignRequest struct {
	Body     string       `json:"body"     validate:"required,max=1000"`
	Channel  bird.Channel `json:"channel"  validate:"required,enum"`
	Audience Audience     `json:"audience" validate:"required,enum"`
}

type CampaignResponse struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}
