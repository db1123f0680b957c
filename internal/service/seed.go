package service

import (
	"fmt"
	"time"

	"mailmind/internal/model"
)

// seed timestamps may or may not carry a zone suffix
var seedTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func seedToEmail(se seedEmail) (*model.Email, error) {
	var ts time.Time
	var err error
	for _, layout := range seedTimeLayouts {
		ts, err = time.Parse(layout, se.Timestamp)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("seed email %s: bad timestamp %q", se.ID, se.Timestamp)
	}
	return &model.Email{
		ID:         se.ID,
		Sender:     se.Sender,
		Subject:    se.Subject,
		Body:       se.Body,
		ReceivedAt: ts,
		IsRead:     se.IsRead,
	}, nil
}
