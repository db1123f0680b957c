package api

import "mailmind/internal/model"

func validActionItemStatus(s string) bool {
	return s == model.ActionItemPending || s == model.ActionItemCompleted
}

func validFollowUpStatus(s string) bool {
	switch s {
	case model.FollowUpPending, model.FollowUpCompleted, model.FollowUpOverdue:
		return true
	}
	return false
}
