package domain

import "time"

type Team struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	TeamCode  string     `json:"team_code"`
	CreatorID int64      `json:"creator_id"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
