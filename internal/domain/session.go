package domain

import "time"

type Session struct {
	ID        int64     `json:"id"`
	Number    int32     `json:"number"`
	Name      string    `json:"name"`
	Weeks     int32     `json:"weeks"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
