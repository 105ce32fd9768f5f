package entity

import "time"

// Asset is the database record for an uploaded file; the bytes live in the
// object store under Key.
type Asset struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Mime      string    `json:"mime"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// StoredObject is a raw object-store listing entry.
type StoredObject struct {
	Key  string `json:"key"`
	Size int64  `json:"size"`
}
