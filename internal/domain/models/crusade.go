// internal/domain/models/crusade.go
package models

// Crusade is a rosary crusade schedule tied to a state/diocese/parish.
// Times are carried as the backend's "HH:MM" strings.
type Crusade struct {
	ID              int64  `json:"id"`
	StateID         int64  `json:"state_id"`
	DioceseID       int64  `json:"diocese_id"`
	ParishID        int64  `json:"parish_id"`
	ConfessionStart string `json:"confession_start"`
	ConfessionEnd   string `json:"confession_end"`
	MassStart       string `json:"mass_start"`
	MassEnd         string `json:"mass_end"`
	CrusadeStart    string `json:"crusade_start"`
	CrusadeEnd      string `json:"crusade_end"`
	ContactName     string `json:"contact_name"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	Comments        string `json:"comments"`
}
