// internal/domain/models/state.go
package models

// State is an immutable geographic reference entity.
type State struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}
