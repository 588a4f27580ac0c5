// internal/domain/models/parish.go
package models

// Parish belongs to exactly one diocese and one state.
type Parish struct {
	ID        int64  `json:"id"`
	DioceseID int64  `json:"diocese_id"`
	StateID   int64  `json:"state_id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	PostCode  string `json:"post_code"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
}
