// internal/app/system/backend/types.go
package backend

import "github.com/dalemusser/diocesehub/internal/domain/models"

// Aliases keep the resource declarations in client.go short.
type (
	State     = models.State
	Diocese   = models.Diocese
	Parish    = models.Parish
	Adoration = models.Adoration
	Crusade   = models.Crusade
	User      = models.User
)
