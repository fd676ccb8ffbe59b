package inventory

import (
	"fmt"
	"time"

	"github.com/louisbranch/unclutter.space/internal/platform/id"
)

// User is an anonymous account. It carries no secret; identity is proven
// solely by possession of a valid signed session credential.
type User struct {
	ID        string
	CreatedAt time.Time
}

// CreateUser mints a new anonymous user with a generated ID.
func CreateUser(now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	return User{
		ID:        userID,
		CreatedAt: now().UTC(),
	}, nil
}
