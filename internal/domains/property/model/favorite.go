package model

import "time"

const (
	FavoriteTableName  = "property_favorites"
	FavoriteEntityName = "favorite"

	FavoriteFieldPropertyID = "property_id"
	FavoriteFieldUserID     = "user_id"
	FavoriteFieldCreatedAt  = "created_at"
)

// Favorite is one row of the property<->user favorites join table. Keeping
// both sides in a single table makes the toggle symmetric by construction.
type Favorite struct {
	PropertyID string    `db:"property_id"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
