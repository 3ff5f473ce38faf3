package models

// WishItem is a single entry on a participant's wish list. Free text,
// possibly containing a link. Only the owner can add or remove items; the
// owner's assigned giver can read them.
type WishItem struct {
	// ID is the unique identifier for the item (UUID format).
	ID string `json:"id"`

	// Owner is the username of the participant the wish belongs to.
	Owner string `json:"owner"`

	// Content is the wish text.
	Content string `json:"content"`

	// CreatedAt is the Unix timestamp when the item was added. Lists are
	// ordered by it.
	CreatedAt int64 `json:"created_at"`
}
