package domain

// Table is a mongo collection name
type Table string

const (
	TableListingLikes Table = "listing_likes"
)
