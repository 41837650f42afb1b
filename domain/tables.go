package domain

// Table names of the persistent key-value store.
const (
	TableListings  = "listings"
	TableOperators = "operators"
)
