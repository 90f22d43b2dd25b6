package constants

const (
	MarketplaceExchange      = "marketplace_exchange"
	FavoritesChangedRouteKey = "favorites.changed"
)
