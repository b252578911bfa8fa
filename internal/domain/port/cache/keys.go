package cache

import "strconv"

// Cache key builders shared by the use cases that populate and the ones
// that invalidate.

// ShopKey is the cache key for a filtered shop listing
func ShopKey(country, platform string) string {
	return "shop:" + country + ":" + platform
}

// WalletKey is the cache key for a user's wallet view
func WalletKey(userID uint64) string {
	return "wallet:user:" + strconv.FormatUint(userID, 10)
}
