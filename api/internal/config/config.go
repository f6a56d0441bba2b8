package config

import (
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

type Config struct {
	rest.RestConf

	Auth struct {
		AccessSecret string
		AccessExpire int64  `json:",default=2592000"` // 30 days
		CookieName   string `json:",default=token"`
		SecureCookie bool   `json:",optional"`
	}

	// Mongo with an empty URI runs the service on the in-memory store.
	Mongo struct {
		URI      string `json:",optional"`
		Database string `json:",default=mybudget"`
	}

	Redis redis.RedisConf `json:",optional"`

	LoginLimit struct {
		Period int `json:",default=60"`
		Quota  int `json:",default=10"`
	}

	Telegram struct {
		Token string `json:",optional"`
	}

	Catalog struct {
		File             string `json:",optional"`
		PurchaseCategory string `json:",default=shopping"`
	}

	Wishlist struct {
		MaturityDays int `json:",default=30"`
	}

	Timezone string `json:",optional"`
}
