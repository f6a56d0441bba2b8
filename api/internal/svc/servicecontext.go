package svc

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/qx/mybudget/api/internal/catalog"
	"github.com/qx/mybudget/api/internal/config"
	"github.com/qx/mybudget/api/internal/middleware"
	"github.com/qx/mybudget/api/internal/model"
	"github.com/qx/mybudget/api/internal/notify"
	"github.com/qx/mybudget/api/internal/session"
	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest"
)

const loginLimitKeyPrefix = "limit:login"

type ServiceContext struct {
	Config      config.Config
	Models      *model.Models
	Issuer      *session.Issuer
	Revocations session.RevocationStore
	Catalog     *catalog.Catalog
	Notifier    notify.Notifier
	Bot         *tgbotapi.BotAPI
	Auth        rest.Middleware
	LoginLimit  rest.Middleware
	Now         func() time.Time
}

func NewServiceContext(c config.Config) *ServiceContext {
	cat := catalog.Default()
	if len(c.Catalog.File) > 0 {
		var err error
		if cat, err = catalog.Load(c.Catalog.File); err != nil {
			panic(err)
		}
	}
	if !cat.IsExpense(c.Catalog.PurchaseCategory) {
		panic(fmt.Errorf("purchase category %q is not an expense category", c.Catalog.PurchaseCategory))
	}

	models := model.NewMemoryModels()
	if len(c.Mongo.URI) > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var err error
		models, err = model.NewMongoModels(ctx, c.Mongo.URI, c.Mongo.Database)
		if err != nil {
			panic(err)
		}
	} else {
		logx.Info("no mongo uri configured, data is kept in memory")
	}

	svcCtx := &ServiceContext{
		Config:      c,
		Models:      models,
		Issuer:      session.NewIssuer(c.Auth.AccessSecret, time.Duration(c.Auth.AccessExpire)*time.Second),
		Revocations: session.NewMemoryRevocations(),
		Catalog:     cat,
		Notifier:    notify.Nop{},
		Now:         clock(c.Timezone),
	}

	var limiter *limit.PeriodLimit
	if len(c.Redis.Host) > 0 {
		redisClient := redis.MustNewRedis(c.Redis)
		svcCtx.Revocations = session.NewRedisRevocations(redisClient)
		limiter = limit.NewPeriodLimit(c.LoginLimit.Period, c.LoginLimit.Quota, redisClient, loginLimitKeyPrefix)
	}

	if len(c.Telegram.Token) > 0 {
		bot, err := tgbotapi.NewBotAPI(c.Telegram.Token)
		if err != nil {
			panic(err)
		}
		svcCtx.Bot = bot
		svcCtx.Notifier = notify.NewTelegram(bot)
	}

	svcCtx.Auth = middleware.NewAuthMiddleware(middleware.AuthConfig{
		CookieName:  c.Auth.CookieName,
		Issuer:      svcCtx.Issuer,
		Revocations: svcCtx.Revocations,
		Users:       models.Users,
	}).Handle
	svcCtx.LoginLimit = middleware.NewLoginLimitMiddleware(limiter).Handle

	return svcCtx
}

// clock returns now in the configured timezone, which decides where
// calendar months start.
func clock(timezone string) func() time.Time {
	if len(timezone) == 0 {
		return time.Now
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		logx.Errorf("unknown timezone %q, using local time: %v", timezone, err)
		return time.Now
	}

	return func() time.Time {
		return time.Now().In(loc)
	}
}
