package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/qx/mybudget/api/internal/config"
	"github.com/qx/mybudget/api/internal/errorx"
	"github.com/qx/mybudget/api/internal/handler"
	"github.com/qx/mybudget/api/internal/svc"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/proc"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/budget.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)

	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(c)
	handler.RegisterHandlers(server, ctx)
	httpx.SetErrorHandlerCtx(errorx.Handler)

	if ctx.Bot != nil {
		botCtx, cancel := context.WithCancel(context.Background())
		proc.AddShutdownListener(cancel)
		go handler.NewBotHandler(ctx).Serve(botCtx, ctx.Bot)
	}

	fmt.Printf("Starting server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}
