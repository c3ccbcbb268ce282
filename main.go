package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gustavopprado/ecommerce-fgv/config"
	"github.com/gustavopprado/ecommerce-fgv/internal/adminapi"
	"github.com/gustavopprado/ecommerce-fgv/internal/app"
	"github.com/gustavopprado/ecommerce-fgv/internal/portalapi"
	"github.com/gustavopprado/ecommerce-fgv/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "ecommerce.yml", "config yaml file")
	initdb   = flag.Bool("initdb", false, "initialize database and exit")
	dev      = flag.Bool("x", false, "debug mode")
)

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	if *dev {
		cfg.System.Debug = true
	}

	application := app.NewApplication(cfg)
	application.Init()
	defer application.Release()

	if *initdb {
		application.InitDb()
		fmt.Println("database initialized")
		return
	}

	webserver.Init(application)
	adminapi.InitRouter()
	portalapi.InitRouter()

	if err := webserver.Listen(); err != nil {
		zap.L().Fatal("web server exited", zap.Error(err))
	}
}
