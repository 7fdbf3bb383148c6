package main

import (
	"os"
	"os/signal"
	"syscall"

	"ecommerce/internal/config"
	"ecommerce/internal/domain/model"
	"ecommerce/internal/handler"
	"ecommerce/internal/infra/db"
	"ecommerce/internal/infra/logging"
	infraRepo "ecommerce/internal/infra/repository"
	"ecommerce/internal/server"
	"ecommerce/internal/usecase"
	auth "ecommerce/internal/usecase/auth_usecase"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

func main() {
	app := &cli.App{
		Name:  "ecommerce",
		Usage: "e-commerce backend API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
			{
				Name:  "create-admin",
				Usage: "create an ADMIN user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
		},
		// サブコマンド無しはserve
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("application failed")
	}
}

// 設定・ロガー・DB
func bootstrap() (config.Config, *log.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	logger, err := logging.Setup(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := db.Migrate(gormDB, model.All()...); err != nil {
			return config.Config{}, nil, nil, err
		}
	}
	return cfg, logger, gormDB, nil
}

func serve(c *cli.Context) error {
	cfg, logger, gormDB, err := bootstrap()
	if err != nil {
		return err
	}

	//Repository（GORM実装）生成
	repos := infraRepo.NewRepos(gormDB)
	txm := infraRepo.NewTxManagerGorm(gormDB)
	clock := usecase.SystemClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(repos.Users(), hasher)
	loginUC := auth.NewLoginUsecase(repos.Users(), verifier, issuer, clock)
	profileUC := auth.NewProfileUsecase(repos.Users(), hasher)
	productUC := usecase.NewProductUsecase(txm, repos.Products())
	categoryUC := usecase.NewCategoryUsecase(txm, repos.Categories(), repos.Products())
	cartUC := usecase.NewCartUsecase(txm, repos.Users(), repos.Products(), repos.CartItems())
	orderUC := usecase.NewOrderUsecase(txm, repos.Orders(), clock)
	paymentUC := usecase.NewPaymentUsecase(txm, repos.Payments(), clock)

	//Handler生成
	e := server.New(cfg, logger, server.Handlers{
		Users:      handler.NewUserHandler(registerUC, loginUC, profileUC),
		Products:   handler.NewProductHandler(productUC),
		Categories: handler.NewCategoryHandler(categoryUC),
		Cart:       handler.NewCartHandler(cartUC),
		Orders:     handler.NewOrderHandler(orderUC),
		Payments:   handler.NewPaymentHandler(paymentUC),
	})

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	//Server起動
	return server.Run(ctx, e, cfg.Addr())
}

func createAdmin(c *cli.Context) error {
	cfg, _, gormDB, err := bootstrap()
	if err != nil {
		return err
	}

	registerUC := auth.NewRegisterUserUsecase(
		infraRepo.NewUserGormRepository(gormDB),
		auth.NewBcryptPasswordHasher(cfg.BcryptCost),
	)
	u, err := registerUC.CreateAdmin(c.Context, auth.RegisterUserInput{
		Username: c.String("username"),
		Email:    c.String("email"),
		Password: c.String("password"),
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"user_id": u.ID, "username": u.Username}).Info("admin created")
	return nil
}
