package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/config"
	"storefront/internal/handler"
	"storefront/internal/infra/broker"
	"storefront/internal/infra/db"
	"storefront/internal/infra/redisclient"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	auth "storefront/internal/usecase/auth_usecase"
	"storefront/internal/util"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := util.InitLogger(cfg.GoEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer util.SyncLogger()
	logger := util.GetLogger()

	//金額はJSONで数値として返す
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.JaegerEndpoint != "" {
		tp, err := util.InitTracer("storefront", cfg.JaegerEndpoint)
		if err != nil {
			logger.Fatal("init tracer", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(ctx); err != nil {
				logger.Warn("shutdown tracer", zap.Error(err))
			}
		}()
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("connect database", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	logger.Info("database connected")

	//Redis（落ちていてもログイン制限が効かないだけ）
	rdb, err := redisclient.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.Warn("redis unavailable, login limiter fails open", zap.Error(err))
		rdb = redisclient.Open(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
	defer rdb.Close()
	limiter := redisclient.NewLoginLimiter(rdb, cfg.LoginMaxAttempts, cfg.LoginWindow)

	//Kafka（brokers未設定なら送らない）
	var events usecase.OrderEventPublisher = broker.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := broker.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopicOrders)
		defer producer.Close()
		events = broker.NewEventPublisher(producer)
		logger.Info("kafka producer initialized", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	//Repository
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderNoteRepo := infraRepo.NewOrderNoteGormRepository(gormDB)
	couponRepo := infraRepo.NewCouponGormRepository(gormDB)
	customerRepo := infraRepo.NewCustomerGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)

	//auth部品
	clock := auth.SystemClock{}
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.SessionTTL, cfg.AdminAuthTTL)

	//Usecase
	checkoutUC := usecase.NewCheckoutUsecase(txManager, events)
	productUC := usecase.NewProductUsecase(productRepo, inventoryRepo, txManager)
	couponUC := usecase.NewCouponUsecase(couponRepo, txManager)
	accountUC := usecase.NewAccountUsecase(orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager, orderRepo, orderNoteRepo, events)
	registerUC := auth.NewRegisterCustomerUsecase(customerRepo, hasher, issuer, clock)
	loginUC := auth.NewCustomerLoginUsecase(customerRepo, verifier, issuer, limiter, clock)
	adminLoginUC := auth.NewAdminLoginUsecase(userRepo, verifier, issuer, limiter, clock)
	forceLogoutUC := auth.NewForceLogoutUsecase(userRepo, auditRepo, clock)
	auditUC := usecase.NewAuditLogUsecase(auditRepo)

	//Handler + Server
	e := server.New(server.Deps{
		Tokens:         issuer,
		Users:          userRepo,
		Auth:           handler.NewAuthHandler(registerUC, loginUC, adminLoginUC, cfg.CookieSecure),
		Products:       handler.NewProductHandler(productUC),
		Coupons:        handler.NewCouponHandler(couponUC),
		Checkout:       handler.NewCheckoutHandler(checkoutUC),
		Account:        handler.NewAccountHandler(accountUC),
		AdminOrders:    handler.NewAdminOrderHandler(adminOrderUC),
		AdminInventory: handler.NewAdminInventoryHandler(productUC),
		AdminCoupons:   handler.NewAdminCouponHandler(couponUC),
		AdminUsers:     handler.NewAdminUserHandler(forceLogoutUC),
		AdminAudit:     handler.NewAdminAuditHandler(auditUC),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting http server", zap.String("port", cfg.Port))
	if err := server.Run(ctx, e, ":"+cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
	}
	logger.Info("server exited")
}
