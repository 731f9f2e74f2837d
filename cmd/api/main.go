package main

import (
	"context"
	"log"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/media"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Subscription{},
		&model.WatchHistoryEntry{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	subRepo := infraRepo.NewSubscriptionGormRepository(gormDB)
	videoRepo := infraRepo.NewVideoGormRepository(gormDB)
	historyRepo := infraRepo.NewWatchHistoryGormRepository(gormDB)

	//メディアストレージ（S3互換）
	mediaStore, err := media.NewS3Storage(context.Background(), cfg)
	if err != nil {
		log.Fatalf("media: %v", err)
	}

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := usecase.NewBcryptPasswordHasher(10)
	verifier := usecase.NewBcryptPasswordVerifier()

	//JWT issuer（シークレット・TTL未設定ならここで落とす）
	issuer, err := usecase.NewJWTTokenIssuer(cfg)
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	//Validator
	authValidator := validator.NewAuthValidator(userRepo)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(userRepo, authValidator, hasher, verifier, issuer, mediaStore, idGen, clock)
	accountUC := usecase.NewAccountUsecase(userRepo, authValidator, mediaStore)
	channelUC := usecase.NewChannelUsecase(userRepo, subRepo, idGen, clock)
	historyUC := usecase.NewHistoryUsecase(userRepo, videoRepo, historyRepo, clock)

	//Handler生成
	authH := handler.NewAuthHandler(authUC, cfg)
	accountH := handler.NewAccountHandler(accountUC)
	channelH := handler.NewChannelHandler(channelUC)
	historyH := handler.NewHistoryHandler(historyUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	e := server.New(cfg, authH, accountH, channelH, historyH)
	if err := server.Start(e, addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
