package main

import (
	"log"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	bookingrepo "github.com/showbooks/backend/internal/booking/adapter/repo"
	bookingapi "github.com/showbooks/backend/internal/booking/api"
	bookingservice "github.com/showbooks/backend/internal/booking/service"
	eventrepo "github.com/showbooks/backend/internal/event/adapter/repo"
	eventapi "github.com/showbooks/backend/internal/event/api"
	eventservice "github.com/showbooks/backend/internal/event/service"
	"github.com/showbooks/backend/internal/platform/auth"
	"github.com/showbooks/backend/internal/platform/database"
	"github.com/showbooks/backend/internal/platform/logger"
	"github.com/showbooks/backend/internal/platform/server"
	settlementrepo "github.com/showbooks/backend/internal/settlement/adapter/repo"
	settlementapi "github.com/showbooks/backend/internal/settlement/api"
	settlementservice "github.com/showbooks/backend/internal/settlement/service"
	treasuryrepo "github.com/showbooks/backend/internal/treasury/adapter/repo"
	treasuryapi "github.com/showbooks/backend/internal/treasury/api"
	treasuryservice "github.com/showbooks/backend/internal/treasury/service"
)

func main() {
	viper.SetConfigFile("configs/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	appLogger := logger.NewLogger(viper.GetString("server.mode"))
	db := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)

	authSvc := auth.NewService(
		db,
		viper.GetString("auth.jwt_secret"),
		time.Duration(viper.GetInt("auth.token_ttl_hours"))*time.Hour,
	)

	// -- Treasury --
	accountRepo := treasuryrepo.NewAccountRepo(db)
	txRepo := treasuryrepo.NewTransactionRepo(db)
	sourceRepo := treasuryrepo.NewSourceRepo(db)
	treasurySvc := treasuryservice.NewService(
		treasuryservice.Config{DefaultCurrency: viper.GetString("treasury.default_currency")},
		accountRepo, txRepo, sourceRepo, appLogger,
	)
	treasuryHandler := treasuryapi.NewTreasuryHandler(treasurySvc)

	// -- Settlement (posts money movements into the treasury) --
	settlementSvc := settlementservice.NewService(
		settlementservice.Config{DefaultPolicyName: viper.GetString("settlement.default_policy_name")},
		settlementrepo.NewPolicyRepo(db),
		settlementrepo.NewEventFinanceRepo(db),
		settlementrepo.NewSettlementRepo(db),
		settlementrepo.NewRevenueRepo(db),
		settlementrepo.NewExpenseRepo(db),
		treasurySvc,
		appLogger,
	)
	settlementHandler := settlementapi.NewSettlementHandler(settlementSvc)

	// -- Events --
	eventSvc := eventservice.NewService(eventrepo.NewEventRepo(db), appLogger)
	eventHandler := eventapi.NewEventHandler(eventSvc)

	// -- Booking --
	bookingSvc := bookingservice.NewService(
		bookingrepo.NewMusicianRepo(db),
		bookingrepo.NewAssignmentRepo(db),
		bookingrepo.NewEventWindowRepo(db),
		bookingrepo.NewLocker(db),
		appLogger,
	)
	bookingHandler := bookingapi.NewBookingHandler(bookingSvc)

	srv := server.NewServer(
		appLogger,
		viper.GetString("server.port"),
		viper.GetString("server.mode"),
		authSvc,
		eventHandler,
		settlementHandler,
		treasuryHandler,
		bookingHandler,
	)

	if err := srv.Run(); err != nil {
		appLogger.Fatal("Server startup failed", zap.Error(err))
	}
}
