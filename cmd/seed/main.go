package main

import (
	"log"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	bookingdomain "github.com/showbooks/backend/internal/booking/domain"
	eventdomain "github.com/showbooks/backend/internal/event/domain"
	"github.com/showbooks/backend/internal/platform/auth"
	"github.com/showbooks/backend/internal/platform/database"
	settlementdomain "github.com/showbooks/backend/internal/settlement/domain"
	treasurydomain "github.com/showbooks/backend/internal/treasury/domain"
)

// Migrates the schema and inserts the baseline rows a fresh install
// needs: an operator login, the default split policy and the standing
// treasury accounts. Safe to re-run; existing rows are left alone.
func main() {
	viper.SetConfigFile("configs/config.yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}

	db := database.NewPostgresDB(
		viper.GetString("database.dsn"),
		viper.GetInt("database.max_idle_conns"),
		viper.GetInt("database.max_open_conns"),
	)

	if err := db.AutoMigrate(
		&auth.User{},
		&eventdomain.Event{},
		&settlementdomain.SplitPolicy{},
		&settlementdomain.RevenueItem{},
		&settlementdomain.Expense{},
		&settlementdomain.Vendor{},
		&settlementdomain.Settlement{},
		&treasurydomain.Account{},
		&treasurydomain.Transaction{},
		&bookingdomain.Musician{},
		&bookingdomain.Assignment{},
	); err != nil {
		log.Fatalf("migration failed: %s", err)
	}

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}
	seed(db, "username = ?", "operator", &auth.User{
		Username:     "operator",
		PasswordHash: hash,
		DisplayName:  "Operator",
	})

	policyName := viper.GetString("settlement.default_policy_name")
	seed(db, "name = ?", policyName, &settlementdomain.SplitPolicy{
		Name:          policyName,
		Variant:       settlementdomain.SplitPercent,
		PartnerAShare: decimal.NewFromFloat(0.5),
		PartnerBShare: decimal.NewFromFloat(0.5),
		MinFundFloor:  decimal.NewFromInt(500),
		Notes:         "Even split with a minimum business-fund contribution.",
	})

	currency := viper.GetString("treasury.default_currency")
	for _, account := range []*treasurydomain.Account{
		{DisplayName: "Avi - Wallet", Role: treasurydomain.RolePartnerWallet, OwnerPartner: "Avi", Currency: currency, Active: true},
		{DisplayName: "Noam - Wallet", Role: treasurydomain.RolePartnerWallet, OwnerPartner: "Noam", Currency: currency, Active: true},
		{DisplayName: "Office Cash Box", Role: treasurydomain.RoleCashBox, Currency: currency, Active: true},
		{DisplayName: "Business Bank", Role: treasurydomain.RoleBank, Currency: currency, Active: true},
		{DisplayName: "Business Fund", Role: treasurydomain.RoleFund, Currency: currency, Active: true},
	} {
		seed(db, "display_name = ?", account.DisplayName, account)
	}

	seed(db, "name = ?", "StageWorks Lighting", &settlementdomain.Vendor{
		Name: "StageWorks Lighting",
		Type: "production",
	})

	for _, m := range []*bookingdomain.Musician{
		{Name: "Sarah Levi", Instrument: "violin", DefaultFee: decimal.NewFromInt(1200)},
		{Name: "David Peretz", Instrument: "drums", DefaultFee: decimal.NewFromInt(1000)},
	} {
		seed(db, "name = ?", m.Name, m)
	}

	log.Println("seed complete")
}

func seed(db *gorm.DB, query string, arg any, row any) {
	if err := db.Where(query, arg).FirstOrCreate(row).Error; err != nil {
		log.Fatalf("seed insert failed: %s", err)
	}
}
