package database

import (
	"fmt"
	"log"

	"educonnect_backend/internal/config"
	"educonnect_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey; the submission and vote paths depend on it.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")
	return db, nil
}

// Migrate creates or updates the schema for every aggregate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Test{},
		&model.TestQuestion{},
		&model.TestSubmission{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Poll{},
		&model.PollVote{},
		&model.Post{},
		&model.Resource{},
	)
}
