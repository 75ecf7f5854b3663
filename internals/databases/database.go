package database

import (
	"fmt"
	"log"
	"net/url"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/GradGuide-Team/CRM-Gradguide/internals/configs"
	studentModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/students/students/model"
	userModel "github.com/GradGuide-Team/CRM-Gradguide/internals/features/users/user/model"
)

var DB *gorm.DB

// BuildDSN prefers DB_DSN and otherwise assembles one from the DB_* parts.
func BuildDSN() string {
	if dsn := configs.GetEnv("DB_DSN"); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(configs.GetEnv("DB_USER"), configs.GetEnv("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", configs.GetEnv("DB_HOST", "localhost"), configs.GetEnv("DB_PORT", "5432")),
		Path:     "/" + configs.GetEnv("DB_NAME", "gradguide"),
		RawQuery: "sslmode=" + configs.GetEnv("DB_SSLMODE", "disable") + "&application_name=gradguide",
	}
	return u.String()
}

func ConnectDB() error {
	log.Println("[INFO] Connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(dialectorConfig(configs.GetEnv("DB_DRIVER", "pgx"), BuildDSN())), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	DB = db
	log.Println("[INFO] DB connected.")
	return nil
}

// dialectorConfig picks the sql driver: pgx (default) or lib/pq when DB_DRIVER=pq.
func dialectorConfig(driver, dsn string) postgres.Config {
	if driver == "pq" || driver == "postgres" {
		log.Println("[INFO] Using lib/pq driver")
		return postgres.Config{DriverName: "postgres", DSN: dsn}
	}
	return postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer friendly
	}
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[WARN] pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(configs.GetEnvInt("DB_MAX_OPEN_CONNS", 20))
	sqlDB.SetMaxIdleConns(configs.GetEnvInt("DB_MAX_IDLE_CONNS", 10))
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(DB); err != nil {
			log.Printf("[WARN] warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// AutoMigrate creates or updates the users and students tables.
func AutoMigrate(db *gorm.DB) error {
	log.Println("[INFO] Running auto-migration for users, students...")
	return db.AutoMigrate(&userModel.UserModel{}, &studentModel.StudentModel{})
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
