package database

import (
	"fmt"
	"log"

	"vibestudy/internal/config"
	"vibestudy/internal/model"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.DBName,
		dbCfg.Charset,
		dbCfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")
	}

	return db, nil
}

// Migrate runs schema migration and seeds the course catalog when empty.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.Course{},
		&model.CourseProgress{},
		&model.CompletedTask{},
		&model.Checkin{},
	)
	if err != nil {
		return err
	}

	return seedCourses(db)
}

func seedCourses(db *gorm.DB) error {
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count > 0 {
		return nil
	}

	defaultCourses := []model.Course{
		{ID: "python", Language: "Python", Title: "Python in 90 Days", Description: "From first print to production data pipelines.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Data Scientist", "ML Engineer", "Backend Developer", "DevOps Engineer"})},
		{ID: "javascript", Language: "JavaScript", Title: "JavaScript in 90 Days", Description: "The web platform from the ground up.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Full-Stack Developer", "Frontend Developer", "React Developer", "Node.js Developer"})},
		{ID: "go", Language: "Go", Title: "Go in 90 Days", Description: "Servers, tooling and concurrency, the Go way.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Backend Developer", "Cloud Engineer", "Systems Developer", "DevOps Engineer"})},
		{ID: "rust", Language: "Rust", Title: "Rust in 90 Days", Description: "Memory safety without garbage collection.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Systems Developer", "Embedded Developer", "Blockchain Developer", "Game Developer"})},
		{ID: "java", Language: "Java", Title: "Java in 90 Days", Description: "Enterprise-grade applications on the JVM.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Backend Developer", "Android Developer", "Enterprise Developer", "Big Data Engineer"})},
		{ID: "cpp", Language: "C++", Title: "C++ in 90 Days", Description: "Performance-critical software and game engines.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"Game Developer", "Systems Developer", "Embedded Developer", "Graphics Engineer"})},
		{ID: "swift", Language: "Swift", Title: "Swift in 90 Days", Description: "Apps for the Apple ecosystem.", DurationDays: 90,
			CareerPaths: datatypes.NewJSONSlice([]string{"iOS Developer", "macOS Developer", "Apple Ecosystem Developer"})},
	}

	for _, course := range defaultCourses {
		if err := db.Create(&course).Error; err != nil {
			return err
		}
	}
	return nil
}
