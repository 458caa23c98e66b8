package config

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// ConnectDB opens the purchase-order database using the configured driver.
func ConnectDB() (*gorm.DB, error) {
	_, dialector := getDSNAndDialector(DBName)
	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return nil, err
	}
	return db, nil
}

func getDSNAndDialector(dbName string) (string, gorm.Dialector) {
	switch DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			DBHost, DBUser, DBPassword, dbName, DBPort)
		return dsn, postgres.Open(dsn)
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort, dbName)
		return dsn, mysql.Open(dsn)
	case "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=%s",
			DBUser, DBPassword, DBHost, DBPort, dbName)
		return dsn, sqlserver.Open(dsn)
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", DBDriver)
		return "", nil
	}
}

// EnsureDatabaseExists connects to the server without a database name and
// creates the target database when it is missing. MySQL and SQL Server
// support IF NOT EXISTS / conditional creation; postgres needs a check.
func EnsureDatabaseExists(dbName string) {
	var dsn string
	var db *gorm.DB
	var err error

	switch DBDriver {
	case "postgres":
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=postgres port=%s sslmode=disable",
			DBHost, DBUser, DBPassword, DBPort)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "mysql":
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/?charset=utf8mb4&parseTime=True&loc=Local",
			DBUser, DBPassword, DBHost, DBPort)
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "mssql":
		dsn = fmt.Sprintf("sqlserver://%s:%s@%s:%s?database=master",
			DBUser, DBPassword, DBHost, DBPort)
		db, err = gorm.Open(sqlserver.Open(dsn), &gorm.Config{})
	default:
		log.Fatalf("Unsupported DB_DRIVER: %s", DBDriver)
	}

	if err != nil {
		log.Fatalf("Failed to connect to DB server: %v", err)
	}

	switch DBDriver {
	case "postgres":
		var count int64
		db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", dbName).Scan(&count)
		if count == 0 {
			if err := db.Exec("CREATE DATABASE " + dbName).Error; err != nil {
				log.Fatalf("Failed to create database %s: %v", dbName, err)
			}
			fmt.Println("Database created:", dbName)
		}
	case "mysql":
		if err := db.Exec("CREATE DATABASE IF NOT EXISTS " + dbName).Error; err != nil {
			log.Fatalf("Failed to create database %s: %v", dbName, err)
		}
	case "mssql":
		sql := fmt.Sprintf("IF DB_ID('%s') IS NULL CREATE DATABASE [%s]", dbName, dbName)
		if err := db.Exec(sql).Error; err != nil {
			log.Fatalf("Failed to create database %s: %v", dbName, err)
		}
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.Close()
	}
}
