package database

import (
	"context"
	"fmt"
	"time"

	"exercisetracker/internal/config"
	"exercisetracker/internal/models"
	"exercisetracker/internal/repositories"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const connectTimeout = 10 * time.Second

// Store bundles the repositories of one backing database.
type Store struct {
	Driver    string
	Users     repositories.UserRepository
	Exercises repositories.ExerciseRepository

	close func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open builds the store selected by cfg.StoreDriver. An unreachable database
// is logged and does not fail Open; requests fail at their own store calls
// until it becomes reachable.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	case config.DriverPostgres:
		return OpenGORM(postgres.Open(cfg.DatabaseDSN), config.DriverPostgres, log)
	case config.DriverSQLite:
		return OpenGORM(sqlite.Open(cfg.DatabaseDSN), config.DriverSQLite, log)
	case config.DriverMemory:
		return &Store{
			Driver:    config.DriverMemory,
			Users:     repositories.NewMemoryUserRepository(),
			Exercises: repositories.NewMemoryExerciseRepository(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func openMongo(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.MongoURI).
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout))
	if err != nil {
		return nil, fmt.Errorf("failed to configure MongoDB client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		log.Error("failed to connect to MongoDB", zap.Error(err))
	} else {
		log.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	}

	db := client.Database(cfg.MongoDatabase)
	return &Store{
		Driver:    config.DriverMongo,
		Users:     repositories.NewMongoUserRepository(db),
		Exercises: repositories.NewMongoExerciseRepository(db),
		close:     client.Disconnect,
	}, nil
}

// OpenGORM opens a SQL store through GORM and creates the users and
// exercises tables when they are missing.
func OpenGORM(dialector gorm.Dialector, driver string, log *zap.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               newGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Exercise{}); err != nil {
		log.Error("failed to prepare database", zap.String("driver", driver), zap.Error(err))
	} else {
		log.Info("connected to database", zap.String("driver", driver))
	}

	return &Store{
		Driver:    driver,
		Users:     repositories.NewGORMUserRepository(db),
		Exercises: repositories.NewGORMExerciseRepository(db),
		close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}
