package main

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"billed/internal/dto"
	"billed/internal/models"
	"billed/internal/repository"
	"billed/internal/service"
	"billed/pkg/auth"
	"billed/pkg/config"
	"billed/pkg/logger"
	"billed/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)
	authService := service.NewAuthService(repository.NewUserRepository(db, appLogger), jwtManager, appLogger)
	billRepo := repository.NewBillRepository(db, appLogger)

	appLogger.Info("Starting database seeding...")

	seedDir := filepath.Join("cmd", "seed")
	cacheFile := filepath.Join(seedDir, ".seed_cache.json")
	fixtures, _ := filepath.Glob(filepath.Join(seedDir, "fixtures", "*.json"))
	if err := seedFixtures(ctx, fixtures, cacheFile, authService, billRepo, appLogger); err != nil {
		appLogger.Fatal("Failed to seed fixtures", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!")
}

// Fixture is one seed file: accounts to provision and bills they submitted.
type Fixture struct {
	Users []FixtureUser `json:"users"`
	Bills []models.Bill `json:"bills"`
}

// FixtureUser is the only way Admin accounts get created.
type FixtureUser struct {
	dto.RegisterRequest
	Type models.UserType `json:"type"`
}

// ProcessedFile represents a fixture file already loaded into the database
type ProcessedFile struct {
	FilePath    string    `json:"file_path"`
	FileHash    string    `json:"file_hash"`
	ProcessedAt time.Time `json:"processed_at"`
}

// CacheData stores information about processed files
type CacheData struct {
	ProcessedFiles map[string]ProcessedFile `json:"processed_files"` // key: file path
}

func loadCache(cacheFile string) (*CacheData, error) {
	cache := &CacheData{
		ProcessedFiles: make(map[string]ProcessedFile),
	}

	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}

	return cache, nil
}

func saveCache(cacheFile string, cache *CacheData) error {
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// calculateFileHash calculates MD5 hash of a file
func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", fmt.Errorf("failed to calculate hash: %w", err)
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}

func seedFixtures(
	ctx context.Context,
	paths []string,
	cacheFile string,
	authService *service.AuthService,
	billRepo *repository.BillRepository,
	logger *zap.Logger,
) error {
	cache, err := loadCache(cacheFile)
	if err != nil {
		logger.Warn("Failed to load cache, will process all files", zap.Error(err))
		cache = &CacheData{ProcessedFiles: make(map[string]ProcessedFile)}
	}

	for _, path := range paths {
		fileHash, err := calculateFileHash(path)
		if err != nil {
			logger.Warn("Failed to calculate file hash, will process anyway", zap.String("path", path), zap.Error(err))
		}

		if cached, exists := cache.ProcessedFiles[path]; exists && cached.FileHash == fileHash {
			logger.Info("Fixture already loaded, skipping",
				zap.String("path", path),
				zap.Time("processed_at", cached.ProcessedAt),
			)
			continue
		}

		logger.Info("Loading fixture", zap.String("path", path))
		if err := loadFixture(ctx, path, authService, billRepo, logger); err != nil {
			logger.Error("Failed to load fixture", zap.String("path", path), zap.Error(err))
			continue
		}

		cache.ProcessedFiles[path] = ProcessedFile{
			FilePath:    path,
			FileHash:    fileHash,
			ProcessedAt: time.Now(),
		}
	}

	if err := saveCache(cacheFile, cache); err != nil {
		logger.Warn("Failed to save cache", zap.Error(err))
	} else {
		logger.Info("Cache saved", zap.Int("processed_files", len(cache.ProcessedFiles)))
	}

	return nil
}

func loadFixture(
	ctx context.Context,
	path string,
	authService *service.AuthService,
	billRepo *repository.BillRepository,
	logger *zap.Logger,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fixture Fixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("failed to parse fixture: %w", err)
	}

	for i := range fixture.Users {
		user := fixture.Users[i]
		if user.Type == "" {
			user.Type = models.UserTypeEmployee
		}
		if _, err := authService.Provision(ctx, &user.RegisterRequest, user.Type); err != nil {
			if errors.Is(err, service.ErrUserExists) {
				logger.Info("User already exists, skipping", zap.String("email", user.Email))
				continue
			}
			return fmt.Errorf("register %s: %w", user.Email, err)
		}
		logger.Info("Created user", zap.String("email", user.Email), zap.String("type", string(user.Type)))
	}

	for i := range fixture.Bills {
		bill := fixture.Bills[i]
		if bill.Status == "" {
			bill.Status = models.BillStatusPending
		}
		created, err := billRepo.Create(ctx, &bill)
		if err != nil {
			return fmt.Errorf("create bill %q: %w", bill.Name, err)
		}
		logger.Info("Created bill",
			zap.String("id", created.ID),
			zap.String("email", created.Email),
			zap.String("name", created.Name),
		)
	}

	return nil
}
