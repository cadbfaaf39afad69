package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"carbon-register/internal/controllers"
	"carbon-register/internal/repositories"
	"carbon-register/internal/services"
	"carbon-register/pkg/config"
	"carbon-register/pkg/middleware"
	"carbon-register/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts every
// route under /api. Auth routes stay public; everything else requires a
// bearer token.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	userRepo := repositories.NewUserRepository(dbConn, logger)
	locationRepo := repositories.NewLocationRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	factorRepo := repositories.NewEmissionFactorRepository(dbConn, logger)
	entryRepo := repositories.NewDataEntryRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	masterDataService := services.NewMasterDataService(locationRepo, departmentRepo, factorRepo, cacheRepo, cfg.Redis.SnapshotTTL, logger)
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger)
	locationService := services.NewLocationService(locationRepo, masterDataService, logger)
	departmentService := services.NewDepartmentService(departmentRepo, locationRepo, masterDataService, logger)
	factorService := services.NewEmissionFactorService(factorRepo, masterDataService, logger)
	csvService := services.NewCsvValidationService(masterDataService, logger)
	submissionService := services.NewSubmissionService(entryRepo, factorRepo, logger)
	approvalService := services.NewApprovalService(entryRepo, logger)
	entryService := services.NewDataEntryService(entryRepo, logger)
	reportService := services.NewReportService(entryService, logger)

	authCtrl := controllers.NewAuthController(authService, logger)
	locationCtrl := controllers.NewLocationController(locationService, logger)
	departmentCtrl := controllers.NewDepartmentController(departmentService, logger)
	factorCtrl := controllers.NewEmissionFactorController(factorService, logger)
	entryCtrl := controllers.NewDataEntryController(csvService, submissionService, approvalService, entryService, cfg.Upload.MaxCSVSize, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authCtrl, authMW)
	runLocationRouter(secureGroup, locationCtrl)
	runDepartmentRouter(secureGroup, departmentCtrl)
	runEmissionFactorRouter(secureGroup, factorCtrl)
	runDataEntryRouter(secureGroup, entryCtrl)
	runReportRouter(secureGroup, reportCtrl)

	logger.Info("routes initialized")
}
