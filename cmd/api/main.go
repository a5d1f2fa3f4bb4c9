package main

import (
	"context"
	"fmt"
	"time"

	"invest-portal/internal/attachment"
	"invest-portal/internal/blobstore"
	common_api "invest-portal/internal/common/api"
	"invest-portal/internal/common/apperrors"
	"invest-portal/internal/config"
	"invest-portal/internal/database"
	"invest-portal/internal/features/audit"
	"invest-portal/internal/features/auth"
	"invest-portal/internal/features/cleanup"
	"invest-portal/internal/features/company"
	"invest-portal/internal/features/contact"
	"invest-portal/internal/features/district"
	"invest-portal/internal/features/email"
	"invest-portal/internal/features/gallery"
	"invest-portal/internal/features/industry"
	"invest-portal/internal/features/lookup"
	"invest-portal/internal/features/member"
	"invest-portal/internal/features/policy"
	"invest-portal/internal/features/popup"
	"invest-portal/internal/features/startup"
	"invest-portal/internal/features/system"
	"invest-portal/internal/features/toputility"
	"invest-portal/internal/features/user"
	"invest-portal/internal/logger"
	"invest-portal/internal/middleware"
	"invest-portal/internal/recordstore"
	"invest-portal/pkg/utils"

	_ "invest-portal/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return apperrors.Respond(c, err)
		},
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.CORSMiddleware(cfg))

	if cfg.StorageDriver == config.StorageLocal {
		app.Static(cfg.FSURL, cfg.FSPath)
	}

	return app
}

// NewRegistry binds every attachment schema to its Mongo collection and the configured blob store.
func NewRegistry(mongodb *database.MongodbDB, blobs blobstore.Store, log *zap.Logger) *attachment.Registry {
	open := func(collection string) recordstore.Store {
		return recordstore.NewMongoStore(mongodb, collection)
	}
	return attachment.NewRegistry(open, blobs, log, attachment.Schemas()...)
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	log.Info("Registering routes", zap.Int("count", len(routes)))
	for _, route := range routes {
		log.Debug("Setting up route", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// ConfigureTokens applies the configured JWT secret and lifetime.
func ConfigureTokens(cfg *config.Config) {
	utils.SetSecret(cfg.JWTSecret)
	utils.SetExpiry(cfg.JWTExpiry)
}

// PrepareStorage creates the upload categories before the server accepts requests.
func PrepareStorage(lc fx.Lifecycle, registry *attachment.Registry) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return registry.Prepare(ctx)
		},
	})
}

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("Server running", zap.String("port", cfg.Port), zap.String("env", cfg.Environment))
				if err := app.Listen(port); err != nil {
					log.Fatal("Server failed to start", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

type indexOwner interface {
	EnsureIndexes(ctx context.Context)
}

type IndexParams struct {
	fx.In

	Audit      audit.AuditRepository
	Users      user.UserRepository
	Companies  company.CompanyRepository
	Startups   startup.StartupRepository
	Industries industry.IndustryRepository
	Members    member.MemberRepository
	Policies   policy.PolicyRepository
	Popups     popup.PopupRepository
	Gallery    gallery.GalleryRepository
	TopUtility toputility.TopUtilityRepository
	Contacts   contact.ContactRepository
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, p IndexParams) {
	owners := []indexOwner{
		p.Audit, p.Users, p.Companies, p.Startups, p.Industries, p.Members,
		p.Policies, p.Popups, p.Gallery, p.TopUtility, p.Contacts,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for _, o := range owners {
					o.EnsureIndexes(ctx)
				}
			}()
			return nil
		},
	})
}

// @title           Investment Portal API
// @version         1.0
// @description     Content and registration backend for the state investment portal.

// @host            localhost:5000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,

			// Initialize Storage
			blobstore.NewStore,
			NewRegistry,

			// Initialize Repository
			audit.NewAuditRepository,
			user.NewUserRepository,
			company.NewCompanyRepository,
			startup.NewStartupRepository,
			district.NewDistrictRepository,
			industry.NewIndustryRepository,
			member.NewMemberRepository,
			policy.NewPolicyRepository,
			popup.NewPopupRepository,
			gallery.NewGalleryRepository,
			toputility.NewTopUtilityRepository,
			email.NewEmailRepository,
			contact.NewContactRepository,

			audit.NewAuditService,
			user.NewUserService,
			auth.NewAuthService,
			company.NewCompanyService,
			startup.NewStartupService,
			district.NewDistrictService,
			industry.NewIndustryService,
			member.NewMemberService,
			policy.NewPolicyService,
			popup.NewPopupService,
			gallery.NewGalleryService,
			toputility.NewTopUtilityService,
			email.NewEmailService,
			contact.NewContactService,
			lookup.NewLookupService,
			cleanup.NewCleanupService,

			// Interface Adapters to satisfy Fx
			func(r user.UserRepository) audit.UserFinder { return r },
			func(db *database.MongodbDB) system.Pinger { return db },

			// Initialize Controller
			audit.NewAuditController,
			user.NewUserController,
			auth.NewAuthController,
			company.NewCompanyController,
			startup.NewStartupController,
			district.NewDistrictController,
			industry.NewIndustryController,
			member.NewMemberController,
			policy.NewPolicyController,
			popup.NewPopupController,
			gallery.NewGalleryController,
			toputility.NewTopUtilityController,
			contact.NewContactController,
			lookup.NewLookupController,
			cleanup.NewCleanupController,
			system.NewHealthController,

			// Initialize API Routes
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(company.NewCompanyApi),
			AsRoute(startup.NewStartupApi),
			AsRoute(district.NewDistrictApi),
			AsRoute(industry.NewIndustryApi),
			AsRoute(member.NewMemberApi),
			AsRoute(policy.NewPolicyApi),
			AsRoute(popup.NewPopupApi),
			AsRoute(gallery.NewGalleryApi),
			AsRoute(toputility.NewTopUtilityApi),
			AsRoute(contact.NewContactApi),
			AsRoute(lookup.NewLookupApi),
			AsRoute(cleanup.NewCleanupApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			ConfigureTokens,
			PrepareStorage,
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, cleanupService cleanup.CleanupService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return cleanupService.InitializeScheduler(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return cleanupService.StopScheduler()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
