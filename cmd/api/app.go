package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-backend-go/internal/config"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/account"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrms-backend-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hrms-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/ratelimit"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/hrms-backend-go/internal/repository/postgresql"
	accountService "github.com/cmlabs-hris/hrms-backend-go/internal/service/account"
	attendanceService "github.com/cmlabs-hris/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hrms-backend-go/internal/service/auth"
	identityService "github.com/cmlabs-hris/hrms-backend-go/internal/service/identity"
	leaveService "github.com/cmlabs-hris/hrms-backend-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hrms-backend-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// stores is the record-store backend selected by DB_DRIVER.
type stores struct {
	db         *database.DB
	tx         database.Transactor
	pinger     appHTTP.Pinger
	accounts   account.AccountRepository
	attendance attendance.AttendanceRepository
	leaves     leave.LeaveRepository
}

func openStores(cfg *config.Config) (*stores, error) {
	switch cfg.Database.Driver {
	case "memory":
		slog.Warn("using in-memory store, data is lost on exit")
		store := memory.NewStore(time.Now)
		return &stores{
			tx:         store,
			pinger:     store,
			accounts:   store.Accounts(),
			attendance: store.Attendance(),
			leaves:     store.Leaves(),
		}, nil
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.Options{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, err
		}
		return &stores{
			db:         db,
			tx:         postgresql.NewTxManager(db),
			pinger:     db,
			accounts:   postgresql.NewAccountRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			leaves:     postgresql.NewLeaveRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

func (s *stores) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// application holds every wired service.
type application struct {
	cfg    *config.Config
	logger *slog.Logger
	stores *stores
	redis  *redis.Client

	authService       auth.AuthService
	accountService    account.AccountService
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	payrollService    payroll.PayrollService
}

func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	st, err := openStores(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.New(cfg.Location(), time.Now)
	params := payroll.Params{
		PFRatePercent:     cfg.Payroll.PFRatePercent,
		ProfessionalTax:   cfg.Payroll.ProfessionalTax,
		StandardAllowance: cfg.Payroll.StandardAllowance,
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Skew, time.Now)
	authSvc := serviceAuth.NewAuthService(st.accounts, jwtService)
	issuer := identityService.NewIssuer(st.accounts, clk)

	return &application{
		cfg:               cfg,
		logger:            logger,
		stores:            st,
		authService:       authSvc,
		accountService:    accountService.NewAccountService(st.tx, st.accounts, issuer, authSvc, clk, params),
		attendanceService: attendanceService.NewAttendanceService(st.attendance, clk),
		leaveService:      leaveService.NewLeaveService(st.leaves, clk),
		payrollService:    payrollService.NewPayrollService(st.accounts, clk, params),
	}, nil
}

func (a *application) loginLimiter(ctx context.Context) (ratelimit.Limiter, error) {
	rl := a.cfg.RateLimit
	if rl.Backend != "redis" {
		return ratelimit.NewMemoryLimiter(rl.LoginAttempts, rl.LoginWindow), nil
	}

	a.redis = redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := a.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", a.cfg.Redis.Addr, err)
	}
	return ratelimit.NewRedisLimiter(a.redis, rl.LoginAttempts, rl.LoginWindow, "hrms:ratelimit:login"), nil
}

func (a *application) router(limiter ratelimit.Limiter) *chi.Mux {
	return appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         a.logger,
		AllowedOrigins: a.cfg.App.AllowedOrigins,
		AuthService:    a.authService,
		LoginLimiter:   limiter,
	}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(a.authService, a.accountService),
		Employee:   appHTTP.NewEmployeeHandler(a.accountService),
		Profile:    appHTTP.NewProfileHandler(a.accountService),
		Attendance: appHTTP.NewAttendanceHandler(a.attendanceService),
		Leave:      appHTTP.NewLeaveHandler(a.leaveService),
		Payroll:    appHTTP.NewPayrollHandler(a.payrollService),
		Health:     appHTTP.NewHealthHandler(a.stores.pinger, a.cfg.Database.Driver),
	})
}

func (a *application) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			slog.Error("redis close error", "error", err)
		}
	}
	a.stores.Close()
}
