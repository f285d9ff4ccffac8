package handler

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/config"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/executor"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/repository"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/workspace"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailChannel *amqp.Channel
	executor    *executor.Client
	workspaces  *workspace.Store

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailChannel: mailCh,
		executor:    executor.NewClient(cfg),
		workspaces: workspace.NewStore(
			rdb,
			time.Duration(cfg.Workspace.Expiration)*time.Second,
			time.Duration(cfg.Workspace.LockTTL)*time.Second,
		),

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// everything below requires a logged-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredRole([]domain.Role{domain.RoleDirector})).Post("/", h.CreateUser)
			r.Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.Get("/", h.GetUserInfo)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleDirector})).Patch("/", h.UpdateUser)
				r.With(h.preventOperateInitialAdmin).With(h.RequiredRole([]domain.Role{domain.RoleDirector})).Delete("/", h.DeleteUser)
			})
		})

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.GetJobs)
			r.With(h.RequiredRole([]domain.Role{domain.RoleDirector})).Post("/", h.CreateJob)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", h.GetAllSessions)
			r.With(h.RequiredRole([]domain.Role{domain.RoleDirector})).Post("/", h.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.session)
				r.Get("/", h.GetSession)
				r.Get("/staff", h.GetSessionStaff)
				r.Get("/groups", h.GetSessionGroups)

				r.Route("/workspaces/{flow}", func(r chi.Router) {
					r.Use(h.flow)
					r.Post("/", h.CreateWorkspace)
					r.Group(func(r chi.Router) {
						r.Use(h.loadWorkspace)
						r.Get("/", h.GetWorkspace)
						r.Delete("/", h.DiscardWorkspace)

						r.Post("/pools", h.AddPoolMember)
						r.Delete("/pools", h.RemovePoolMember)
						r.Post("/assignments", h.AddAssignment)
						r.Delete("/assignments", h.RemoveAssignment)
						r.Post("/exclusions", h.AddExclusion)
						r.Delete("/exclusions", h.RemoveExclusion)
						r.Post("/adhoc-staff", h.AddAdhocStaff)
						r.Delete("/adhoc-staff", h.RemoveAdhocStaff)
						r.Post("/weeks", h.AddWeek)
						r.Delete("/weeks/{week}", h.RemoveWeek)
						r.Patch("/weeks/{week}", h.UpdateWeek)
						r.Patch("/capacity-overrides", h.SetCapacityOverride)

						r.Get("/conflicts", h.GetConflicts)
						r.Get("/export", h.ExportWorkspace)
						r.Post("/generate", h.Generate)
					})
					r.Post("/import", h.ImportWorkspace)
				})

				r.Route("/rosters/{flow}", func(r chi.Router) {
					r.Use(h.flow)
					r.Get("/", h.GetRoster)
					r.Get("/analysis", h.GetRosterAnalysis)
					r.Get("/csv", h.ExportRosterCSV)
				})
			})
		})
	})
}
