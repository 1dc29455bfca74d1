package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core/admin"
	"github.com/campuspay/campuspay/core/registry"
	"github.com/campuspay/campuspay/core/wallet"
)

type adminApi struct {
	session     *admin.Session
	registrySvc *registry.Service
	walletSvc   *wallet.Service
}

func registerAdminAPI(g *echo.Group, session *admin.Session, registrySvc *registry.Service, walletSvc *wallet.Service) {
	api := adminApi{session: session, registrySvc: registrySvc, walletSvc: walletSvc}

	ag := g.Group("/admin")

	// un-authed endpoints
	ag.POST("/login", api.login)

	ag.GET("/session", api.retrieve)
	ag.POST("/logout", api.logout)

	// student registry
	sg := ag.Group("/students", adminMiddleware(session, admin.PermManageStudents))
	sg.GET("", api.queryStudents)
	sg.GET("/stats", api.studentStats)
	sg.POST("", api.registerStudent)
	sg.POST("/:id/approve", api.approveStudent)
	sg.POST("/:id/suspend", api.suspendStudent)
	sg.DELETE("/:id", api.rejectStudent)

	// payment oversight
	pg := ag.Group("/payments", adminMiddleware(session, admin.PermManagePayments))
	pg.GET("", api.queryPayments)
}

// adminMiddleware rejects anonymous admin sessions and admins lacking any of
// the given permissions.
func adminMiddleware(session *admin.Session, perms ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			adm, ok := session.Current()
			if !ok {
				return errAdminNotAuthed
			}
			for _, perm := range perms {
				if !adm.HasPermission(perm) {
					return errHttpForbidden
				}
			}
			return next(ctx)
		}
	}
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if err := api.session.Login(ctx.Request().Context(), data.Email, data.Password); err != nil {
		return err
	}
	return api.retrieve(ctx)
}

func (api *adminApi) retrieve(ctx echo.Context) error {
	res := AdminSessionResponse{Loading: api.session.Loading()}
	if adm, ok := api.session.Current(); ok {
		res.Admin = &adm
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *adminApi) logout(ctx echo.Context) error {
	api.session.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryStudents(ctx echo.Context) error {
	filter := new(registry.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []registry.Record{})
	}

	recs, err := api.registrySvc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying student records")
	}
	if recs == nil {
		recs = []registry.Record{}
	}
	return ctx.JSON(http.StatusOK, recs)
}

func (api *adminApi) studentStats(ctx echo.Context) error {
	stats, err := api.registrySvc.Stats()
	if err != nil {
		return errors.Wrap(err, "computing registry stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *adminApi) registerStudent(ctx echo.Context) error {
	var data registry.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := api.registrySvc.Register(data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *adminApi) approveStudent(ctx echo.Context) error {
	rec, err := api.registrySvc.Approve(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *adminApi) suspendStudent(ctx echo.Context) error {
	rec, err := api.registrySvc.Suspend(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *adminApi) rejectStudent(ctx echo.Context) error {
	if err := api.registrySvc.Reject(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *adminApi) queryPayments(ctx echo.Context) error {
	filter := new(wallet.PaymentFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []wallet.Payment{})
	}

	payments, err := api.walletSvc.Payments(*filter)
	if err != nil {
		return errors.Wrap(err, "querying payments")
	}
	if payments == nil {
		payments = []wallet.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

type AdminSessionResponse struct {
	Admin   *admin.Admin `json:"admin"`
	Loading bool         `json:"loading"`
}
