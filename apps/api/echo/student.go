package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core"
	"github.com/campuspay/campuspay/core/student"
)

type studentApi struct {
	session *student.Session
}

func registerStudentAPI(g *echo.Group, session *student.Session) {
	api := studentApi{session: session}

	sg := g.Group("/session")

	// un-authed endpoints
	sg.POST("/login", api.login)
	sg.POST("/register", api.register)

	sg.GET("", api.retrieve)
	sg.POST("/logout", api.logout)
	sg.POST("/verification/code", api.sendVerificationCode)
	sg.POST("/verification", api.verify)
}

// Handlers

func (api *studentApi) login(ctx echo.Context) error {
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

func (api *studentApi) register(ctx echo.Context) error {
	var data student.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}

	if err := api.session.Register(ctx.Request().Context(), data); err != nil {
		return err
	}

	usr, _ := api.session.Current()
	return ctx.JSON(http.StatusCreated, SessionResponse{Student: &usr})
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	res := SessionResponse{Loading: api.session.Loading()}
	if usr, ok := api.session.Current(); ok {
		res.Student = &usr
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *studentApi) logout(ctx echo.Context) error {
	api.session.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) sendVerificationCode(ctx echo.Context) error {
	var data SendCodeRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SendCodeRequest")
	}

	if err := api.session.SendVerificationCode(ctx.Request().Context(), data.MobileNumber); err != nil {
		return err
	}
	return ctx.JSON(http.StatusAccepted, SuccessResponse{
		Success: "A verification code has been sent to the mobile number supplied.",
	})
}

func (api *studentApi) verify(ctx echo.Context) error {
	var data VerifyRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to VerifyRequest")
	}

	if err := api.session.VerifyMobileAccount(ctx.Request().Context(), data.MobileNumber, data.Code); err != nil {
		return err
	}
	return api.retrieve(ctx)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	SessionResponse struct {
		Student *student.Student `json:"student"`
		Loading bool             `json:"loading"`
	}

	SendCodeRequest struct {
		MobileNumber string `json:"mobile_number"`
	}

	VerifyRequest struct {
		MobileNumber string `json:"mobile_number"`
		Code         string `json:"code"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate() error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return core.Validate.Struct(lr)
}
