package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campuspay/campuspay/core/student"
	"github.com/campuspay/campuspay/core/wallet"
)

type walletApi struct {
	session *student.Session
	svc     *wallet.Service
}

func registerWalletAPI(g *echo.Group, session *student.Session, svc *wallet.Service) {
	api := walletApi{session: session, svc: svc}

	wg := g.Group("/wallet", verifiedStudentMiddleware(session))
	wg.GET("/transactions", api.queryTransactions)
	wg.POST("/payments", api.submitPayment)
	wg.POST("/allowance", api.requestAllowance)
}

// verifiedStudentMiddleware rejects anonymous sessions and, for wallet
// operations, sessions whose mobile account has not been verified yet.
func verifiedStudentMiddleware(session *student.Session) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := session.Current()
			if !ok {
				return errStudentNotAuthed
			}
			if !usr.IsMobileVerified {
				return errMobileUnverified
			}
			return next(ctx)
		}
	}
}

// Handlers

func (api *walletApi) queryTransactions(ctx echo.Context) error {
	filter := new(wallet.TransactionFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []wallet.Transaction{})
	}

	txs, err := api.svc.History(*filter)
	if err != nil {
		return errors.Wrap(err, "querying transactions")
	}
	if txs == nil {
		txs = []wallet.Transaction{}
	}
	return ctx.JSON(http.StatusOK, txs)
}

func (api *walletApi) submitPayment(ctx echo.Context) error {
	var data wallet.NewPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPayment")
	}

	usr, _ := api.session.Current()
	tx, err := api.svc.SubmitPayment(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	if err := api.session.Debit(data.Amount); err != nil {
		return errors.Wrap(err, "debiting session balance")
	}

	return ctx.JSON(http.StatusCreated, tx)
}

func (api *walletApi) requestAllowance(ctx echo.Context) error {
	var data wallet.AllowanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AllowanceRequest")
	}

	usr, _ := api.session.Current()
	p, err := api.svc.RequestAllowance(ctx.Request().Context(), usr, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, p)
}
