// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/middleware"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/go-petr/rib-bank/pkg/moneypkg"
	"github.com/go-petr/rib-bank/pkg/tokenpkg"
	"github.com/go-petr/rib-bank/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, username string, arg domain.CreateTransferParams) (domain.TransferTxResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{
		service: ts,
	}
}

type request struct {
	SourceRIB      string `json:"source_rib" binding:"required,rib"`
	DestinationRIB string `json:"destination_rib" binding:"required,rib"`
	Amount         string `json:"amount" binding:"required"`
}

// TransferResult is the client-facing outcome of a transfer request.
type TransferResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	DebitEntryID  int64  `json:"debit_entry_id"`
	CreditEntryID int64  `json:"credit_entry_id"`
}

type data struct {
	Transfer TransferResult `json:"transfer"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Create handles http request to execute a transfer between two accounts.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: errMsg})

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	arg := domain.CreateTransferParams{
		SourceRIB:      req.SourceRIB,
		DestinationRIB: req.DestinationRIB,
		Amount:         req.Amount,
	}

	result, err := h.service.Transfer(ctx, authPayload.Username, arg)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrUserNotFound),
			errors.Is(err, domain.ErrAccountNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))

			return
		case errors.Is(err, domain.ErrInvalidAmount),
			errors.Is(err, domain.ErrInvalidRIB),
			errors.Is(err, domain.ErrSelfTransfer),
			errors.Is(err, domain.ErrAccountBlocked),
			errors.Is(err, domain.ErrAccountClosed),
			errors.Is(err, domain.ErrInsufficientFunds):
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{
			Transfer: TransferResult{
				Success: true,
				Message: fmt.Sprintf("transfer of %s from %s to %s completed successfully",
					moneypkg.DisplayString(req.Amount), req.SourceRIB, req.DestinationRIB),
				DebitEntryID:  result.DebitEntry.ID,
				CreditEntryID: result.CreditEntry.ID,
			},
		},
	}

	gctx.JSON(http.StatusOK, res)
}
