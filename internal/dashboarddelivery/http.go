// Package dashboarddelivery manages delivery layer of the customer dashboard.
package dashboarddelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/rib-bank/internal/domain"
	"github.com/go-petr/rib-bank/internal/middleware"
	"github.com/go-petr/rib-bank/pkg/errorspkg"
	"github.com/go-petr/rib-bank/pkg/tokenpkg"
	"github.com/go-petr/rib-bank/pkg/web"
)

// Service provides service layer interface needed by dashboard delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package dashboarddelivery
type Service interface {
	Get(ctx context.Context, username, selectedRIB string, page, size int32) (domain.DashboardView, error)
}

// Handler facilitates dashboard delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns dashboard handler.
func NewHandler(ds Service) *Handler {
	return &Handler{
		service: ds,
	}
}

type request struct {
	SelectedRIB string `form:"selected_rib" binding:"omitempty,rib"`
	Page        int32  `form:"page" binding:"min=0"`
	PageSize    int32  `form:"page_size" binding:"required,min=1,max=100"`
}

type data struct {
	Dashboard domain.DashboardView `json:"dashboard"`
}

type response struct {
	Data data `json:"data,omitempty"`
}

// Get handles http request to aggregate the customer dashboard.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindQuery(&req); err != nil {
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

	view, err := h.service.Get(ctx, authPayload.Username, req.SelectedRIB, req.Page, req.PageSize)
	if err != nil {
		l.Info().Err(err).Send()

		switch {
		case errors.Is(err, domain.ErrCustomerNotFound):
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		case errors.Is(err, domain.ErrNoAccounts),
			errors.Is(err, domain.ErrInvalidAccountReference):
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := response{
		Data: data{Dashboard: view},
	}

	gctx.JSON(http.StatusOK, res)
}
