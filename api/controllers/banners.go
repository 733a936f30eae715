package controllers

import (
	"net/http"
	"time"

	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	banner "github.com/aidosmk/food-delivery-backend/internal/banners"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type createBannerRequest struct {
	Title         string             `json:"title" validate:"required"`
	Image         string             `json:"image" validate:"required"`
	Status        enums.BannerStatus `json:"status" validate:"required"`
	ShowDateStart *time.Time         `json:"show_date_start"`
	ShowDateEnd   *time.Time         `json:"show_date_end"`
}

type bannerStatusRequest struct {
	Status enums.BannerStatus `json:"status" validate:"required"`
}

// ListVisibleBanners serves the public banner feed.
func ListVisibleBanners(svc banner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.ListVisible(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

func AdminListBanners(svc banner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		banners, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banners)
	}
}

func AdminCreateBanner(svc banner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createBannerRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), banner.CreateBannerInput{
			Title:         body.Title,
			Image:         body.Image,
			Status:        body.Status,
			ShowDateStart: body.ShowDateStart,
			ShowDateEnd:   body.ShowDateEnd,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminSetBannerStatus(svc banner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bannerID, err := pathUUID(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body bannerStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetStatus(r.Context(), bannerID, body.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": string(body.Status)})
	}
}

func AdminDeleteBanner(svc banner.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bannerID, err := pathUUID(r, "bannerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Delete(r.Context(), bannerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
