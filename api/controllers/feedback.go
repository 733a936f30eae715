package controllers

import (
	"net/http"

	"github.com/aidosmk/food-delivery-backend/api/middleware"
	"github.com/aidosmk/food-delivery-backend/api/responses"
	"github.com/aidosmk/food-delivery-backend/api/validators"
	"github.com/aidosmk/food-delivery-backend/internal/feedback"
	"github.com/aidosmk/food-delivery-backend/pkg/enums"
	"github.com/aidosmk/food-delivery-backend/pkg/logger"
)

type attachmentRequest struct {
	File string `json:"file" validate:"required"`
	Kind string `json:"kind"`
}

type createFeedbackRequest struct {
	Text        string              `json:"text" validate:"required"`
	Rate        float64             `json:"rate" validate:"required,min=1,max=5"`
	Attachments []attachmentRequest `json:"attachments"`
}

func feedbackAttachments(raw []attachmentRequest) []feedback.AttachmentInput {
	out := make([]feedback.AttachmentInput, 0, len(raw))
	for _, attachment := range raw {
		kind, err := enums.ParseAttachmentKind(attachment.Kind)
		if err != nil {
			kind = enums.AttachmentKindImage
		}
		out = append(out, feedback.AttachmentInput{File: attachment.File, Kind: kind})
	}
	return out
}

// CreateFoodFeedback records a review of a food by the caller.
func CreateFoodFeedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		foodID, err := pathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createFeedbackRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), userID, feedback.CreateFeedbackInput{
			FoodID:      foodID,
			Text:        body.Text,
			Rate:        body.Rate,
			Attachments: feedbackAttachments(body.Attachments),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// ListFoodFeedback returns the reviews of a food plus its average rate.
func ListFoodFeedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		foodID, err := pathUUID(r, "foodId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reviews, err := svc.ListForFood(r.Context(), foodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		average, err := svc.AverageRate(r.Context(), foodID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"feedback":     reviews,
			"average_rate": average,
		})
	}
}

// DeleteFoodFeedback removes a review; managers and admins can remove any.
func DeleteFoodFeedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		feedbackID, err := pathUUID(r, "feedbackId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := middleware.RoleFromContext(r.Context())
		isModerator := role == string(enums.UserRoleAdmin) || role == string(enums.UserRoleManager)

		if err := svc.Delete(r.Context(), userID, feedbackID, isModerator); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
