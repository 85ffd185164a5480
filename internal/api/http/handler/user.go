package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/hms_backend/internal/repo"
	"github.com/Alijeyrad/hms_backend/internal/service/user"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func mapUserError(c fiber.Ctx, err error) error {
	if msg, isUpload := uploadError(err); isUpload {
		return badRequest(c, msg)
	}
	switch {
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, user.ErrNotificationIndex),
		errors.Is(err, user.ErrImageNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, user.ErrForbidden):
		return forbidden(c)
	case errors.Is(err, user.ErrUsernameTaken),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, user.ErrPhoneTaken):
		return conflict(c, err.Error())
	case errors.Is(err, user.ErrEmptyFeedback),
		errors.Is(err, user.ErrEmptyNotification),
		errors.Is(err, user.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /auth/handlecustomer
func (h *UserHandler) ListCustomers(c fiber.Ctx) error {
	users, err := h.svc.ListCustomers(c.Context())
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, users)
}

// GET /auth/customer/:email
func (h *UserHandler) GetByEmail(c fiber.Ctx) error {
	u, err := h.svc.GetByEmail(c.Context(), c.Params("email"))
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// PUT /auth/users/:email
func (h *UserHandler) Update(c fiber.Ctx) error {
	var body struct {
		Username          *string          `json:"username"`
		Email             *string          `json:"email"`
		Phone             *string          `json:"phone"`
		FirstName         *string          `json:"firstName"`
		LastName          *string          `json:"lastName"`
		Address           *string          `json:"address"`
		InitialHealthData *repo.HealthData `json:"initialHealthData"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	u, err := h.svc.UpdateByEmail(c.Context(), c.Params("email"), user.UpdateRequest{
		Username:          body.Username,
		Email:             body.Email,
		Phone:             body.Phone,
		FirstName:         body.FirstName,
		LastName:          body.LastName,
		Address:           body.Address,
		InitialHealthData: body.InitialHealthData,
	})
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// DELETE /auth/deleteacc/:email
func (h *UserHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.DeleteAccount(c.Context(), c.Params("email")); err != nil {
		return mapUserError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Feedback
// ---------------------------------------------------------------------------

// POST /auth/feedback/:email
func (h *UserHandler) SubmitFeedback(c fiber.Ctx) error {
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.svc.SubmitFeedback(c.Context(), c.Params("email"), body.Feedback); err != nil {
		return mapUserError(c, err)
	}
	return created(c, fiber.Map{"message": "feedback submitted"})
}

// GET /auth/feedbacks
func (h *UserHandler) ListFeedback(c fiber.Ctx) error {
	entries, err := h.svc.ListFeedback(c.Context())
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, entries)
}

// ---------------------------------------------------------------------------
// Notifications
// ---------------------------------------------------------------------------

// GET /auth/notifications/:email
func (h *UserHandler) ListNotifications(c fiber.Ctx) error {
	list, err := h.svc.ListNotifications(c.Context(), c.Params("email"))
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, list)
}

// POST /auth/notifications/:email
func (h *UserHandler) AddNotification(c fiber.Ctx) error {
	var body struct {
		Notification string `json:"notification"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.svc.AddNotification(c.Context(), c.Params("email"), body.Notification); err != nil {
		return mapUserError(c, err)
	}
	return created(c, fiber.Map{"message": "notification added"})
}

// DELETE /auth/notifications/:email/:index
func (h *UserHandler) RemoveNotification(c fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return badRequest(c, "index must be a number")
	}

	list, err := h.svc.RemoveNotification(c.Context(), c.Params("email"), index)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, list)
}

// DELETE /auth/notifications/:email
func (h *UserHandler) ClearNotifications(c fiber.Ctx) error {
	if err := h.svc.ClearNotifications(c.Context(), c.Params("email")); err != nil {
		return mapUserError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Profile image
// ---------------------------------------------------------------------------

// POST /auth/upload/:email
// Multipart with an "image" file field.
func (h *UserHandler) UploadImage(c fiber.Ctx) error {
	f, err := readFormFile(c, "image")
	if err != nil {
		return badRequest(c, "image field is required")
	}
	defer f.body.Close()

	u, err := h.svc.UploadProfileImage(c.Context(), c.Params("email"), user.Upload{
		Filename: f.name,
		Body:     f.body,
		Size:     f.size,
	})
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, u)
}

// GET /auth/images/:imageName
func (h *UserHandler) Image(c fiber.Ctx) error {
	obj, err := h.svc.OpenImage(c.Context(), c.Params("imageName"))
	if err != nil {
		return mapUserError(c, err)
	}
	return sendObject(c, obj)
}
