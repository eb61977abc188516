package api

import (
	"github.com/example/task-api/modules/task"
	"github.com/gofiber/fiber/v2"
)

// ListTasks returns the current user's live tasks.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.ListTasks(c.UserContext(), userID)
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// CreateTask creates a task owned by the current user.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "Title is required")
	}

	resp, err := h.taskAdapter.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetTask returns one of the current user's tasks.
func (h *Handlers) GetTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.GetTask(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTask applies a partial update to one of the current user's tasks.
// PUT and PATCH share this handler; absent fields are left unchanged.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	resp, err := h.taskAdapter.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		UserID:      userID,
		TaskID:      c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// UpdateTaskStatus transitions one of the current user's tasks.
func (h *Handlers) UpdateTaskStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Status == "" {
		return badRequest(c, "Status is required")
	}

	resp, err := h.taskAdapter.SetTaskStatus(c.UserContext(), userID, c.Params("id"), req.Status)
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// DeleteTask soft-deletes one of the current user's tasks.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	resp, err := h.taskAdapter.DeleteTask(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// BulkUpdateStatus applies a status to a set of the current user's tasks.
func (h *Handlers) BulkUpdateStatus(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req BulkStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.TaskIDs) == 0 {
		return badRequest(c, "'task_ids' must be a non-empty list of task IDs")
	}
	if req.Status == "" {
		return badRequest(c, "Missing 'status' field")
	}

	resp, err := h.taskAdapter.BulkSetStatus(c.UserContext(), &task.BulkSetStatusRequest{
		UserID:  userID,
		TaskIDs: req.TaskIDs,
		Status:  req.Status,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// BulkDelete soft-deletes a set of the current user's tasks.
func (h *Handlers) BulkDelete(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return unauthenticated(c)
	}

	var req BulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if len(req.TaskIDs) == 0 {
		return badRequest(c, "'task_ids' must be a non-empty list of task IDs")
	}

	resp, err := h.taskAdapter.BulkDelete(c.UserContext(), &task.BulkDeleteRequest{
		UserID:  userID,
		TaskIDs: req.TaskIDs,
	})
	if err != nil {
		return h.mapServiceError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// unauthenticated responds with a uniform 401 body.
func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "User not authenticated",
	})
}
