package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ordermesh/fulfillment/internal/domain/model"
	"github.com/ordermesh/fulfillment/internal/domain/transition"
	"github.com/ordermesh/fulfillment/internal/server/http/dto"
	"github.com/ordermesh/fulfillment/internal/usecase"
)

// MilestoneHandler manages project and milestone endpoints.
type MilestoneHandler struct {
	facade MilestoneFacade
}

// NewMilestoneHandler constructs MilestoneHandler.
func NewMilestoneHandler(facade MilestoneFacade) *MilestoneHandler {
	return &MilestoneHandler{facade: facade}
}

// CreateProject handles POST /api/projects. The authenticated client
// becomes the project owner.
func (h *MilestoneHandler) CreateProject(c *gin.Context) {
	actor := CurrentActor(c)
	if actor.Role != model.RoleClient {
		c.Status(http.StatusForbidden)
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	project, err := h.facade.CreateProject(c.Request.Context(), &model.Project{
		ClientID:     actor.ID,
		FreelancerID: req.FreelancerID,
		Title:        req.Title,
		BudgetTotal:  req.BudgetTotal,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// GetProject handles GET /api/projects/:id.
func (h *MilestoneHandler) GetProject(c *gin.Context) {
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.facade.Project(c.Request.Context(), projectID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Create handles POST /api/milestones.
func (h *MilestoneHandler) Create(c *gin.Context) {
	actor := CurrentActor(c)
	if actor.Role != model.RoleClient {
		c.Status(http.StatusForbidden)
		return
	}

	var req dto.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	deliverables := make([]model.Deliverable, 0, len(req.Deliverables))
	for _, name := range req.Deliverables {
		deliverables = append(deliverables, model.Deliverable{Name: name})
	}

	milestone, err := h.facade.CreateMilestone(c.Request.Context(), &model.Milestone{
		ProjectID:    req.ProjectID,
		Title:        req.Title,
		Amount:       req.Amount,
		Deliverables: deliverables,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMilestoneResponse(milestone))
}

// Get handles GET /api/milestones/:id.
func (h *MilestoneHandler) Get(c *gin.Context) {
	milestoneID, ok := pathID(c, "id")
	if !ok {
		return
	}

	milestone, err := h.facade.Milestone(c.Request.Context(), milestoneID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

// Transition handles POST /api/milestones/:id/transitions.
func (h *MilestoneHandler) Transition(c *gin.Context) {
	actor := CurrentActor(c)

	milestoneID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MilestoneTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	milestone, err := h.facade.AdvanceMilestone(c.Request.Context(), milestoneID, transition.Action(req.Action), actor, usecase.MilestoneTransitionPayload{
		Artifacts: req.Artifacts,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toMilestoneResponse(milestone))
}

func toMilestoneResponse(milestone *model.Milestone) dto.MilestoneResponse {
	deliverables := make([]dto.DeliverableResponse, 0, len(milestone.Deliverables))
	for _, d := range milestone.Deliverables {
		deliverables = append(deliverables, dto.DeliverableResponse{Name: d.Name, Artifact: d.Artifact})
	}
	return dto.MilestoneResponse{
		ID:             milestone.ID,
		ProjectID:      milestone.ProjectID,
		Title:          milestone.Title,
		Status:         string(milestone.Status),
		Amount:         milestone.Amount,
		Released:       milestone.Released,
		ReleaseDate:    milestone.ReleaseDate,
		Deliverables:   deliverables,
		ClientApproval: milestone.ClientApproval,
		ClientComment:  milestone.ClientComment,
		CreatedAt:      milestone.CreatedAt,
		UpdatedAt:      milestone.UpdatedAt,
		Version:        milestone.Version,
	}
}

func toProjectResponse(project *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:              project.ID,
		ClientID:        project.ClientID,
		FreelancerID:    project.FreelancerID,
		Title:           project.Title,
		BudgetTotal:     project.BudgetTotal,
		BudgetPaid:      project.BudgetPaid,
		BudgetRemaining: project.BudgetRemaining,
		CreatedAt:       project.CreatedAt,
		UpdatedAt:       project.UpdatedAt,
		Version:         project.Version,
	}
}
