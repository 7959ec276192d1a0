package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/tenantdesk/helpdesk/internal/domain/ticket"
	vo "github.com/tenantdesk/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/tenantdesk/helpdesk/internal/infrastructure/persistence/models"
)

// TicketMapper handles the conversion between the ticket aggregate's
// entities and their persistence models.
type TicketMapper interface {
	ToModel(t *ticket.Ticket) *models.TicketModel
	ToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	CommentToModel(c *ticket.Comment) *models.CommentModel
	CommentToDomain(model *models.CommentModel) *ticket.Comment

	TimeEntryToModel(e *ticket.TimeEntry) *models.TimeEntryModel
	TimeEntryToDomain(model *models.TimeEntryModel) *ticket.TimeEntry

	HistoryToModel(h *ticket.HistoryEntry) (*models.HistoryModel, error)
	HistoryToDomain(model *models.HistoryModel) (*ticket.HistoryEntry, error)
}

type TicketMapperImpl struct{}

func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) ToModel(t *ticket.Ticket) *models.TicketModel {
	return &models.TicketModel{
		ID:          t.ID(),
		SID:         t.SID(),
		Reference:   t.Reference(),
		Title:       t.Title(),
		Description: t.Description(),
		Priority:    t.Priority().String(),
		Type:        t.Type().String(),
		Status:      t.Status().String(),
		AssigneeID:  t.AssigneeID(),
		CreatedByID: t.CreatedByID(),
		CompanyID:   t.CompanyID(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) ToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	t, err := ticket.ReconstructTicket(
		model.ID,
		model.SID,
		model.Title,
		model.Description,
		vo.Priority(model.Priority),
		vo.TicketType(model.Type),
		vo.TicketStatus(model.Status),
		model.AssigneeID,
		model.CreatedByID,
		model.CompanyID,
		model.Reference,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct ticket (id=%d): %w", model.ID, err)
	}
	return t, nil
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID(),
		TicketID:  c.TicketID(),
		AuthorID:  c.AuthorID(),
		Message:   c.Message(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel) *ticket.Comment {
	return ticket.ReconstructComment(model.ID, model.TicketID, model.AuthorID, model.Message, model.CreatedAt, model.UpdatedAt)
}

func (m *TicketMapperImpl) TimeEntryToModel(e *ticket.TimeEntry) *models.TimeEntryModel {
	return &models.TimeEntryModel{
		ID:         e.ID(),
		TicketID:   e.TicketID(),
		OperatorID: e.OperatorID(),
		Minutes:    e.Minutes(),
		CreatedAt:  e.CreatedAt(),
		UpdatedAt:  e.UpdatedAt(),
	}
}

func (m *TicketMapperImpl) TimeEntryToDomain(model *models.TimeEntryModel) *ticket.TimeEntry {
	return ticket.ReconstructTimeEntry(model.ID, model.TicketID, model.OperatorID, model.Minutes, model.CreatedAt, model.UpdatedAt)
}

func (m *TicketMapperImpl) HistoryToModel(h *ticket.HistoryEntry) (*models.HistoryModel, error) {
	model := &models.HistoryModel{
		ID:             h.ID(),
		TicketID:       h.TicketID(),
		EventType:      h.EventType().String(),
		Message:        h.Message(),
		PreviousStatus: statusString(h.PreviousStatus()),
		NewStatus:      statusString(h.NewStatus()),
		UserID:         h.UserID(),
		ChangedAt:      h.ChangedAt(),
	}

	if changes := h.Changes(); len(changes) > 0 {
		raw, err := json.Marshal(changes)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal history changes: %w", err)
		}
		model.Changes = datatypes.JSON(raw)
	}
	return model, nil
}

func (m *TicketMapperImpl) HistoryToDomain(model *models.HistoryModel) (*ticket.HistoryEntry, error) {
	var changes map[string]ticket.FieldChange
	if len(model.Changes) > 0 && string(model.Changes) != "null" {
		if err := json.Unmarshal(model.Changes, &changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal history changes (id=%d): %w", model.ID, err)
		}
	}

	return ticket.ReconstructHistoryEntry(
		model.ID,
		model.TicketID,
		vo.EventType(model.EventType),
		model.Message,
		statusPtr(model.PreviousStatus),
		statusPtr(model.NewStatus),
		model.UserID,
		changes,
		model.ChangedAt,
	), nil
}

func statusString(s *vo.TicketStatus) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func statusPtr(s *string) *vo.TicketStatus {
	if s == nil {
		return nil
	}
	v := vo.TicketStatus(*s)
	return &v
}
