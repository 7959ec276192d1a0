package ticket

import (
	"bytes"
	"encoding/json"

	"github.com/gin-gonic/gin"

	"github.com/tenantdesk/helpdesk/internal/application/ticket/usecases"
	"github.com/tenantdesk/helpdesk/internal/domain/access"
	"github.com/tenantdesk/helpdesk/internal/shared/utils"
)

// NullableString tells an absent JSON key apart from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type CreateTicketRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"max=10000"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=low medium high"`
	Type        *string `json:"type" binding:"omitempty,oneof=service_request change_request incident"`
	Assignee    *string `json:"assignee"`
	Company     *string `json:"company"`
}

func (r *CreateTicketRequest) ToCommand(caller access.Caller) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		Caller:      caller,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Type:        r.Type,
		AssigneeSID: r.Assignee,
		CompanySID:  r.Company,
	}
}

// UpdateTicketRequest is a partial update. "assignee": null unassigns.
type UpdateTicketRequest struct {
	Title       *string        `json:"title" binding:"omitempty,max=200"`
	Description *string        `json:"description" binding:"omitempty,max=10000"`
	Priority    *string        `json:"priority" binding:"omitempty,oneof=low medium high"`
	Type        *string        `json:"type" binding:"omitempty,oneof=service_request change_request incident"`
	Status      *string        `json:"status" binding:"omitempty,oneof=open in_progress pending resolved closed"`
	Assignee    NullableString `json:"assignee"`
	Company     *string        `json:"company"`
}

func (r *UpdateTicketRequest) ToCommand(caller access.Caller, ticketSID string) usecases.UpdateTicketCommand {
	cmd := usecases.UpdateTicketCommand{
		Caller:      caller,
		TicketSID:   ticketSID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Type:        r.Type,
		Status:      r.Status,
		CompanySID:  r.Company,
	}
	if r.Assignee.Set {
		if r.Assignee.Value == nil || *r.Assignee.Value == "" {
			cmd.ClearAssignee = true
		} else {
			cmd.AssigneeSID = r.Assignee.Value
		}
	}
	return cmd
}

type CommentRequest struct {
	Message string `json:"message" binding:"required,max=10000"`
}

type TimeEntryRequest struct {
	Minutes *int `json:"minutes" binding:"required,gte=0"`
}

func parseListTicketsQuery(c *gin.Context, caller access.Caller) usecases.ListTicketsQuery {
	page := utils.ParsePagination(c)
	q := usecases.ListTicketsQuery{
		Caller:   caller,
		Title:    c.Query("title"),
		Page:     page.Page,
		PageSize: page.PageSize,
	}
	if priority := c.Query("priority"); priority != "" {
		q.Priority = &priority
	}
	if status := c.Query("status"); status != "" {
		q.Status = &status
	}
	if ticketType := c.Query("type"); ticketType != "" {
		q.Type = &ticketType
	}
	return q
}
