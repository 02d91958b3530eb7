package handlers

import (
	"fmt"
	"net/http"

	"splitledger-backend/database"
	"splitledger-backend/models"
	"splitledger-backend/services"
	"splitledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /api/groups/:id/settle
//
// Records the current user's intent to pay another member, typically taken
// from a suggestion on the balances screen. The settlement starts out
// pending and has no effect on balances until it is completed.
func CreateSettlement(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	if !isMember(groupID, userID) {
		utils.Unauthorized(c, "You are not a member of this group")
		return
	}

	var req models.CreateSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	paidTo, err := uuid.Parse(req.PaidTo)
	if err != nil {
		utils.BadRequest(c, "Invalid paid_to user ID")
		return
	}

	if paidTo == userID {
		utils.BadRequest(c, "You cannot settle up with yourself")
		return
	}
	if !isMember(groupID, paidTo) {
		utils.BadRequest(c, "Recipient is not a member of this group")
		return
	}

	var group models.Group
	database.DB.First(&group, groupID)

	settlement := models.Settlement{
		GroupID:  groupID,
		PaidBy:   userID,
		PaidTo:   paidTo,
		Amount:   req.Amount,
		Currency: group.Currency,
		Status:   models.SettlementStatusPending,
		Notes:    req.Notes,
	}

	if err := database.DB.Create(&settlement).Error; err != nil {
		utils.InternalError(c, "Failed to create settlement")
		return
	}

	var payer, payee models.User
	database.DB.First(&payer, userID)
	database.DB.First(&payee, paidTo)

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		UserID:      userID,
		Type:        "settlement_requested",
		ReferenceID: settlement.ID,
		Description: fmt.Sprintf("%s wants to pay %s %s", payer.Name, payee.Name, utils.FormatAmount(settlement.Amount, settlement.Currency)),
	})

	go services.GetNotificationService().NotifySettlementRequested(settlement, payer, payee, group)

	utils.SuccessResponse(c, http.StatusCreated, "Settlement recorded", settlement)
}

// PUT /api/settlements/:id/complete
//
// Marks a pending settlement as completed; from then on it reduces both
// parties' balances. Completed is terminal.
func CompleteSettlement(c *gin.Context) {
	updateSettlementStatus(c, models.SettlementStatusCompleted)
}

// PUT /api/settlements/:id/cancel
//
// Cancels a pending settlement. Cancelled settlements never affect balances.
// Cancelled is terminal.
func CancelSettlement(c *gin.Context) {
	updateSettlementStatus(c, models.SettlementStatusCancelled)
}

func updateSettlementStatus(c *gin.Context, newStatus string) {
	userID := utils.GetCurrentUserID(c)
	settlementID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid settlement ID")
		return
	}

	var settlement models.Settlement
	if err := database.DB.First(&settlement, settlementID).Error; err != nil {
		utils.NotFound(c, "Settlement not found")
		return
	}

	// Only the two parties involved may resolve it
	if userID != settlement.PaidBy && userID != settlement.PaidTo {
		utils.Unauthorized(c, "Only the payer or payee can update this settlement")
		return
	}

	if settlement.Status != models.SettlementStatusPending {
		utils.BadRequest(c, fmt.Sprintf("Settlement is already %s", settlement.Status))
		return
	}

	database.DB.Model(&settlement).Update("status", newStatus)
	settlement.Status = newStatus

	var payer, payee models.User
	database.DB.First(&payer, settlement.PaidBy)
	database.DB.First(&payee, settlement.PaidTo)
	var group models.Group
	database.DB.First(&group, settlement.GroupID)

	if newStatus == models.SettlementStatusCompleted {
		database.DB.Create(&models.Activity{
			GroupID:     settlement.GroupID,
			UserID:      userID,
			Type:        "settlement_completed",
			ReferenceID: settlement.ID,
			Description: fmt.Sprintf("%s paid %s %s", payer.Name, payee.Name, utils.FormatAmount(settlement.Amount, settlement.Currency)),
		})
		go services.GetNotificationService().NotifySettlementCompleted(settlement, payer, payee, group)
	} else {
		database.DB.Create(&models.Activity{
			GroupID:     settlement.GroupID,
			UserID:      userID,
			Type:        "settlement_cancelled",
			ReferenceID: settlement.ID,
			Description: fmt.Sprintf("Settlement from %s to %s was cancelled", payer.Name, payee.Name),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "Settlement "+newStatus, settlement)
}

// GET /api/groups/:id/settlements
func GetGroupSettlements(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid group ID")
		return
	}

	if !isMember(groupID, userID) {
		utils.Unauthorized(c, "You are not a member of this group")
		return
	}

	query := database.DB.Where("group_id = ?", groupID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var settlements []models.Settlement
	query.Preload("Payer").Preload("Payee").
		Order("created_at DESC").
		Find(&settlements)

	utils.SuccessResponse(c, http.StatusOK, "", settlements)
}
