package handlers

import (
	"fmt"
	"net/http"
	"time"

	"splitledger-backend/database"
	"splitledger-backend/ledger"
	"splitledger-backend/models"
	"splitledger-backend/services"
	"splitledger-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// POST /api/groups/:id/expenses
func CreateExpense(c *gin.Context) {
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

	var req models.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	// Parse expense date
	expenseDate := time.Now()
	if req.ExpenseDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ExpenseDate)
		if err == nil {
			expenseDate = parsed
		}
	}

	var group models.Group
	database.DB.First(&group, groupID)

	currency := req.Currency
	if currency == "" {
		currency = group.Currency
	}

	expense := models.Expense{
		GroupID:     groupID,
		PaidBy:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    currency,
		Category:    req.Category,
		SplitType:   req.SplitType,
		Notes:       req.Notes,
		ExpenseDate: expenseDate,
	}

	// Allocate before touching the database; a bad split spec must never
	// leave a partial expense behind.
	splits, err := allocateSplits(expense, req.Splits, groupID)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		for i := range splits {
			splits[i].ExpenseID = expense.ID
			if err := tx.Create(&splits[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalError(c, "Failed to create expense")
		return
	}

	// Log activity
	var payer models.User
	database.DB.First(&payer, userID)

	database.DB.Create(&models.Activity{
		GroupID:     groupID,
		UserID:      userID,
		Type:        "expense_added",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s added \"%s\" (%s)", payer.Name, expense.Description, utils.FormatAmount(expense.Amount, expense.Currency)),
	})

	// Send notifications asynchronously
	go services.GetNotificationService().NotifyExpenseAdded(expense, splits, payer, group)

	// Build response
	response := buildExpenseResponse(expense.ID)
	utils.SuccessResponse(c, http.StatusCreated, "Expense added", response)
}

// GET /api/groups/:id/expenses
func GetGroupExpenses(c *gin.Context) {
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

	var pagination utils.PaginationQuery
	c.ShouldBindQuery(&pagination)

	var expenses []models.Expense
	database.DB.Where("group_id = ?", groupID).
		Order("expense_date DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&expenses)

	var responses []models.ExpenseResponse
	for _, e := range expenses {
		responses = append(responses, buildExpenseResponse(e.ID))
	}

	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

// GET /api/expenses/:id
func GetExpense(c *gin.Context) {
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	response := buildExpenseResponse(expenseID)
	if response.ID == uuid.Nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", response)
}

// PUT /api/expenses/:id
func UpdateExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isMember(expense.GroupID, userID) {
		utils.Unauthorized(c, "You are not a member of this group")
		return
	}

	var req models.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if req.Description != "" {
		expense.Description = req.Description
	}
	if req.Amount > 0 {
		expense.Amount = req.Amount
	}
	if req.Category != "" {
		expense.Category = req.Category
	}
	if req.Notes != "" {
		expense.Notes = req.Notes
	}
	if req.SplitType != "" {
		expense.SplitType = req.SplitType
	}

	// Reallocate whenever anything that feeds the splits changed. The new
	// allocation replaces the old splits in the same transaction, so readers
	// never see an expense whose splits don't sum to its amount.
	reallocate := req.Amount > 0 || req.SplitType != "" || len(req.Splits) > 0

	var splits []models.ExpenseSplit
	if reallocate {
		splits, err = allocateSplits(expense, req.Splits, expense.GroupID)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&expense).Error; err != nil {
			return err
		}
		if reallocate {
			if err := tx.Where("expense_id = ?", expenseID).Delete(&models.ExpenseSplit{}).Error; err != nil {
				return err
			}
			for i := range splits {
				splits[i].ExpenseID = expense.ID
				if err := tx.Create(&splits[i]).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.InternalError(c, "Failed to update expense")
		return
	}

	// Log activity
	var editor models.User
	database.DB.First(&editor, userID)

	database.DB.Create(&models.Activity{
		GroupID:     expense.GroupID,
		UserID:      userID,
		Type:        "expense_updated",
		ReferenceID: expense.ID,
		Description: fmt.Sprintf("%s updated \"%s\"", editor.Name, expense.Description),
	})

	response := buildExpenseResponse(expense.ID)
	utils.SuccessResponse(c, http.StatusOK, "Expense updated", response)
}

// DELETE /api/expenses/:id
func DeleteExpense(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid expense ID")
		return
	}

	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		utils.NotFound(c, "Expense not found")
		return
	}

	if !isMember(expense.GroupID, userID) {
		utils.Unauthorized(c, "You are not a member of this group")
		return
	}

	// Log before deleting
	var deleter models.User
	database.DB.First(&deleter, userID)

	database.DB.Create(&models.Activity{
		GroupID:     expense.GroupID,
		UserID:      userID,
		Type:        "expense_deleted",
		Description: fmt.Sprintf("%s deleted \"%s\" (%s)", deleter.Name, expense.Description, utils.FormatAmount(expense.Amount, expense.Currency)),
	})

	// Delete splits and expense together
	database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", expenseID).Delete(&models.ExpenseSplit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&expense).Error
	})

	utils.SuccessResponse(c, http.StatusOK, "Expense deleted", nil)
}

// allocateSplits translates the request's split inputs into ledger shares,
// runs the allocator and maps its output back onto ExpenseSplit rows. Equal
// splits go over the group members in join order; the other types follow the
// order the caller supplied, which decides who absorbs rounding.
func allocateSplits(expense models.Expense, splitInputs []models.SplitInput, groupID uuid.UUID) ([]models.ExpenseSplit, error) {
	var (
		participants []uuid.UUID
		shares       []ledger.Share
	)

	if expense.SplitType == ledger.SplitEqual {
		var members []models.GroupMember
		database.DB.Where("group_id = ?", groupID).Order("joined_at ASC, user_id ASC").Find(&members)
		for _, m := range members {
			participants = append(participants, m.UserID)
		}
	} else {
		for _, input := range splitInputs {
			uid, err := uuid.Parse(input.UserID)
			if err != nil {
				return nil, fmt.Errorf("invalid user ID: %s", input.UserID)
			}
			shares = append(shares, ledger.Share{
				UserID:  uid,
				Amount:  input.Amount,
				Percent: input.Percent,
				Units:   input.Shares,
			})
		}
	}

	allocated, err := ledger.Allocate(expense.Amount, expense.SplitType, participants, shares)
	if err != nil {
		return nil, err
	}

	splits := make([]models.ExpenseSplit, len(allocated))
	for i, a := range allocated {
		paidAmount := int64(0)
		if a.UserID == expense.PaidBy {
			paidAmount = expense.Amount
		}
		splits[i] = models.ExpenseSplit{
			UserID:     a.UserID,
			OwedAmount: a.Amount,
			PaidAmount: paidAmount,
		}
	}
	return splits, nil
}

// Build expense response with payer name and split details
func buildExpenseResponse(expenseID uuid.UUID) models.ExpenseResponse {
	var expense models.Expense
	if err := database.DB.First(&expense, expenseID).Error; err != nil {
		return models.ExpenseResponse{}
	}

	var payer models.User
	database.DB.First(&payer, expense.PaidBy)

	var dbSplits []models.ExpenseSplit
	database.DB.Where("expense_id = ?", expenseID).Find(&dbSplits)

	var splitResponses []models.SplitResponse
	for _, s := range dbSplits {
		var user models.User
		database.DB.First(&user, s.UserID)
		splitResponses = append(splitResponses, models.SplitResponse{
			UserID:     s.UserID,
			UserName:   user.Name,
			OwedAmount: s.OwedAmount,
			PaidAmount: s.PaidAmount,
		})
	}

	return models.ExpenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		PaidBy:      expense.PaidBy,
		PayerName:   payer.Name,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Category:    expense.Category,
		SplitType:   expense.SplitType,
		Notes:       expense.Notes,
		ExpenseDate: expense.ExpenseDate,
		Splits:      splitResponses,
		CreatedAt:   expense.CreatedAt,
	}
}
