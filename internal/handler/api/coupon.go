package api

import (
	"errors"
	"net/http"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	couponCommands commands.CouponCommands
	couponQueries  queries.CouponQueries
}

func NewCouponHandler(couponCommands commands.CouponCommands, couponQueries queries.CouponQueries) *CouponHandler {
	return &CouponHandler{
		couponCommands: couponCommands,
		couponQueries:  couponQueries,
	}
}

// @Summary Create coupon
// @Description Create a new coupon definition
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.CreateCouponRequest true "Coupon definition"
// @Success 201 {object} resdto.CouponResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.couponCommands.Create(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateCode):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Coupon code already exists",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid coupon definition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCouponView(view))
}

// @Summary List coupons
// @Description List all coupon definitions
// @Tags coupons
// @Produce json
// @Success 200 {array} resdto.CouponResponse
// @Router /coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	views, err := h.couponQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCouponViews(views))
}

// @Summary Best coupon
// @Description Select the best applicable coupon for a user and cart
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.EvaluationRequest true "User and cart"
// @Success 200 {object} resdto.BestCouponResponse
// @Failure 400 {object} map[string]string
// @Router /coupons/best [post]
func (h *CouponHandler) BestCoupon(c *gin.Context) {
	var req reqdto.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, cart := req.ToDomain()
	result, err := h.couponQueries.BestCoupon(c.Request.Context(), user, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBestCouponResult(result))
}

// @Summary Redeem coupon
// @Description Redeem a coupon for a user and cart
// @Tags coupons
// @Accept json
// @Produce json
// @Param code path string true "Coupon code"
// @Param request body reqdto.EvaluationRequest true "User and cart"
// @Success 200 {object} resdto.RedeemResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /coupons/{code}/redeem [post]
func (h *CouponHandler) RedeemCoupon(c *gin.Context) {
	var req reqdto.EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	user, cart := req.ToDomain()
	result, err := h.couponCommands.Redeem(c.Request.Context(), c.Param("code"), user, cart)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coupon not found",
			})
		case errors.Is(err, commands.ErrOutsideDateWindow):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coupon is outside its validity window",
			})
		case errors.Is(err, commands.ErrUsageLimitReached):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coupon usage limit reached",
			})
		case errors.Is(err, commands.ErrNotEligible):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "User or cart does not meet coupon conditions",
			})
		case errors.Is(err, commands.ErrZeroDiscount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Coupon yields no discount for this cart",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedeemResult(result))
}
